package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/utils/logging"
)

// StatusOf maps the error taxonomy to an HTTP status code. Untagged errors
// are treated as internal.
func StatusOf(err error) int {
	switch {
	case goerr.HasTag(err, types.ErrTagValidation):
		return http.StatusUnprocessableEntity
	case goerr.HasTag(err, types.ErrTagNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, types.ErrTagPrecondition):
		return http.StatusUnprocessableEntity
	case goerr.HasTag(err, types.ErrTagConflict):
		return http.StatusConflict
	case goerr.HasTag(err, types.ErrTagStorage):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Handle logs the error with its goerr context and returns it unchanged
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	return err
}

// HandleHTTP logs the error and writes a JSON error response with the
// status implied by the error's tag. Internal errors never leak their
// message to the client.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	statusCode := StatusOf(err)
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	message := err.Error()
	if statusCode == http.StatusInternalServerError {
		message = "internal error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
