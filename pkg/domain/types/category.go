package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// CategoryID identifies one of the configured psychosocial risk categories
type CategoryID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// Validate checks if the CategoryID is valid
func (c CategoryID) Validate() error {
	if c == "" {
		return goerr.New("category ID cannot be empty", goerr.T(ErrTagValidation))
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.New("category ID must be lowercase alphanumeric with underscores", goerr.V("id", c), goerr.T(ErrTagValidation))
	}
	return nil
}

// String returns the string representation of CategoryID
func (c CategoryID) String() string {
	return string(c)
}
