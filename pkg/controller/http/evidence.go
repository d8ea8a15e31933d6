package http

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/usecase"
	"github.com/psq-lab/psiquo/pkg/utils/errutil"
	"github.com/psq-lab/psiquo/pkg/utils/safe"
)

// maxUploadBytes bounds the multipart body; the per-file limit is enforced
// again in the usecase
const maxUploadBytes = 12 << 20

type evidenceResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	MediaType string    `json:"media_type"`
	SizeKB    int       `json:"size_kb"`
	CreatedAt time.Time `json:"created_at"`
}

func toEvidenceResponse(ev *model.Evidence) evidenceResponse {
	return evidenceResponse{
		ID:        ev.ID.String(),
		Label:     ev.Label,
		MediaType: ev.MediaType,
		SizeKB:    ev.SizeKB,
		CreatedAt: ev.CreatedAt,
	}
}

func (s *Server) handleAddEvidence(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		errutil.HandleHTTP(r.Context(), w,
			goerr.Wrap(err, "invalid multipart body", goerr.T(types.ErrTagValidation)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w,
			goerr.Wrap(err, "file part is required", goerr.T(types.ErrTagValidation)))
		return
	}
	defer safe.Close(r.Context(), file)

	payload, err := io.ReadAll(file)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to read upload"))
		return
	}

	evidence, err := s.uc.AddEvidence(r.Context(), companyID, &usecase.AddEvidenceInput{
		Label:     r.FormValue("label"),
		MediaType: header.Header.Get("Content-Type"),
		Payload:   payload,
	})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toEvidenceResponse(evidence))
}

func (s *Server) handleListEvidence(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	items, err := s.uc.ListEvidence(r.Context(), companyID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := make([]evidenceResponse, 0, len(items))
	for _, ev := range items {
		resp = append(resp, toEvidenceResponse(ev))
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"evidence": resp})
}

func (s *Server) handleDownloadEvidence(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	evidence, payload, err := s.uc.FetchEvidence(r.Context(), companyID,
		types.EvidenceID(chi.URLParam(r, "evidenceID")))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", evidence.MediaType)
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.Header().Set("Content-Disposition", `attachment; filename="`+evidence.Label+`"`)
	safe.Write(r.Context(), w, payload)
}

func (s *Server) handleDeleteEvidence(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := s.uc.DeleteEvidence(r.Context(), companyID,
		types.EvidenceID(chi.URLParam(r, "evidenceID"))); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
