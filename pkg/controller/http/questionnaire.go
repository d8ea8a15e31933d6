package http

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/utils/errutil"
)

type questionResponse struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Order    int    `json:"order"`
	Text     string `json:"text"`
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.uc.ListQuestions(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, questionResponse{
			ID:       q.ID.String(),
			Category: q.Category.String(),
			Order:    q.Order,
			Text:     q.Text,
		})
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"questions": resp})
}

type submitAnswerRequest struct {
	SectorID   string `json:"sector_id"`
	QuestionID string `json:"question_id"`
	Value      int    `json:"value"`
}

type answerResponse struct {
	SectorID   string    `json:"sector_id"`
	QuestionID string    `json:"question_id"`
	Value      int       `json:"value"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	answer, err := s.uc.SubmitAnswer(r.Context(), companyID,
		types.SectorID(req.SectorID), types.QuestionID(req.QuestionID), req.Value)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusOK, answerResponse{
		SectorID:   answer.SectorID.String(),
		QuestionID: answer.QuestionID.String(),
		Value:      answer.Value,
		UpdatedAt:  answer.UpdatedAt,
	})
}

func (s *Server) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	sectorID := types.SectorID(r.URL.Query().Get("sector_id"))
	if sectorID == "" {
		errutil.HandleHTTP(r.Context(), w,
			goerr.New("sector_id query parameter is required", goerr.T(types.ErrTagValidation)))
		return
	}

	answers, err := s.uc.ListAnswers(r.Context(), companyID, sectorID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := make([]answerResponse, 0, len(answers))
	for _, ans := range answers {
		resp = append(resp, answerResponse{
			SectorID:   ans.SectorID.String(),
			QuestionID: ans.QuestionID.String(),
			Value:      ans.Value,
			UpdatedAt:  ans.UpdatedAt,
		})
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"answers": resp})
}
