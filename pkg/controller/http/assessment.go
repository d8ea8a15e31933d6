package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/usecase"
	"github.com/psq-lab/psiquo/pkg/utils/errutil"
)

type riskResponse struct {
	ID             string    `json:"id"`
	SectorID       string    `json:"sector_id"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Probability    string    `json:"probability"`
	Severity       string    `json:"severity"`
	Classification string    `json:"classification"`
	Justification  string    `json:"justification"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toRiskResponse(risk *model.Risk) riskResponse {
	return riskResponse{
		ID:             risk.ID.String(),
		SectorID:       risk.SectorID.String(),
		Category:       risk.Category.String(),
		Description:    risk.Description,
		Probability:    risk.Probability.String(),
		Severity:       risk.Severity.String(),
		Classification: risk.Classification.String(),
		Justification:  risk.Justification,
		UpdatedAt:      risk.UpdatedAt,
	}
}

func toRiskResponses(risks []*model.Risk) []riskResponse {
	resp := make([]riskResponse, 0, len(risks))
	for _, risk := range risks {
		resp = append(resp, toRiskResponse(risk))
	}
	return resp
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	risks, err := s.uc.RegenerateAssessment(r.Context(), companyID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"risks": toRiskResponses(risks)})
}

func (s *Server) handleListRisks(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	risks, err := s.uc.ListRisks(r.Context(), companyID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"risks": toRiskResponses(risks)})
}

type updateRiskRequest struct {
	Probability   string `json:"probability"`
	Severity      string `json:"severity"`
	Justification string `json:"justification"`
}

func (s *Server) handleUpdateRisk(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req updateRiskRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	risk, err := s.uc.UpdateRisk(r.Context(), companyID,
		types.RiskID(chi.URLParam(r, "riskID")), &usecase.UpdateRiskInput{
			Probability:   req.Probability,
			Severity:      req.Severity,
			Justification: req.Justification,
		})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toRiskResponse(risk))
}

type approvalResponse struct {
	Approved   bool `json:"approved"`
	TotalRisks int  `json:"total_risks"`
	Incomplete int  `json:"incomplete"`
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	result, err := s.uc.ApproveEvaluation(r.Context(), companyID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusOK, approvalResponse{
		Approved:   result.Approved,
		TotalRisks: result.TotalRisks,
		Incomplete: result.Incomplete,
	})
}
