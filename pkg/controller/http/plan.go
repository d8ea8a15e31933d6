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

type createPlanRequest struct {
	RiskID  string    `json:"risk_id"`
	What    string    `json:"what"`
	Why     string    `json:"why"`
	Who     string    `json:"who"`
	Where   string    `json:"where,omitempty"`
	When    time.Time `json:"when"`
	How     string    `json:"how"`
	HowMuch float64   `json:"how_much,omitempty"`
}

type updatePlanRequest struct {
	What    *string    `json:"what,omitempty"`
	Why     *string    `json:"why,omitempty"`
	Who     *string    `json:"who,omitempty"`
	Where   *string    `json:"where,omitempty"`
	When    *time.Time `json:"when,omitempty"`
	How     *string    `json:"how,omitempty"`
	HowMuch *float64   `json:"how_much,omitempty"`
	Status  *string    `json:"status,omitempty"`
}

type planResponse struct {
	ID        string    `json:"id"`
	RiskID    string    `json:"risk_id"`
	What      string    `json:"what"`
	Why       string    `json:"why"`
	Who       string    `json:"who"`
	Where     string    `json:"where,omitempty"`
	When      time.Time `json:"when"`
	How       string    `json:"how"`
	HowMuch   float64   `json:"how_much"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPlanResponse(plan *model.ActionPlan) planResponse {
	return planResponse{
		ID:        plan.ID.String(),
		RiskID:    plan.RiskID.String(),
		What:      plan.What,
		Why:       plan.Why,
		Who:       plan.Who,
		Where:     plan.Where,
		When:      plan.When,
		How:       plan.How,
		HowMuch:   plan.HowMuch,
		Status:    plan.Status.String(),
		UpdatedAt: plan.UpdatedAt,
	}
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req createPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	plan, err := s.uc.CreatePlan(r.Context(), companyID, &usecase.CreatePlanInput{
		RiskID:  types.RiskID(req.RiskID),
		What:    req.What,
		Why:     req.Why,
		Who:     req.Who,
		Where:   req.Where,
		When:    req.When,
		How:     req.How,
		HowMuch: req.HowMuch,
	})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toPlanResponse(plan))
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	plans, err := s.uc.ListPlans(r.Context(), companyID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := make([]planResponse, 0, len(plans))
	for _, plan := range plans {
		resp = append(resp, toPlanResponse(plan))
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"plans": resp})
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req updatePlanRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	patch := &model.ActionPlanPatch{
		What:    req.What,
		Why:     req.Why,
		Who:     req.Who,
		Where:   req.Where,
		When:    req.When,
		How:     req.How,
		HowMuch: req.HowMuch,
	}
	if req.Status != nil {
		status, err := types.ParseActionStatus(*req.Status)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		patch.Status = &status
	}

	plan, err := s.uc.UpdatePlan(r.Context(), companyID, types.PlanID(chi.URLParam(r, "planID")), patch)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := s.uc.DeletePlan(r.Context(), companyID, types.PlanID(chi.URLParam(r, "planID"))); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
