package http

import (
	"net/http"
	"time"

	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/usecase"
	"github.com/psq-lab/psiquo/pkg/utils/errutil"
)

type sectorRequest struct {
	Name      string `json:"name"`
	Headcount int    `json:"headcount"`
}

type registerCompanyRequest struct {
	Name      string          `json:"name"`
	TaxID     string          `json:"tax_id"`
	Headcount int             `json:"headcount"`
	Sectors   []sectorRequest `json:"sectors"`
}

type sectorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Headcount int    `json:"headcount,omitempty"`
}

type companyResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	TaxID     string           `json:"tax_id"`
	Headcount int              `json:"headcount"`
	Sectors   []sectorResponse `json:"sectors"`
	CreatedAt time.Time        `json:"created_at"`
}

func toCompanyResponse(company *model.Company, sectors []*model.Sector) companyResponse {
	resp := companyResponse{
		ID:        company.ID.String(),
		Name:      company.Name,
		TaxID:     company.TaxID,
		Headcount: company.Headcount,
		Sectors:   make([]sectorResponse, 0, len(sectors)),
		CreatedAt: company.CreatedAt,
	}
	for _, s := range sectors {
		resp.Sectors = append(resp.Sectors, sectorResponse{
			ID:        s.ID.String(),
			Name:      s.Name,
			Headcount: s.Headcount,
		})
	}
	return resp
}

func (s *Server) handleRegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req registerCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	input := &usecase.RegisterCompanyInput{
		Name:      req.Name,
		TaxID:     req.TaxID,
		Headcount: req.Headcount,
	}
	for _, sec := range req.Sectors {
		input.Sectors = append(input.Sectors, usecase.SectorInput{
			Name:      sec.Name,
			Headcount: sec.Headcount,
		})
	}

	company, sectors, err := s.uc.RegisterCompany(r.Context(), input)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toCompanyResponse(company, sectors))
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	company, sectors, err := s.uc.GetCompany(r.Context(), companyID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toCompanyResponse(company, sectors))
}
