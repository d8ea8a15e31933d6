package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/usecase"
	"github.com/psq-lab/psiquo/pkg/utils/errutil"
	"github.com/psq-lab/psiquo/pkg/utils/safe"
)

type generateReportRequest struct {
	Responsible string `json:"responsible"`
	Version     string `json:"version,omitempty"`
}

type reportResponse struct {
	ID          string         `json:"id"`
	Responsible string         `json:"responsible"`
	Version     string         `json:"version"`
	Status      string         `json:"status"`
	GeneratedAt time.Time      `json:"generated_at"`
	TotalRisks  int            `json:"total_risks"`
	Summary     map[string]int `json:"by_classification"`
}

func toReportResponse(report *model.Report) reportResponse {
	summary := make(map[string]int, len(report.Snapshot.Summary.ByClassification))
	for class, count := range report.Snapshot.Summary.ByClassification {
		summary[class.String()] = count
	}
	return reportResponse{
		ID:          report.ID.String(),
		Responsible: report.Responsible,
		Version:     report.Version,
		Status:      report.Status.String(),
		GeneratedAt: report.GeneratedAt,
		TotalRisks:  report.Snapshot.Summary.TotalRisks,
		Summary:     summary,
	}
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req generateReportRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	report, err := s.uc.GenerateReport(r.Context(), companyID, &usecase.GenerateReportInput{
		Responsible: req.Responsible,
		Version:     req.Version,
	})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toReportResponse(report))
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	reports, err := s.uc.ListReports(r.Context(), companyID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := make([]reportResponse, 0, len(reports))
	for _, report := range reports {
		resp = append(resp, toReportResponse(report))
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"reports": resp})
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	report, artifact, contentType, err := s.uc.DownloadReport(r.Context(), companyID,
		types.ReportID(chi.URLParam(r, "reportID")))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact)))
	w.Header().Set("Content-Disposition",
		`attachment; filename="report-`+report.ID.String()+`.html"`)
	safe.Write(r.Context(), w, artifact)
}

func (s *Server) handleArchiveReport(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFrom(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	report, err := s.uc.ArchiveReport(r.Context(), companyID,
		types.ReportID(chi.URLParam(r, "reportID")))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toReportResponse(report))
}
