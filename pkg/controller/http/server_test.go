package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/psq-lab/psiquo/pkg/controller/http"
	"github.com/psq-lab/psiquo/pkg/domain/model"
	"github.com/psq-lab/psiquo/pkg/repository/memory"
	"github.com/psq-lab/psiquo/pkg/service/blob"
	"github.com/psq-lab/psiquo/pkg/service/render"
	"github.com/psq-lab/psiquo/pkg/usecase"
)

func newTestServer(t *testing.T, opts ...httpctrl.Options) (*httpctrl.Server, *usecase.UseCases) {
	t.Helper()

	repo := memory.New()
	t.Cleanup(func() {
		_ = repo.Close()
	})

	renderer, err := render.NewHTML()
	gt.NoError(t, err).Required()

	uc := usecase.New(repo,
		usecase.WithBlobStorage(blob.NewMemory()),
		usecase.WithRenderer(renderer),
	)

	ctx := context.Background()
	for _, seed := range uc.AssessmentConfig().Questions {
		_, err := repo.Question().UpsertByOrder(ctx, &model.Question{
			Category: seed.Category,
			Order:    seed.Order,
			Text:     seed.Text,
			Active:   true,
		})
		gt.NoError(t, err).Required()
	}

	return httpctrl.New(uc, opts...), uc
}

// doJSON performs a request with an optional JSON body and the no-auth
// company header
func doJSON(t *testing.T, srv *httpctrl.Server, method, path, companyID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if companyID != "" {
		req.Header.Set("X-Company-ID", companyID)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// registerTestCompany registers a company over the API and returns its ID
// with one sector ID per name
func registerTestCompany(t *testing.T, srv *httpctrl.Server, sectorNames ...string) (string, []string) {
	t.Helper()

	sectors := make([]map[string]any, 0, len(sectorNames))
	for _, name := range sectorNames {
		sectors = append(sectors, map[string]any{"name": name, "headcount": 10})
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/company", "", map[string]any{
		"name":      "Acme Industries",
		"tax_id":    "11.222.333/0001-81",
		"headcount": 120,
		"sectors":   sectors,
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var resp struct {
		ID      string `json:"id"`
		Sectors []struct {
			ID string `json:"id"`
		} `json:"sectors"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.String(t, resp.ID).NotEqual("")

	sectorIDs := make([]string, 0, len(resp.Sectors))
	for _, s := range resp.Sectors {
		sectorIDs = append(sectorIDs, s.ID)
	}
	return resp.ID, sectorIDs
}

// submitWorstAnswers answers the full questionnaire for the sector so that
// every category scores as a high risk
func submitWorstAnswers(t *testing.T, srv *httpctrl.Server, uc *usecase.UseCases, companyID, sectorID string) {
	t.Helper()

	rec := doJSON(t, srv, http.MethodGet, "/api/questionnaire/questions", companyID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Questions []struct {
			ID    string `json:"id"`
			Order int    `json:"order"`
		} `json:"questions"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Array(t, resp.Questions).Length(15)

	positive := uc.AssessmentConfig().PositiveOrders
	for _, q := range resp.Questions {
		value := 5
		if positive[q.Order] {
			value = 1
		}
		rec := doJSON(t, srv, http.MethodPost, "/api/questionnaire/answers", companyID, map[string]any{
			"sector_id":   sectorID,
			"question_id": q.ID,
			"value":       value,
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal(`{"status":"ok"}`)
}

func TestAssessmentFlow(t *testing.T) {
	srv, uc := newTestServer(t, httpctrl.WithNoAuth(true))
	companyID, sectorIDs := registerTestCompany(t, srv, "Production")
	submitWorstAnswers(t, srv, uc, companyID, sectorIDs[0])

	// Regenerate produces one risk per category
	rec := doJSON(t, srv, http.MethodPost, "/api/assessment/regenerate", companyID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var regenerated struct {
		Risks []struct {
			ID             string `json:"id"`
			Classification string `json:"classification"`
			Probability    string `json:"probability"`
			Severity       string `json:"severity"`
		} `json:"risks"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &regenerated)).Required()
	gt.Array(t, regenerated.Risks).Length(5)
	for _, risk := range regenerated.Risks {
		gt.Value(t, risk.Classification).Equal("high")
	}

	// Approval is blocked until every risk is justified
	rec = doJSON(t, srv, http.MethodPost, "/api/assessment/approve", companyID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)

	for _, risk := range regenerated.Risks {
		rec = doJSON(t, srv, http.MethodPut, "/api/assessment/risks/"+risk.ID, companyID, map[string]any{
			"probability":   risk.Probability,
			"severity":      risk.Severity,
			"justification": "confirmed by the sector interviews in March",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/assessment/approve", companyID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var approval struct {
		Approved   bool `json:"approved"`
		TotalRisks int  `json:"total_risks"`
		Incomplete int  `json:"incomplete"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approval)).Required()
	gt.Value(t, approval.Approved).Equal(true)
	gt.Value(t, approval.TotalRisks).Equal(5)
	gt.Value(t, approval.Incomplete).Equal(0)
}

func TestTokenAuthentication(t *testing.T) {
	srv, _ := newTestServer(t)
	companyID, _ := registerTestCompany(t, srv, "Production")

	// Login issues a bearer token and session cookies
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"company_id": companyID,
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var login struct {
		TokenID string `json:"token_id"`
		Secret  string `json:"secret"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login)).Required()
	gt.String(t, login.TokenID).NotEqual("")

	cookies := rec.Result().Cookies()
	gt.Array(t, cookies).Length(2)

	t.Run("bearer header grants access", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/company", nil)
		req.Header.Set("Authorization", "Bearer "+login.TokenID+":"+login.Secret)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Bool(t, strings.Contains(rec.Body.String(), "Acme Industries")).True()
	})

	t.Run("session cookies grant access", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/company", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("wrong secret is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/company", nil)
		req.Header.Set("Authorization", "Bearer "+login.TokenID+":wrong")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("missing credentials are unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/company", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+login.TokenID+":"+login.Secret)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusNoContent)

		req = httptest.NewRequest(http.MethodGet, "/api/company", nil)
		req.Header.Set("Authorization", "Bearer "+login.TokenID+":"+login.Secret)
		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}

func TestNoAuthHeader(t *testing.T) {
	srv, _ := newTestServer(t, httpctrl.WithNoAuth(true))

	t.Run("missing header is unauthorized", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/company", "", nil)
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("malformed company ID is unauthorized", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/company", "not-a-uuid", nil)
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}

func TestErrorStatusMapping(t *testing.T) {
	srv, _ := newTestServer(t, httpctrl.WithNoAuth(true))
	companyID, _ := registerTestCompany(t, srv, "Production")

	t.Run("invalid JSON body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/company", strings.NewReader("{broken"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)

		var body struct {
			Error string `json:"error"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
		gt.String(t, body.Error).NotEqual("")
	})

	t.Run("invalid tax ID", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/company", "", map[string]any{
			"name":      "Acme Industries",
			"tax_id":    "11111111111111",
			"headcount": 120,
			"sectors":   []map[string]any{{"name": "Production"}},
		})
		gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)
	})

	t.Run("unknown risk is 404", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPut,
			"/api/assessment/risks/00000000-0000-4000-8000-000000000000", companyID, map[string]any{
				"probability": "low",
				"severity":    "low",
			})
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("unknown report is 404", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost,
			"/api/reports/00000000-0000-4000-8000-000000000000/archive", companyID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}

// multipartUpload builds an evidence upload body with one file part
func multipartUpload(t *testing.T, label, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	gt.NoError(t, mw.WriteField("label", label)).Required()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	gt.NoError(t, err).Required()
	_, err = part.Write(payload)
	gt.NoError(t, err).Required()

	gt.NoError(t, mw.Close()).Required()
	return &buf, mw.FormDataContentType()
}

func TestEvidenceUpload(t *testing.T) {
	srv, _ := newTestServer(t, httpctrl.WithNoAuth(true))
	companyID, _ := registerTestCompany(t, srv, "Production")

	payload := []byte("%PDF-1.7 overtime report")

	t.Run("upload and download round-trip", func(t *testing.T) {
		body, contentType := multipartUpload(t, "overtime-report.pdf", "overtime.pdf", "application/pdf", payload)
		req := httptest.NewRequest(http.MethodPost, "/api/evidence", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-Company-ID", companyID)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		var created struct {
			ID        string `json:"id"`
			MediaType string `json:"media_type"`
			SizeKB    int    `json:"size_kb"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
		gt.Value(t, created.MediaType).Equal("application/pdf")
		gt.Value(t, created.SizeKB).Equal(1)

		rec = doJSON(t, srv, http.MethodGet, "/api/evidence/"+created.ID+"/download", companyID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Header().Get("Content-Type")).Equal("application/pdf")
		gt.Value(t, rec.Body.String()).Equal(string(payload))
	})

	t.Run("disallowed content type is rejected", func(t *testing.T) {
		body, contentType := multipartUpload(t, "notes file", "notes.txt", "text/plain", []byte("plain text"))
		req := httptest.NewRequest(http.MethodPost, "/api/evidence", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-Company-ID", companyID)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)
	})
}

func TestReportEndpoints(t *testing.T) {
	srv, uc := newTestServer(t, httpctrl.WithNoAuth(true))
	companyID, sectorIDs := registerTestCompany(t, srv, "Production")
	submitWorstAnswers(t, srv, uc, companyID, sectorIDs[0])

	rec := doJSON(t, srv, http.MethodPost, "/api/assessment/regenerate", companyID, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = doJSON(t, srv, http.MethodPost, "/api/reports", companyID, map[string]any{
		"responsible": "Maria Souza",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var report struct {
		ID         string `json:"id"`
		Version    string `json:"version"`
		Status     string `json:"status"`
		TotalRisks int    `json:"total_risks"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report)).Required()
	gt.Value(t, report.Version).Equal("1.0")
	gt.Value(t, report.Status).Equal("generated")
	gt.Value(t, report.TotalRisks).Equal(5)

	t.Run("download returns the rendered document", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/reports/"+report.ID+"/download", companyID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Header().Get("Content-Type")).Equal("text/html; charset=utf-8")
		gt.Bool(t, strings.Contains(rec.Body.String(), "Acme Industries")).True()
	})

	t.Run("archive transitions once then conflicts", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/reports/"+report.ID+"/archive", companyID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = doJSON(t, srv, http.MethodPost, "/api/reports/"+report.ID+"/archive", companyID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusConflict)
	})

	t.Run("list includes the archived report", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/reports", companyID, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Reports []struct {
				Status string `json:"status"`
			} `json:"reports"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Array(t, resp.Reports).Length(1)
		gt.Value(t, resp.Reports[0].Status).Equal("archived")
	})
}
