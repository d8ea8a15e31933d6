package http

import (
	"net/http"
	"time"

	"github.com/psq-lab/psiquo/pkg/domain/model/auth"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"github.com/psq-lab/psiquo/pkg/utils/errutil"
)

type loginRequest struct {
	CompanyID string `json:"company_id"`
}

type loginResponse struct {
	TokenID   string    `json:"token_id"`
	Secret    string    `json:"secret"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	companyID := types.CompanyID(req.CompanyID)
	if err := companyID.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	token, err := s.uc.IssueToken(r.Context(), companyID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	setSessionCookies(w, token)
	respondJSON(w, r, http.StatusOK, loginResponse{
		TokenID:   string(token.ID),
		Secret:    string(token.Secret),
		ExpiresAt: token.ExpiresAt,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if tokenID, _, ok := bearerToken(r); ok {
		if err := s.uc.RevokeToken(r.Context(), tokenID); err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
	}

	clearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func setSessionCookies(w http.ResponseWriter, token *auth.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token_id",
		Value:    string(token.ID),
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "token_secret",
		Value:    string(token.Secret),
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{"token_id", "token_secret"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
