package http

import (
	"net/http"
	"strings"

	"github.com/psq-lab/psiquo/pkg/domain/model/auth"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// authMiddleware resolves the acting company from the session token and
// stores it in the request context. In no-auth mode the company comes from
// the X-Company-ID header instead.
func (s *Server) authMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.noAuth {
				companyID := types.CompanyID(r.Header.Get("X-Company-ID"))
				if err := companyID.Validate(); err != nil {
					http.Error(w, "X-Company-ID header required", http.StatusUnauthorized)
					return
				}
				ctx := auth.ContextWithCompany(r.Context(), companyID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			tokenID, secret, ok := bearerToken(r)
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			companyID, err := s.uc.ResolveToken(r.Context(), tokenID, secret)
			if err != nil {
				http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
				return
			}

			ctx := auth.ContextWithCompany(r.Context(), companyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts "Bearer <tokenID>:<secret>" from the Authorization
// header, falling back to the session cookies
func bearerToken(r *http.Request) (auth.TokenID, auth.TokenSecret, bool) {
	header := r.Header.Get("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		id, secret, ok := strings.Cut(after, ":")
		if ok && id != "" && secret != "" {
			return auth.TokenID(id), auth.TokenSecret(secret), true
		}
		return "", "", false
	}

	idCookie, err := r.Cookie("token_id")
	if err != nil {
		return "", "", false
	}
	secretCookie, err := r.Cookie("token_secret")
	if err != nil {
		return "", "", false
	}
	return auth.TokenID(idCookie.Value), auth.TokenSecret(secretCookie.Value), true
}

// companyFrom reads the acting company placed by the auth middleware
func companyFrom(r *http.Request) (types.CompanyID, bool) {
	return auth.CompanyFromContext(r.Context())
}
