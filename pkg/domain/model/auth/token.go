package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// TokenID identifies a session token issued by the identity provider
type TokenID string

// TokenSecret is the secret half of a session token
type TokenSecret string

// Token binds an opaque session credential to a company. The identity
// provider issues and stores tokens; the core only resolves them to the
// acting company and trusts the result as already authorized.
type Token struct {
	ID        TokenID
	Secret    TokenSecret `masq:"secret"`
	CompanyID types.CompanyID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewToken creates a token for the given company with a random ID and secret
func NewToken(companyID types.CompanyID, ttl time.Duration) *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        TokenID(randomHex(16)),
		Secret:    TokenSecret(randomHex(32)),
		CompanyID: companyID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// Expired reports whether the token is past its expiry
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(buf)
}

type ctxKey struct{}

// ContextWithCompany embeds the acting company ID into the context
func ContextWithCompany(ctx context.Context, id types.CompanyID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// CompanyFromContext extracts the acting company ID from the context
func CompanyFromContext(ctx context.Context) (types.CompanyID, bool) {
	id, ok := ctx.Value(ctxKey{}).(types.CompanyID)
	return id, ok
}
