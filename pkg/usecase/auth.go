package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model/auth"
	"github.com/psq-lab/psiquo/pkg/domain/types"
)

// defaultTokenTTL bounds how long an issued session stays valid
const defaultTokenTTL = 24 * time.Hour

// IssueToken creates a session token bound to an existing company
func (uc *UseCases) IssueToken(ctx context.Context, companyID types.CompanyID) (*auth.Token, error) {
	if _, err := uc.repo.Company().Get(ctx, companyID); err != nil {
		return nil, goerr.Wrap(err, "failed to get company", goerr.V(types.CompanyIDKey, companyID))
	}

	token := auth.NewToken(companyID, defaultTokenTTL)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to store token", goerr.V(types.CompanyIDKey, companyID))
	}
	return token, nil
}

// ResolveToken validates a session token and returns the acting company.
// Expired tokens are deleted on sight.
func (uc *UseCases) ResolveToken(ctx context.Context, tokenID auth.TokenID, secret auth.TokenSecret) (types.CompanyID, error) {
	token, err := uc.repo.GetToken(ctx, tokenID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve token")
	}

	if token.Secret != secret {
		return "", goerr.New("token secret mismatch", goerr.T(types.ErrTagNotFound))
	}

	if token.Expired(time.Now()) {
		if err := uc.repo.DeleteToken(ctx, tokenID); err != nil {
			return "", goerr.Wrap(err, "failed to delete expired token")
		}
		return "", goerr.New("token expired", goerr.T(types.ErrTagNotFound))
	}

	return token.CompanyID, nil
}

// RevokeToken deletes a session token
func (uc *UseCases) RevokeToken(ctx context.Context, tokenID auth.TokenID) error {
	if err := uc.repo.DeleteToken(ctx, tokenID); err != nil {
		return goerr.Wrap(err, "failed to revoke token")
	}
	return nil
}
