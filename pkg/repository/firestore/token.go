package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model/auth"
	"github.com/psq-lab/psiquo/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type tokenDocument struct {
	ID        string    `firestore:"id"`
	Secret    string    `firestore:"secret"`
	CompanyID string    `firestore:"company_id"`
	ExpiresAt time.Time `firestore:"expires_at"`
	CreatedAt time.Time `firestore:"created_at"`
}

type tokenRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTokenRepository(client *firestore.Client) *tokenRepository {
	return &tokenRepository{client: client}
}

func (r *tokenRepository) tokens() string {
	return prefixed(r.collectionPrefix, "tokens")
}

func (r *tokenRepository) Put(ctx context.Context, token *auth.Token) error {
	doc := &tokenDocument{
		ID:        string(token.ID),
		Secret:    string(token.Secret),
		CompanyID: token.CompanyID.String(),
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
	if _, err := r.client.Collection(r.tokens()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put token")
	}
	return nil
}

func (r *tokenRepository) Get(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	doc, err := r.client.Collection(r.tokens()).Doc(string(tokenID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "token not found")
		}
		return nil, goerr.Wrap(err, "failed to get token")
	}

	var td tokenDocument
	if err := doc.DataTo(&td); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal token")
	}

	return &auth.Token{
		ID:        auth.TokenID(td.ID),
		Secret:    auth.TokenSecret(td.Secret),
		CompanyID: types.CompanyID(td.CompanyID),
		ExpiresAt: td.ExpiresAt,
		CreatedAt: td.CreatedAt,
	}, nil
}

func (r *tokenRepository) Delete(ctx context.Context, tokenID auth.TokenID) error {
	if _, err := r.client.Collection(r.tokens()).Doc(string(tokenID)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete token")
	}
	return nil
}
