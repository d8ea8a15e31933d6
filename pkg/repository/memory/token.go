package memory

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/psq-lab/psiquo/pkg/domain/model/auth"
)

type tokenStore struct {
	mu     sync.RWMutex
	tokens map[auth.TokenID]*auth.Token
}

func newTokenStore() *tokenStore {
	return &tokenStore{
		tokens: make(map[auth.TokenID]*auth.Token),
	}
}

func (s *tokenStore) put(token *auth.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *token
	s.tokens[token.ID] = &copied
	return nil
}

func (s *tokenStore) get(id auth.TokenID) (*auth.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, exists := s.tokens[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "token not found")
	}
	copied := *token
	return &copied, nil
}

func (s *tokenStore) delete(id auth.TokenID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, id)
	return nil
}
