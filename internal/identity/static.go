package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Static is an in-process Provider with a fixed token table. It serves the memory
// backend and tests; accounts created through it are kept in memory only.
type Static struct {
	mu     sync.RWMutex
	tokens map[string]Identity
	emails map[string]string // lower-cased email -> uid
}

// NewStatic creates a Static provider that accepts the given tokens.
func NewStatic(tokens map[string]Identity) *Static {
	s := &Static{
		tokens: make(map[string]Identity, len(tokens)),
		emails: make(map[string]string),
	}
	for token, id := range tokens {
		s.tokens[token] = id
		if id.Email != "" {
			s.emails[strings.ToLower(id.Email)] = id.UID
		}
	}
	return s
}

func (s *Static) VerifyToken(_ context.Context, token string) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	if !ok || token == "" {
		return nil, ErrInvalidToken
	}
	return &id, nil
}

func (s *Static) CreateUser(_ context.Context, email, _, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	if _, taken := s.emails[key]; taken {
		return "", fmt.Errorf("%w: %s", ErrEmailAlreadyExists, email)
	}
	uid := uuid.NewString()
	s.emails[key] = uid
	return uid, nil
}

func (s *Static) DeleteUser(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, owner := range s.emails {
		if owner == uid {
			delete(s.emails, email)
		}
	}
	for token, id := range s.tokens {
		if id.UID == uid {
			delete(s.tokens, token)
		}
	}
	return nil
}
