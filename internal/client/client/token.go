package client

import (
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// TokenStore is an oauth2.TokenSource holding a bearer token that can be
// replaced at runtime, e.g. by the shell's login command.
type TokenStore struct {
	mu  sync.RWMutex
	tok *oauth2.Token
}

func NewTokenStore(accessToken string) *TokenStore {
	s := &TokenStore{}
	s.Set(accessToken)
	return s
}

// Set replaces the token. An empty string clears it.
func (s *TokenStore) Set(accessToken string) {
	accessToken = strings.TrimSpace(accessToken)
	s.mu.Lock()
	defer s.mu.Unlock()
	if accessToken == "" {
		s.tok = nil
		return
	}
	tok := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	if exp, ok := TokenExpiry(accessToken); ok {
		tok.Expiry = exp
	}
	s.tok = tok
}

func (s *TokenStore) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tok == nil {
		return nil, ErrNotAuthenticated
	}
	cp := *s.tok
	return &cp, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// Opaque tokens report ok=false.
func TokenExpiry(raw string) (exp time.Time, ok bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
