package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

type TokenState string

const (
	TokenMissing TokenState = "missing"
	TokenExpired TokenState = "expired"
	TokenValid   TokenState = "valid"
	// TokenOpaque is a token without a readable expiry.
	TokenOpaque TokenState = "opaque"
)

type TokenStatus struct {
	State     TokenState
	ExpiresAt time.Time
}

// AuthService reports on the bearer token in use. Obtaining tokens is left
// to the identity provider.
type AuthService interface {
	WhoAmI(ctx context.Context) (models.User, error)
	Ping(ctx context.Context) (models.AuthStatus, error)
	TokenStatus() TokenStatus
	// Login replaces the bearer token for the rest of the session.
	Login(token string) TokenStatus
}

type authService struct {
	client client.Client
	tokens *client.TokenStore
	now    func() time.Time
}

func NewAuthService(c client.Client, tokens *client.TokenStore) AuthService {
	return &authService{client: c, tokens: tokens, now: time.Now}
}

func (a *authService) WhoAmI(ctx context.Context) (models.User, error) {
	return a.client.Me(ctx)
}

func (a *authService) Ping(ctx context.Context) (models.AuthStatus, error) {
	return a.client.Ping(ctx)
}

func (a *authService) TokenStatus() TokenStatus {
	tok, err := a.tokens.Token()
	if err != nil || tok.AccessToken == "" {
		return TokenStatus{State: TokenMissing}
	}
	exp, ok := client.TokenExpiry(tok.AccessToken)
	switch {
	case !ok:
		return TokenStatus{State: TokenOpaque}
	case !exp.After(a.now()):
		return TokenStatus{State: TokenExpired, ExpiresAt: exp}
	default:
		return TokenStatus{State: TokenValid, ExpiresAt: exp}
	}
}

func (a *authService) Login(token string) TokenStatus {
	a.tokens.Set(token)
	return a.TokenStatus()
}
