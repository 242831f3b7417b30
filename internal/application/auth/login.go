package auth

import (
	"context"
	"fmt"
	"time"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/auth"
	userdomain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/user"
)

type TokenTTLs struct {
	Refresh    time.Duration
	RememberMe time.Duration
}

type LoginInput struct {
	Email    string
	Password string
	Remember bool
}

type TokenPairOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Login interface {
	Execute(ctx context.Context, in LoginInput) (TokenPairOutput, error)
}

type login struct {
	users  userdomain.Repository
	tokens domain.RefreshTokenRepository
	hasher domain.PasswordHasher
	issuer domain.TokenIssuer
	ttls   TokenTTLs
}

func NewLogin(users userdomain.Repository, tokens domain.RefreshTokenRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, ttls TokenTTLs) Login {
	return &login{users: users, tokens: tokens, hasher: hasher, issuer: issuer, ttls: ttls}
}

func (uc *login) Execute(ctx context.Context, in LoginInput) (TokenPairOutput, error) {
	u, err := uc.users.FindActiveUnlockedByEmail(ctx, in.Email)
	if err != nil {
		return TokenPairOutput{}, fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	if u == nil || !uc.hasher.Compare(u.Password, in.Password) {
		return TokenPairOutput{}, ErrInvalidCredentials
	}

	now := time.Now()
	u.LastLoginAt = &now
	if err := uc.users.Update(ctx, u); err != nil {
		return TokenPairOutput{}, fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}

	return issuePair(ctx, uc.issuer, uc.tokens, uc.ttls, *u, in.Remember)
}

// issuePair signs a fresh access/refresh pair and persists the refresh
// token's hash. Shared by login and refresh rotation.
func issuePair(ctx context.Context, issuer domain.TokenIssuer, tokens domain.RefreshTokenRepository, ttls TokenTTLs, u userdomain.User, remember bool) (TokenPairOutput, error) {
	access, err := issuer.NewAccessToken(domain.UserClaims{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  int(u.Role),
	})
	if err != nil {
		return TokenPairOutput{}, fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}

	ttl := ttls.Refresh
	if remember {
		ttl = ttls.RememberMe
	}
	refresh, err := issuer.NewRefreshToken(u.ID, ttl, remember)
	if err != nil {
		return TokenPairOutput{}, fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}

	if err := tokens.Save(ctx, &domain.RefreshToken{
		UserID:    u.ID,
		TokenHash: domain.HashToken(refresh),
		ExpiresAt: time.Now().Add(ttl),
	}); err != nil {
		return TokenPairOutput{}, fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}

	return TokenPairOutput{AccessToken: access, RefreshToken: refresh}, nil
}
