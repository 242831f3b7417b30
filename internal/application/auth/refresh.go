package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/auth"
	userdomain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/user"
)

type Refresh interface {
	Execute(ctx context.Context, refreshToken string) (TokenPairOutput, error)
}

type refresh struct {
	users  userdomain.Repository
	tokens domain.RefreshTokenRepository
	issuer domain.TokenIssuer
	ttls   TokenTTLs
}

func NewRefresh(users userdomain.Repository, tokens domain.RefreshTokenRepository, issuer domain.TokenIssuer, ttls TokenTTLs) Refresh {
	return &refresh{users: users, tokens: tokens, issuer: issuer, ttls: ttls}
}

// Execute rotates a refresh token: the presented token is revoked and a new
// pair is issued. A revoked, expired or unknown token is rejected so a
// replayed old token can never mint new credentials.
func (uc *refresh) Execute(ctx context.Context, refreshToken string) (TokenPairOutput, error) {
	userID, remember, err := uc.issuer.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPairOutput{}, ErrInvalidRefreshToken
	}

	hash := domain.HashToken(refreshToken)
	record, err := uc.tokens.FindByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return TokenPairOutput{}, ErrInvalidRefreshToken
		}
		return TokenPairOutput{}, fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	if !record.Usable(time.Now()) || record.UserID != userID {
		return TokenPairOutput{}, ErrInvalidRefreshToken
	}

	u, err := uc.users.GetActiveUnlocked(ctx, userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return TokenPairOutput{}, ErrInvalidIdentity
		}
		return TokenPairOutput{}, fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}

	if err := uc.tokens.Revoke(ctx, hash); err != nil {
		return TokenPairOutput{}, fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}

	return issuePair(ctx, uc.issuer, uc.tokens, uc.ttls, *u, remember)
}

type Logout interface {
	Execute(ctx context.Context, refreshToken string) error
}

type logout struct {
	tokens domain.RefreshTokenRepository
}

func NewLogout(tokens domain.RefreshTokenRepository) Logout {
	return &logout{tokens: tokens}
}

func (uc *logout) Execute(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := uc.tokens.Revoke(ctx, domain.HashToken(refreshToken)); err != nil && !errors.Is(err, domain.ErrTokenNotFound) {
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	return nil
}
