package auth

import (
	"context"
	"time"
)

type RefreshTokenRepository interface {
	Save(ctx context.Context, token *RefreshToken) error
	FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

type PasswordResetRepository interface {
	Save(ctx context.Context, reset *PasswordReset) error
	FindByToken(ctx context.Context, token string) (*PasswordReset, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// ResetMailer delivers the password-reset link. Implemented over SMTP in
// infrastructure/mail.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// UserClaims is the user snapshot embedded in access tokens.
type UserClaims struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  int    `json:"role"`
}

// TokenIssuer signs and verifies the JWT pair. Refresh tokens carry the
// remember-me flag so rotation can preserve the extended lifetime.
type TokenIssuer interface {
	NewAccessToken(user UserClaims) (string, error)
	NewRefreshToken(userID int64, ttl time.Duration, rememberMe bool) (string, error)
	ParseRefreshToken(token string) (userID int64, rememberMe bool, err error)
}
