package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/auth"
	userdomain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/user"
)

type ForgotPassword interface {
	Execute(ctx context.Context, email string) error
}

type forgotPassword struct {
	users  userdomain.Repository
	resets domain.PasswordResetRepository
	mailer domain.ResetMailer
	log    *logrus.Logger
}

func NewForgotPassword(users userdomain.Repository, resets domain.PasswordResetRepository, mailer domain.ResetMailer, log *logrus.Logger) ForgotPassword {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &forgotPassword{users: users, resets: resets, mailer: mailer, log: log}
}

// Execute never reveals whether the email exists: unknown addresses are a
// silent no-op.
func (uc *forgotPassword) Execute(ctx context.Context, email string) error {
	u, err := uc.users.FindActiveUnlockedByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	if u == nil {
		return nil
	}

	token := uuid.NewString()
	if err := uc.resets.DeleteByEmail(ctx, u.Email); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	if err := uc.resets.Save(ctx, &domain.PasswordReset{Email: u.Email, Token: token}); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}

	if err := uc.mailer.SendPasswordReset(ctx, u.Email, token); err != nil {
		uc.log.WithField("email", u.Email).WithError(err).Error("send password reset mail")
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	return nil
}

type ResetPasswordInput struct {
	Token    string
	Password string
}

type ResetPassword interface {
	Execute(ctx context.Context, in ResetPasswordInput) error
}

type resetPassword struct {
	users    userdomain.Repository
	resets   domain.PasswordResetRepository
	tokens   domain.RefreshTokenRepository
	hasher   domain.PasswordHasher
	tokenTTL time.Duration
}

func NewResetPassword(users userdomain.Repository, resets domain.PasswordResetRepository, tokens domain.RefreshTokenRepository, hasher domain.PasswordHasher, tokenTTL time.Duration) ResetPassword {
	return &resetPassword{users: users, resets: resets, tokens: tokens, hasher: hasher, tokenTTL: tokenTTL}
}

func (uc *resetPassword) Execute(ctx context.Context, in ResetPasswordInput) error {
	reset, err := uc.resets.FindByToken(ctx, in.Token)
	if err != nil {
		if errors.Is(err, domain.ErrResetNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	if reset.Expired(time.Now(), uc.tokenTTL) {
		return ErrInvalidResetToken
	}

	u, err := uc.users.FindByEmail(ctx, reset.Email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	if u == nil {
		return ErrInvalidResetToken
	}

	hashed, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	u.Password = hashed
	if err := uc.users.Update(ctx, u); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}

	// A password change invalidates every outstanding session.
	if err := uc.tokens.RevokeAllForUser(ctx, u.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	if err := uc.resets.DeleteByEmail(ctx, reset.Email); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthInternal, err)
	}
	return nil
}
