package user

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/user"
)

type GetUser interface {
	Execute(ctx context.Context, userID int64) (UserOutput, error)
}

type getUser struct {
	repo domain.Repository
}

func NewGetUser(repo domain.Repository) GetUser {
	return &getUser{repo: repo}
}

func (uc *getUser) Execute(ctx context.Context, userID int64) (UserOutput, error) {
	u, err := uc.repo.GetActiveUnlocked(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return UserOutput{}, ErrUserNotFound
		}
		return UserOutput{}, fmt.Errorf("%w: %v", ErrListUsers, err)
	}
	return toOutput(*u), nil
}
