package user

import (
	"context"
	"fmt"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/user"
)

type BulkUsersOutput struct {
	Affected int64 `json:"affected"`
}

type DeleteUsers interface {
	Execute(ctx context.Context, userIDs []int64, actingUserID int64) (BulkUsersOutput, error)
}

type deleteUsers struct {
	repo domain.Repository
}

func NewDeleteUsers(repo domain.Repository) DeleteUsers {
	return &deleteUsers{repo: repo}
}

func (uc *deleteUsers) Execute(ctx context.Context, userIDs []int64, actingUserID int64) (BulkUsersOutput, error) {
	if len(userIDs) == 0 {
		return BulkUsersOutput{}, ErrNoUserIDs
	}
	affected, err := uc.repo.SoftDelete(ctx, userIDs, actingUserID)
	if err != nil {
		return BulkUsersOutput{}, fmt.Errorf("%w: %v", ErrDeleteUsers, err)
	}
	if affected == 0 {
		return BulkUsersOutput{}, ErrUserNotFound
	}
	return BulkUsersOutput{Affected: affected}, nil
}

type LockUsers interface {
	Execute(ctx context.Context, userIDs []int64) (BulkUsersOutput, error)
}

type lockUsers struct {
	repo domain.Repository
	lock bool
}

func NewLockUsers(repo domain.Repository) LockUsers {
	return &lockUsers{repo: repo, lock: true}
}

func NewUnlockUsers(repo domain.Repository) LockUsers {
	return &lockUsers{repo: repo, lock: false}
}

func (uc *lockUsers) Execute(ctx context.Context, userIDs []int64) (BulkUsersOutput, error) {
	if len(userIDs) == 0 {
		return BulkUsersOutput{}, ErrNoUserIDs
	}

	var affected int64
	var err error
	if uc.lock {
		affected, err = uc.repo.LockAll(ctx, userIDs)
	} else {
		affected, err = uc.repo.UnlockAll(ctx, userIDs)
	}
	if err != nil {
		return BulkUsersOutput{}, fmt.Errorf("%w: %v", ErrLockUsers, err)
	}
	if affected == 0 {
		return BulkUsersOutput{}, ErrUserNotFound
	}
	return BulkUsersOutput{Affected: affected}, nil
}
