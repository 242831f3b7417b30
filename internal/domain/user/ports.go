package user

import (
	"context"
	"time"
)

type ListFilters struct {
	Name      string
	Email     string
	Role      *int
	StartDate *time.Time
	EndDate   *time.Time
}

type Page struct {
	Items   []User
	Page    int
	PerPage int
	Total   int64
	Pages   int
}

type Repository interface {
	Paginate(ctx context.Context, filters ListFilters, excludeUserID int64, page, perPage int) (Page, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetActiveUnlocked(ctx context.Context, userID int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindActiveUnlockedByEmail(ctx context.Context, email string) (*User, error)
	FindByName(ctx context.Context, name string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	SoftDelete(ctx context.Context, userIDs []int64, deletedUserID int64) (int64, error)
	LockAll(ctx context.Context, userIDs []int64) (int64, error)
	UnlockAll(ctx context.Context, userIDs []int64) (int64, error)
}
