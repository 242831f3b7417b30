package user

import (
	"context"
	"fmt"
	"time"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/user"
)

type UserOutput struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	ProfilePath string     `json:"profile_path,omitempty"`
	Role        int        `json:"role"`
	DOB         *time.Time `json:"dob,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	LockFlg     int        `json:"lock_flg"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
}

type ListUsersInput struct {
	Name         string
	Email        string
	Role         *int
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PerPage      int
	ActingUserID int64
}

type ListUsersOutput struct {
	Data []UserOutput `json:"data"`
	Meta PageMeta     `json:"meta"`
}

type ListUsers interface {
	Execute(ctx context.Context, in ListUsersInput) (ListUsersOutput, error)
}

type listUsers struct {
	repo domain.Repository
}

func NewListUsers(repo domain.Repository) ListUsers {
	return &listUsers{repo: repo}
}

func (uc *listUsers) Execute(ctx context.Context, in ListUsersInput) (ListUsersOutput, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.PerPage <= 0 {
		in.PerPage = 10
	}

	page, err := uc.repo.Paginate(ctx, domain.ListFilters{
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}, in.ActingUserID, in.Page, in.PerPage)
	if err != nil {
		return ListUsersOutput{}, fmt.Errorf("%w: %v", ErrListUsers, err)
	}

	items := make([]UserOutput, 0, len(page.Items))
	for _, u := range page.Items {
		items = append(items, toOutput(u))
	}

	return ListUsersOutput{
		Data: items,
		Meta: PageMeta{
			Page:    page.Page,
			PerPage: page.PerPage,
			Total:   page.Total,
			Pages:   page.Pages,
		},
	}, nil
}

func toOutput(u domain.User) UserOutput {
	return UserOutput{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		ProfilePath: u.ProfilePath,
		Role:        int(u.Role),
		DOB:         u.DOB,
		Phone:       u.Phone,
		Address:     u.Address,
		LockFlg:     u.LockFlg,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
