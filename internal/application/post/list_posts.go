package post

import (
	"context"
	"fmt"
	"time"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

type PostOutput struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        int       `json:"status"`
	CreateUserID  int64     `json:"created_user_id"`
	UpdatedUserID int64     `json:"updated_user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
}

type ListPostsInput struct {
	Name        string
	Description string
	Status      *int
	Date        *time.Time
	Page        int
	PerPage     int
}

type ListPostsOutput struct {
	Data []PostOutput `json:"data"`
	Meta PageMeta     `json:"meta"`
}

type ListPosts interface {
	Execute(ctx context.Context, in ListPostsInput) (ListPostsOutput, error)
}

type listPosts struct {
	repo domain.Repository
}

func NewListPosts(repo domain.Repository) ListPosts {
	return &listPosts{repo: repo}
}

func (uc *listPosts) Execute(ctx context.Context, in ListPostsInput) (ListPostsOutput, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.PerPage <= 0 {
		in.PerPage = 10
	}

	page, err := uc.repo.Paginate(ctx, domain.ListFilters{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		Date:        in.Date,
	}, in.Page, in.PerPage)
	if err != nil {
		return ListPostsOutput{}, fmt.Errorf("%w: %v", ErrListPosts, err)
	}

	items := make([]PostOutput, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toOutput(p))
	}

	return ListPostsOutput{
		Data: items,
		Meta: PageMeta{
			Page:    page.Page,
			PerPage: page.PerPage,
			Total:   page.Total,
			Pages:   page.Pages,
		},
	}, nil
}

func toOutput(p domain.Post) PostOutput {
	return PostOutput{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Status:        p.Status,
		CreateUserID:  p.CreateUserID,
		UpdatedUserID: p.UpdatedUserID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
