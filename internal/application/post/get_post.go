package post

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

type GetPost interface {
	Execute(ctx context.Context, postID int64) (PostOutput, error)
}

type getPost struct {
	repo domain.Repository
}

func NewGetPost(repo domain.Repository) GetPost {
	return &getPost{repo: repo}
}

func (uc *getPost) Execute(ctx context.Context, postID int64) (PostOutput, error) {
	p, err := uc.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return PostOutput{}, ErrPostNotFound
		}
		return PostOutput{}, fmt.Errorf("%w: %v", ErrListPosts, err)
	}
	return toOutput(*p), nil
}
