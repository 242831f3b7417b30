package post

import (
	"context"
	"fmt"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

type DeletePostsOutput struct {
	Deleted int64 `json:"deleted"`
}

type DeletePosts interface {
	Execute(ctx context.Context, postIDs []int64, actingUserID int64) (DeletePostsOutput, error)
}

type deletePosts struct {
	repo domain.Repository
}

func NewDeletePosts(repo domain.Repository) DeletePosts {
	return &deletePosts{repo: repo}
}

func (uc *deletePosts) Execute(ctx context.Context, postIDs []int64, actingUserID int64) (DeletePostsOutput, error) {
	if len(postIDs) == 0 {
		return DeletePostsOutput{}, ErrNoPostIDs
	}

	deleted, err := uc.repo.SoftDelete(ctx, postIDs, actingUserID)
	if err != nil {
		return DeletePostsOutput{}, fmt.Errorf("%w: %v", ErrDeletePosts, err)
	}
	if deleted == 0 {
		return DeletePostsOutput{}, ErrPostNotFound
	}
	return DeletePostsOutput{Deleted: deleted}, nil
}
