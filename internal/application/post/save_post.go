package post

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

type CreatePostInput struct {
	Title        string
	Description  string
	Status       int
	ActingUserID int64
}

type CreatePost interface {
	Execute(ctx context.Context, in CreatePostInput) (PostOutput, error)
}

type createPost struct {
	repo domain.Repository
}

func NewCreatePost(repo domain.Repository) CreatePost {
	return &createPost{repo: repo}
}

func (uc *createPost) Execute(ctx context.Context, in CreatePostInput) (PostOutput, error) {
	p, err := domain.NewPost(in.Title, in.Description, in.Status, in.ActingUserID, in.ActingUserID)
	if err != nil {
		return PostOutput{}, fmt.Errorf("%w: %v", ErrInvalidPost, err)
	}

	taken, err := uc.repo.TitleExists(ctx, p.Title, 0)
	if err != nil {
		return PostOutput{}, fmt.Errorf("%w: %v", ErrSavePost, err)
	}
	if taken {
		return PostOutput{}, ErrTitleTaken
	}

	if err := uc.repo.Create(ctx, &p); err != nil {
		return PostOutput{}, fmt.Errorf("%w: %v", ErrSavePost, err)
	}
	return toOutput(p), nil
}

type UpdatePostInput struct {
	PostID       int64
	Title        *string
	Description  *string
	Status       *int
	ActingUserID int64
}

type UpdatePost interface {
	Execute(ctx context.Context, in UpdatePostInput) (PostOutput, error)
}

type updatePost struct {
	repo domain.Repository
}

func NewUpdatePost(repo domain.Repository) UpdatePost {
	return &updatePost{repo: repo}
}

func (uc *updatePost) Execute(ctx context.Context, in UpdatePostInput) (PostOutput, error) {
	p, err := uc.repo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return PostOutput{}, ErrPostNotFound
		}
		return PostOutput{}, fmt.Errorf("%w: %v", ErrSavePost, err)
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return PostOutput{}, fmt.Errorf("%w: %v", ErrInvalidPost, domain.ErrEmptyTitle)
		}
		taken, err := uc.repo.TitleExists(ctx, title, p.ID)
		if err != nil {
			return PostOutput{}, fmt.Errorf("%w: %v", ErrSavePost, err)
		}
		if taken {
			return PostOutput{}, ErrTitleTaken
		}
		p.Title = title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		if !domain.ValidStatus(*in.Status) {
			return PostOutput{}, fmt.Errorf("%w: %v", ErrInvalidPost, domain.ErrInvalidStatus)
		}
		p.Status = *in.Status
	}
	p.UpdatedUserID = in.ActingUserID

	if err := uc.repo.Update(ctx, p); err != nil {
		return PostOutput{}, fmt.Errorf("%w: %v", ErrSavePost, err)
	}
	return toOutput(*p), nil
}
