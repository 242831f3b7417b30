package post

import (
	"strings"
	"time"
)

const (
	StatusInactive = 0
	StatusActive   = 1
)

type Post struct {
	ID            int64
	Title         string
	Description   string
	Status        int
	CreateUserID  int64
	UpdatedUserID int64
	DeletedUserID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewPost(title, description string, status int, createUserID, updatedUserID int64) (Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Post{}, ErrEmptyTitle
	}
	if !ValidStatus(status) {
		return Post{}, ErrInvalidStatus
	}

	return Post{
		Title:         title,
		Description:   description,
		Status:        status,
		CreateUserID:  createUserID,
		UpdatedUserID: updatedUserID,
	}, nil
}

func ValidStatus(status int) bool {
	return status == StatusInactive || status == StatusActive
}
