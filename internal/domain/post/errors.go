package post

import "errors"

var (
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrInvalidStatus = errors.New("status must be 0 or 1")
	ErrTitleTaken    = errors.New("title already taken")
	ErrBatchConflict = errors.New("batch insert conflict")
	ErrPostNotFound  = errors.New("post not found")
)
