package post

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrTitleTaken   = errors.New("title already exists")
	ErrInvalidPost  = errors.New("invalid post payload")
	ErrNoPostIDs    = errors.New("provide a list of post ids")
	ErrListPosts    = errors.New("failed to list posts")
	ErrSavePost     = errors.New("failed to save post")
	ErrDeletePosts  = errors.New("failed to delete posts")
	ErrExportPosts  = errors.New("failed to export posts")
)
