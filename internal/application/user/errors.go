package user

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrNameTaken      = errors.New("name already exists")
	ErrEmailTaken     = errors.New("email already exists")
	ErrInvalidUser    = errors.New("invalid user payload")
	ErrMissingProfile = errors.New("the profile field is required")
	ErrNoUserIDs      = errors.New("provide a list of user ids")
	ErrListUsers      = errors.New("failed to list users")
	ErrSaveUser       = errors.New("failed to save user")
	ErrDeleteUsers    = errors.New("failed to delete users")
	ErrLockUsers      = errors.New("failed to lock users")
)
