package auth

import "errors"

var (
	ErrTokenNotFound = errors.New("refresh token not found")
	ErrResetNotFound = errors.New("password reset not found")
)
