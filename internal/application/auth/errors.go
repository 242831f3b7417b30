package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("the selected email address doesn't exist or the password is wrong")
	ErrInvalidRefreshToken = errors.New("refresh token invalid")
	ErrInvalidIdentity     = errors.New("invalid identity")
	ErrInvalidResetToken   = errors.New("reset token invalid or expired")
	ErrAuthInternal        = errors.New("authentication failed")
)
