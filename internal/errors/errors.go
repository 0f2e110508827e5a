package errors

import (
	"errors"
)

var (
	ErrMissingToken         = errors.New("authorization token missing")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenMalformed       = errors.New("invalid token")
	ErrTokenVerification    = errors.New("token verification failed")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailAlreadyInUse    = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrForbidden            = errors.New("access forbidden")
	ErrTooManyLoginAttempts = errors.New("too many login attempts from this IP, please try again later")
)
