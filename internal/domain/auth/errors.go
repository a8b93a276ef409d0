package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrUserNotFound       = errors.New("user not found")
	ErrResetUnavailable   = errors.New("password reset unavailable")
	ErrResetBlocked       = errors.New("password reset temporarily blocked")
	ErrWrongAnswer        = errors.New("wrong security answer")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")
	ErrWeakPassword       = errors.New("password does not meet requirements")
)
