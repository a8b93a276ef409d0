package auth

import (
	"context"
	"time"
)

// UserStore is the repository surface the auth service depends on.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	TouchLastSeen(ctx context.Context, id string, at time.Time) error
	GetLoginState(ctx context.Context, id string) (*LoginState, error)
	SetLoginState(ctx context.Context, id string, failed int, lockedUntil *time.Time) error
	RecordLoginAttempt(ctx context.Context, a *LoginAttempt) error
	GetSecurityQuestion(ctx context.Context, userID string) (*SecurityQuestion, error)
	GetPasswordReset(ctx context.Context, userID string) (*PasswordReset, error)
	SavePasswordReset(ctx context.Context, p *PasswordReset) error
	DeletePasswordReset(ctx context.Context, userID string) error
}

type jwtService interface {
	GenerateToken(userID, email, role string) (string, error)
}
