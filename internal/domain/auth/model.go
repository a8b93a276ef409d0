package auth

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleVisitor Role = "visitor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleVisitor:
		return true
	}
	return false
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// LoginAttempt is one recorded login, successful or not.
type LoginAttempt struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Success   bool      `json:"success"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SecurityQuestion is the per-user recovery question. The answer is compared
// case-insensitively after trimming.
type SecurityQuestion struct {
	UserID   string
	Question string
	Answer   string
}

// PasswordReset tracks one user's in-flight recovery: the issued code, its
// expiry, and the wrong-answer counter that drives the temporary block.
type PasswordReset struct {
	UserID         string
	Code           string
	ExpiresAt      time.Time
	FailedAttempts int
	BlockedUntil   *time.Time
	UpdatedAt      time.Time
}
