package admin

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"sic/internal/domain/audit"
	"sic/internal/domain/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// onlineWindow is how recently a user must have been seen to count as
// active.
const onlineWindow = 15 * time.Minute

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 1000
)

var (
	ErrUserExists   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrSelfDelete   = errors.New("cannot delete own account")
	ErrInvalidRole  = errors.New("invalid role")
)

// UserStore is the slice of the user repository the admin panel needs.
type UserStore interface {
	List(ctx context.Context) ([]auth.User, error)
	GetByEmail(ctx context.Context, email string) (*auth.User, error)
	Create(ctx context.Context, u *auth.User) error
	UpdateRole(ctx context.Context, id string, role auth.Role) error
	Delete(ctx context.Context, id string) error
	SetSecurityQuestion(ctx context.Context, q *auth.SecurityQuestion) error
	ListLoginAttempts(ctx context.Context, limit int) ([]auth.LoginAttempt, error)
}

type AuditReader interface {
	List(ctx context.Context, limit int) ([]audit.Entry, error)
}

type ChangeNotifier interface {
	Notify(channel string)
}

type Service struct {
	users    UserStore
	auditLog AuditReader
	notifier ChangeNotifier
}

func NewService(users UserStore, auditLog AuditReader, notifier ChangeNotifier) *Service {
	return &Service{users: users, auditLog: auditLog, notifier: notifier}
}

// UserView is a user row plus the derived online flag.
type UserView struct {
	auth.User
	Online bool `json:"online"`
}

type UserListResult struct {
	Users       []UserView `json:"users"`
	ActiveCount int        `json:"active_count"`
}

// ListUsers returns all accounts with presence derived from last_seen.
func (s *Service) ListUsers(ctx context.Context) (*UserListResult, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-onlineWindow)
	views := make([]UserView, 0, len(users))
	active := 0
	for i := range users {
		online := users[i].LastSeen != nil && users[i].LastSeen.After(cutoff)
		if online {
			active++
		}
		views = append(views, UserView{User: users[i], Online: online})
	}
	return &UserListResult{Users: views, ActiveCount: active}, nil
}

// CreateUser registers a new account with a generated initial password. The
// password is returned once and never stored in the clear.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*auth.User, string, error) {
	role := auth.Role(req.Role)
	if !role.Valid() {
		return nil, "", ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	password, err := generateInitialPassword()
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &auth.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil, "", ErrUserExists
		}
		return nil, "", err
	}

	if req.SecurityQuestion != "" && req.SecurityAnswer != "" {
		err := s.users.SetSecurityQuestion(ctx, &auth.SecurityQuestion{
			UserID:   user.ID,
			Question: req.SecurityQuestion,
			Answer:   req.SecurityAnswer,
		})
		if err != nil {
			return nil, "", err
		}
	}

	s.notifier.Notify("users")
	user.PasswordHash = ""
	return user, password, nil
}

// UpdateRole changes a user's role.
func (s *Service) UpdateRole(ctx context.Context, id string, role auth.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.notifier.Notify("users")
	return nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.notifier.Notify("users")
	return nil
}

// AuditLogView is an audit entry plus a rendered message for the admin
// panel.
type AuditLogView struct {
	audit.Entry
	Message string `json:"message"`
}

// ListAuditLogs returns the newest entries, each with a human-readable
// summary line.
func (s *Service) ListAuditLogs(ctx context.Context, limit int) ([]AuditLogView, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	entries, err := s.auditLog.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]AuditLogView, 0, len(entries))
	for i := range entries {
		views = append(views, AuditLogView{Entry: entries[i], Message: formatAuditMessage(&entries[i])})
	}
	return views, nil
}

// ListLoginAttempts returns the newest login attempts.
func (s *Service) ListLoginAttempts(ctx context.Context, limit int) ([]auth.LoginAttempt, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	return s.users.ListLoginAttempts(ctx, limit)
}

func formatAuditMessage(e *audit.Entry) string {
	actor := e.UserEmail
	if actor == "" {
		actor = "unknown"
	}
	var verb string
	switch e.Action {
	case audit.ActionInsert:
		verb = "created a record in"
	case audit.ActionUpdate:
		verb = "updated a record in"
	case audit.ActionDelete:
		verb = "deleted a record from"
	default:
		verb = e.Action + " on"
	}
	return fmt.Sprintf("%s %s %s (%s)", actor, verb, e.TableName, e.RecordID)
}

// generateInitialPassword builds a random password that satisfies the
// account policy.
func generateInitialPassword() (string, error) {
	const alphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"
	var b strings.Builder
	for i := 0; i < 8; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	digit, err := rand.Int(rand.Reader, big.NewInt(10))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d!", b.String(), digit.Int64()), nil
}
