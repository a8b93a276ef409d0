package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
	maxFailedResetAnswers  = 3
)

type Service struct {
	users     UserStore
	jwt       jwtService
	codeTTL   time.Duration
	blockTime time.Duration
}

type LoginResult struct {
	User        *User
	AccessToken string
}

func NewService(users UserStore, jwt jwtService, codeTTL, blockTime time.Duration) *Service {
	return &Service{users: users, jwt: jwt, codeTTL: codeTTL, blockTime: blockTime}
}

// Login verifies credentials and issues an access token. Every attempt is
// recorded; five consecutive failures lock the account for fifteen minutes.
func (s *Service) Login(ctx context.Context, req LoginRequest, userAgent, ip string) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordAttempt(ctx, email, false, userAgent, ip)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	state, err := s.users.GetLoginState(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if state.LockedUntil != nil && state.LockedUntil.After(now) {
		s.recordAttempt(ctx, email, false, userAgent, ip)
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordAttempt(ctx, email, false, userAgent, ip)
		failed := state.FailedAttempts + 1
		var lockedUntil *time.Time
		if failed >= maxFailedLoginAttempts {
			t := now.Add(lockoutDuration)
			lockedUntil = &t
		}
		if stateErr := s.users.SetLoginState(ctx, user.ID, failed, lockedUntil); stateErr != nil {
			return nil, stateErr
		}
		if lockedUntil != nil {
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if state.FailedAttempts > 0 || state.LockedUntil != nil {
		if err := s.users.SetLoginState(ctx, user.ID, 0, nil); err != nil {
			return nil, err
		}
	}

	s.recordAttempt(ctx, email, true, userAgent, ip)
	if err := s.users.TouchLastSeen(ctx, user.ID, now); err != nil {
		log.Printf("auth: failed to update last_seen for %s: %v", user.ID, err)
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: token}, nil
}

// GetCurrentUser loads the authenticated user's profile.
func (s *Service) GetCurrentUser(ctx context.Context, userID string) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// RequestReset starts the recovery flow and returns the user's security
// question. Accounts without a configured question cannot be recovered
// this way.
func (s *Service) RequestReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrResetUnavailable
		}
		return "", err
	}

	q, err := s.users.GetSecurityQuestion(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrResetUnavailable
		}
		return "", err
	}
	return q.Question, nil
}

// ValidateAnswer checks the security answer and, when correct, issues a
// six-digit code valid for the configured TTL. Three wrong answers block
// the flow for the configured duration.
func (s *Service) ValidateAnswer(ctx context.Context, email, answer string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrResetUnavailable
		}
		return "", err
	}

	now := time.Now()
	reset, err := s.users.GetPasswordReset(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		reset = &PasswordReset{UserID: user.ID}
	}
	if reset.BlockedUntil != nil && reset.BlockedUntil.After(now) {
		return "", ErrResetBlocked
	}

	q, err := s.users.GetSecurityQuestion(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrResetUnavailable
		}
		return "", err
	}

	if !answersMatch(q.Answer, answer) {
		reset.FailedAttempts++
		if reset.FailedAttempts >= maxFailedResetAnswers {
			t := now.Add(s.blockTime)
			reset.BlockedUntil = &t
			reset.FailedAttempts = 0
		}
		reset.UpdatedAt = now
		if saveErr := s.users.SavePasswordReset(ctx, reset); saveErr != nil {
			return "", saveErr
		}
		if reset.BlockedUntil != nil {
			return "", ErrResetBlocked
		}
		return "", ErrWrongAnswer
	}

	code, err := generateResetCode()
	if err != nil {
		return "", err
	}
	reset.Code = code
	reset.ExpiresAt = now.Add(s.codeTTL)
	reset.FailedAttempts = 0
	reset.BlockedUntil = nil
	reset.UpdatedAt = now
	if err := s.users.SavePasswordReset(ctx, reset); err != nil {
		return "", err
	}
	return code, nil
}

// ConfirmReset exchanges a valid code for a new password. The code is
// single-use.
func (s *Service) ConfirmReset(ctx context.Context, email, code, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetCode
		}
		return err
	}

	reset, err := s.users.GetPasswordReset(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetCode
		}
		return err
	}
	now := time.Now()
	if reset.BlockedUntil != nil && reset.BlockedUntil.After(now) {
		return ErrResetBlocked
	}
	if reset.Code == "" || reset.Code != code || !reset.ExpiresAt.After(now) {
		return ErrInvalidResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	if err := s.users.DeletePasswordReset(ctx, user.ID); err != nil {
		log.Printf("auth: failed to clear reset state for %s: %v", user.ID, err)
	}
	if err := s.users.SetLoginState(ctx, user.ID, 0, nil); err != nil {
		log.Printf("auth: failed to clear lockout for %s: %v", user.ID, err)
	}
	return nil
}

func (s *Service) recordAttempt(ctx context.Context, email string, success bool, userAgent, ip string) {
	err := s.users.RecordLoginAttempt(ctx, &LoginAttempt{
		ID:        uuid.NewString(),
		Email:     email,
		Success:   success,
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Printf("auth: failed to record login attempt for %s: %v", email, err)
	}
}

func answersMatch(stored, given string) bool {
	return strings.EqualFold(strings.TrimSpace(stored), strings.TrimSpace(given))
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
