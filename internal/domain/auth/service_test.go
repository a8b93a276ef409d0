package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockUserStore) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *mockUserStore) TouchLastSeen(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockUserStore) GetLoginState(ctx context.Context, id string) (*LoginState, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoginState), args.Error(1)
}

func (m *mockUserStore) SetLoginState(ctx context.Context, id string, failed int, lockedUntil *time.Time) error {
	args := m.Called(ctx, id, failed, lockedUntil)
	return args.Error(0)
}

func (m *mockUserStore) RecordLoginAttempt(ctx context.Context, a *LoginAttempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockUserStore) GetSecurityQuestion(ctx context.Context, userID string) (*SecurityQuestion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SecurityQuestion), args.Error(1)
}

func (m *mockUserStore) GetPasswordReset(ctx context.Context, userID string) (*PasswordReset, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PasswordReset), args.Error(1)
}

func (m *mockUserStore) SavePasswordReset(ctx context.Context, p *PasswordReset) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockUserStore) DeletePasswordReset(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockJWT struct {
	mock.Mock
}

func (m *mockJWT) GenerateToken(userID, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func testUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &User{
		ID:           "u-1",
		Email:        "tech@example.com",
		Name:         "Tech",
		PasswordHash: string(hash),
		Role:         RoleUser,
	}
}

func TestLoginSuccess(t *testing.T) {
	store := new(mockUserStore)
	jwtMock := new(mockJWT)
	svc := NewService(store, jwtMock, 15*time.Minute, 30*time.Minute)

	user := testUser(t, "secret-pw1!")
	store.On("GetByEmail", mock.Anything, "tech@example.com").Return(user, nil)
	store.On("GetLoginState", mock.Anything, "u-1").Return(&LoginState{}, nil)
	store.On("RecordLoginAttempt", mock.Anything, mock.MatchedBy(func(a *LoginAttempt) bool {
		return a.Success && a.Email == "tech@example.com"
	})).Return(nil)
	store.On("TouchLastSeen", mock.Anything, "u-1", mock.Anything).Return(nil)
	jwtMock.On("GenerateToken", "u-1", "tech@example.com", "user").Return("token-123", nil)

	result, err := svc.Login(context.Background(), LoginRequest{Email: "Tech@Example.com", Password: "secret-pw1!"}, "ua", "127.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, "token-123", result.AccessToken)
	assert.Empty(t, result.User.PasswordHash)
	store.AssertExpectations(t)
	jwtMock.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	store := new(mockUserStore)
	jwtMock := new(mockJWT)
	svc := NewService(store, jwtMock, 15*time.Minute, 30*time.Minute)

	user := testUser(t, "secret-pw1!")
	store.On("GetByEmail", mock.Anything, "tech@example.com").Return(user, nil)
	store.On("GetLoginState", mock.Anything, "u-1").Return(&LoginState{FailedAttempts: 1}, nil)
	store.On("RecordLoginAttempt", mock.Anything, mock.MatchedBy(func(a *LoginAttempt) bool {
		return !a.Success
	})).Return(nil)
	store.On("SetLoginState", mock.Anything, "u-1", 2, (*time.Time)(nil)).Return(nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "tech@example.com", Password: "nope"}, "", "")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	store.AssertExpectations(t)
}

func TestLoginLocksAfterFifthFailure(t *testing.T) {
	store := new(mockUserStore)
	jwtMock := new(mockJWT)
	svc := NewService(store, jwtMock, 15*time.Minute, 30*time.Minute)

	user := testUser(t, "secret-pw1!")
	store.On("GetByEmail", mock.Anything, "tech@example.com").Return(user, nil)
	store.On("GetLoginState", mock.Anything, "u-1").Return(&LoginState{FailedAttempts: 4}, nil)
	store.On("RecordLoginAttempt", mock.Anything, mock.Anything).Return(nil)
	store.On("SetLoginState", mock.Anything, "u-1", 5, mock.MatchedBy(func(t *time.Time) bool {
		return t != nil
	})).Return(nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "tech@example.com", Password: "nope"}, "", "")

	assert.ErrorIs(t, err, ErrAccountLocked)
	store.AssertExpectations(t)
}

func TestLoginWhileLocked(t *testing.T) {
	store := new(mockUserStore)
	jwtMock := new(mockJWT)
	svc := NewService(store, jwtMock, 15*time.Minute, 30*time.Minute)

	user := testUser(t, "secret-pw1!")
	until := time.Now().Add(10 * time.Minute)
	store.On("GetByEmail", mock.Anything, "tech@example.com").Return(user, nil)
	store.On("GetLoginState", mock.Anything, "u-1").Return(&LoginState{FailedAttempts: 5, LockedUntil: &until}, nil)
	store.On("RecordLoginAttempt", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "tech@example.com", Password: "secret-pw1!"}, "", "")

	assert.ErrorIs(t, err, ErrAccountLocked)
	store.AssertNotCalled(t, "SetLoginState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginUnknownEmail(t *testing.T) {
	store := new(mockUserStore)
	jwtMock := new(mockJWT)
	svc := NewService(store, jwtMock, 15*time.Minute, 30*time.Minute)

	store.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
	store.On("RecordLoginAttempt", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"}, "", "")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateAnswerIssuesCode(t *testing.T) {
	store := new(mockUserStore)
	svc := NewService(store, new(mockJWT), 15*time.Minute, 30*time.Minute)

	user := testUser(t, "secret-pw1!")
	store.On("GetByEmail", mock.Anything, "tech@example.com").Return(user, nil)
	store.On("GetPasswordReset", mock.Anything, "u-1").Return(nil, gorm.ErrRecordNotFound)
	store.On("GetSecurityQuestion", mock.Anything, "u-1").Return(&SecurityQuestion{
		UserID: "u-1", Question: "First pet?", Answer: "Rex",
	}, nil)
	store.On("SavePasswordReset", mock.Anything, mock.MatchedBy(func(p *PasswordReset) bool {
		return len(p.Code) == 6 && p.FailedAttempts == 0 && p.BlockedUntil == nil
	})).Return(nil)

	// case-insensitive with surrounding whitespace
	code, err := svc.ValidateAnswer(context.Background(), "tech@example.com", "  rex ")

	assert.NoError(t, err)
	assert.Len(t, code, 6)
	store.AssertExpectations(t)
}

func TestValidateAnswerWrong(t *testing.T) {
	store := new(mockUserStore)
	svc := NewService(store, new(mockJWT), 15*time.Minute, 30*time.Minute)

	user := testUser(t, "secret-pw1!")
	store.On("GetByEmail", mock.Anything, "tech@example.com").Return(user, nil)
	store.On("GetPasswordReset", mock.Anything, "u-1").Return(&PasswordReset{UserID: "u-1", FailedAttempts: 0}, nil)
	store.On("GetSecurityQuestion", mock.Anything, "u-1").Return(&SecurityQuestion{
		UserID: "u-1", Question: "First pet?", Answer: "Rex",
	}, nil)
	store.On("SavePasswordReset", mock.Anything, mock.MatchedBy(func(p *PasswordReset) bool {
		return p.FailedAttempts == 1 && p.BlockedUntil == nil
	})).Return(nil)

	_, err := svc.ValidateAnswer(context.Background(), "tech@example.com", "Bello")

	assert.ErrorIs(t, err, ErrWrongAnswer)
	store.AssertExpectations(t)
}

func TestValidateAnswerThirdFailureBlocks(t *testing.T) {
	store := new(mockUserStore)
	svc := NewService(store, new(mockJWT), 15*time.Minute, 30*time.Minute)

	user := testUser(t, "secret-pw1!")
	store.On("GetByEmail", mock.Anything, "tech@example.com").Return(user, nil)
	store.On("GetPasswordReset", mock.Anything, "u-1").Return(&PasswordReset{UserID: "u-1", FailedAttempts: 2}, nil)
	store.On("GetSecurityQuestion", mock.Anything, "u-1").Return(&SecurityQuestion{
		UserID: "u-1", Question: "First pet?", Answer: "Rex",
	}, nil)
	store.On("SavePasswordReset", mock.Anything, mock.MatchedBy(func(p *PasswordReset) bool {
		return p.BlockedUntil != nil
	})).Return(nil)

	_, err := svc.ValidateAnswer(context.Background(), "tech@example.com", "Bello")

	assert.ErrorIs(t, err, ErrResetBlocked)
	store.AssertExpectations(t)
}

func TestValidateAnswerWhileBlocked(t *testing.T) {
	store := new(mockUserStore)
	svc := NewService(store, new(mockJWT), 15*time.Minute, 30*time.Minute)

	user := testUser(t, "secret-pw1!")
	until := time.Now().Add(20 * time.Minute)
	store.On("GetByEmail", mock.Anything, "tech@example.com").Return(user, nil)
	store.On("GetPasswordReset", mock.Anything, "u-1").Return(&PasswordReset{UserID: "u-1", BlockedUntil: &until}, nil)

	_, err := svc.ValidateAnswer(context.Background(), "tech@example.com", "Rex")

	assert.ErrorIs(t, err, ErrResetBlocked)
	store.AssertNotCalled(t, "GetSecurityQuestion", mock.Anything, mock.Anything)
}

func TestConfirmResetSuccess(t *testing.T) {
	store := new(mockUserStore)
	svc := NewService(store, new(mockJWT), 15*time.Minute, 30*time.Minute)

	user := testUser(t, "old-pw123!")
	store.On("GetByEmail", mock.Anything, "tech@example.com").Return(user, nil)
	store.On("GetPasswordReset", mock.Anything, "u-1").Return(&PasswordReset{
		UserID:    "u-1",
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil)
	store.On("UpdatePasswordHash", mock.Anything, "u-1", mock.Anything).Return(nil)
	store.On("DeletePasswordReset", mock.Anything, "u-1").Return(nil)
	store.On("SetLoginState", mock.Anything, "u-1", 0, (*time.Time)(nil)).Return(nil)

	err := svc.ConfirmReset(context.Background(), "tech@example.com", "123456", "new-pass9!")

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestConfirmResetExpiredCode(t *testing.T) {
	store := new(mockUserStore)
	svc := NewService(store, new(mockJWT), 15*time.Minute, 30*time.Minute)

	user := testUser(t, "old-pw123!")
	store.On("GetByEmail", mock.Anything, "tech@example.com").Return(user, nil)
	store.On("GetPasswordReset", mock.Anything, "u-1").Return(&PasswordReset{
		UserID:    "u-1",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)

	err := svc.ConfirmReset(context.Background(), "tech@example.com", "123456", "new-pass9!")

	assert.ErrorIs(t, err, ErrInvalidResetCode)
	store.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmResetWeakPassword(t *testing.T) {
	store := new(mockUserStore)
	svc := NewService(store, new(mockJWT), 15*time.Minute, 30*time.Minute)

	err := svc.ConfirmReset(context.Background(), "tech@example.com", "123456", "short")

	assert.ErrorIs(t, err, ErrWeakPassword)
	store.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abcdef1!"))
	assert.ErrorIs(t, ValidatePassword("abcde1!"), ErrWeakPassword)
	assert.ErrorIs(t, ValidatePassword("abcdefgh!"), ErrWeakPassword)
	assert.ErrorIs(t, ValidatePassword("abcdefg1"), ErrWeakPassword)
}
