package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type userModel struct {
	ID                  string     `gorm:"column:id;primaryKey"`
	Email               string     `gorm:"column:email;uniqueIndex;not null"`
	Name                string     `gorm:"column:name;not null"`
	PasswordHash        string     `gorm:"column:password_hash;not null"`
	Role                string     `gorm:"column:role;not null;default:user"`
	FailedLoginAttempts int        `gorm:"column:failed_login_attempts;not null;default:0"`
	LockedUntil         *time.Time `gorm:"column:locked_until"`
	LastSeen            *time.Time `gorm:"column:last_seen"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

type loginAttemptModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Email     string    `gorm:"column:email;index;not null"`
	Success   bool      `gorm:"column:success;not null"`
	IP        *string   `gorm:"column:ip"`
	UserAgent *string   `gorm:"column:user_agent"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (loginAttemptModel) TableName() string { return "login_attempts" }

type securityQuestionModel struct {
	UserID   string `gorm:"column:user_id;primaryKey"`
	Question string `gorm:"column:question;not null"`
	Answer   string `gorm:"column:answer;not null"`
}

func (securityQuestionModel) TableName() string { return "security_questions" }

type passwordResetModel struct {
	UserID         string     `gorm:"column:user_id;primaryKey"`
	Code           string     `gorm:"column:code"`
	ExpiresAt      time.Time  `gorm:"column:expires_at"`
	FailedAttempts int        `gorm:"column:failed_attempts;not null;default:0"`
	BlockedUntil   *time.Time `gorm:"column:blocked_until"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (passwordResetModel) TableName() string { return "password_resets" }

func toDomainUser(m *userModel) *User {
	return &User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         Role(m.Role),
		LastSeen:     m.LastSeen,
		CreatedAt:    m.CreatedAt,
	}
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&userModel{}, &loginAttemptModel{}, &securityQuestionModel{}, &passwordResetModel{})
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainUser(&m), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainUser(&m), nil
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	err := r.db.WithContext(ctx).Create(&userModel{
		ID:           u.ID,
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	var models []userModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]User, 0, len(models))
	for i := range models {
		users = append(users, *toDomainUser(&models[i]))
	}
	return users, nil
}

func (r *Repository) UpdateRole(ctx context.Context, id string, role Role) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Update("role", string(role))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Update("password_hash", hash).Error
}

func (r *Repository) TouchLastSeen(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Update("last_seen", at).Error
}

// LoginState exposes the lockout columns the login flow needs without
// widening the domain User.
type LoginState struct {
	FailedAttempts int
	LockedUntil    *time.Time
}

func (r *Repository) GetLoginState(ctx context.Context, id string) (*LoginState, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Select("failed_login_attempts", "locked_until").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &LoginState{FailedAttempts: m.FailedLoginAttempts, LockedUntil: m.LockedUntil}, nil
}

func (r *Repository) SetLoginState(ctx context.Context, id string, failed int, lockedUntil *time.Time) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(map[string]any{
		"failed_login_attempts": failed,
		"locked_until":          lockedUntil,
	}).Error
}

func (r *Repository) RecordLoginAttempt(ctx context.Context, a *LoginAttempt) error {
	return r.db.WithContext(ctx).Create(&loginAttemptModel{
		ID:        a.ID,
		Email:     strings.ToLower(strings.TrimSpace(a.Email)),
		Success:   a.Success,
		IP:        nullableString(a.IP),
		UserAgent: nullableString(a.UserAgent),
		CreatedAt: a.CreatedAt,
	}).Error
}

func (r *Repository) ListLoginAttempts(ctx context.Context, limit int) ([]LoginAttempt, error) {
	var models []loginAttemptModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	attempts := make([]LoginAttempt, 0, len(models))
	for i := range models {
		m := &models[i]
		a := LoginAttempt{ID: m.ID, Email: m.Email, Success: m.Success, CreatedAt: m.CreatedAt}
		if m.IP != nil {
			a.IP = *m.IP
		}
		if m.UserAgent != nil {
			a.UserAgent = *m.UserAgent
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

func (r *Repository) GetSecurityQuestion(ctx context.Context, userID string) (*SecurityQuestion, error) {
	var m securityQuestionModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, err
	}
	return &SecurityQuestion{UserID: m.UserID, Question: m.Question, Answer: m.Answer}, nil
}

func (r *Repository) SetSecurityQuestion(ctx context.Context, q *SecurityQuestion) error {
	return r.db.WithContext(ctx).Save(&securityQuestionModel{
		UserID:   q.UserID,
		Question: q.Question,
		Answer:   q.Answer,
	}).Error
}

func (r *Repository) GetPasswordReset(ctx context.Context, userID string) (*PasswordReset, error) {
	var m passwordResetModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, err
	}
	return &PasswordReset{
		UserID:         m.UserID,
		Code:           m.Code,
		ExpiresAt:      m.ExpiresAt,
		FailedAttempts: m.FailedAttempts,
		BlockedUntil:   m.BlockedUntil,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func (r *Repository) SavePasswordReset(ctx context.Context, p *PasswordReset) error {
	return r.db.WithContext(ctx).Save(&passwordResetModel{
		UserID:         p.UserID,
		Code:           p.Code,
		ExpiresAt:      p.ExpiresAt,
		FailedAttempts: p.FailedAttempts,
		BlockedUntil:   p.BlockedUntil,
		UpdatedAt:      p.UpdatedAt,
	}).Error
}

func (r *Repository) DeletePasswordReset(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&passwordResetModel{}).Error
}

func nullableString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
