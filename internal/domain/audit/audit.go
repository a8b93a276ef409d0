package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Entry is one audit trail row. Changes holds new_data for INSERT/UPDATE
// and deleted_record for DELETE.
type Entry struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	UserEmail string         `json:"user_email,omitempty"`
	Action    string         `json:"action"`
	TableName string         `json:"table_name"`
	RecordID  string         `json:"record_id"`
	Changes   map[string]any `json:"changes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type logModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id"`
	Action    string    `gorm:"column:action"`
	Table     string    `gorm:"column:table_name"`
	RecordID  string    `gorm:"column:record_id"`
	Changes   string    `gorm:"column:changes"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (logModel) TableName() string { return "audit_logs" }

type listRow struct {
	logModel
	UserEmail string `gorm:"column:user_email"`
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&logModel{})
}

func (r *Repository) Log(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	changes := ""
	if e.Changes != nil {
		data, err := json.Marshal(e.Changes)
		if err != nil {
			return err
		}
		changes = string(data)
	}

	m := logModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    e.Action,
		Table:     e.TableName,
		RecordID:  e.RecordID,
		Changes:   changes,
		CreatedAt: e.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *Repository) List(ctx context.Context, limit int) ([]Entry, error) {
	var rows []listRow
	tx := r.db.WithContext(ctx).
		Table("audit_logs").
		Select("audit_logs.*, users.email AS user_email").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
		Order("audit_logs.created_at DESC").
		Limit(limit).
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		e := Entry{
			ID:        row.ID,
			UserID:    row.UserID,
			UserEmail: row.UserEmail,
			Action:    row.Action,
			TableName: row.Table,
			RecordID:  row.RecordID,
			CreatedAt: row.CreatedAt,
		}
		if row.Changes != "" {
			var changes map[string]any
			if err := json.Unmarshal([]byte(row.Changes), &changes); err == nil {
				e.Changes = changes
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
