package record

import (
	"context"
	"time"

	"sic/internal/domain/audit"
)

// RepositoryInterface — only the methods the record service uses
type RepositoryInterface interface {
	Create(ctx context.Context, rec *ServiceRecord) error
	GetByID(ctx context.Context, id string) (*ServiceRecord, error)
	Update(ctx context.Context, rec *ServiceRecord) error
	Delete(ctx context.Context, id string) error
	CountByContractSince(ctx context.Context, contractNumber string, since time.Time) (int64, error)
}

// AuditLogger persists an audit trail entry for each mutation.
type AuditLogger interface {
	Log(ctx context.Context, e *audit.Entry) error
}

// ChangeNotifier pushes a payload-less "something changed" event to
// subscribers of a logical channel.
type ChangeNotifier interface {
	Notify(channel string)
}
