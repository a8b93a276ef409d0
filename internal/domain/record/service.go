package record

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"sic/internal/domain/audit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// duplicateWindow is the advisory duplicate-contract window. The boundary is
// strict: exactly one hour apart is not a duplicate.
const duplicateWindow = time.Hour

const Channel = "service_records"

type Service struct {
	records  RepositoryInterface
	auditLog AuditLogger
	notifier ChangeNotifier
}

func NewService(records RepositoryInterface, auditLog AuditLogger, notifier ChangeNotifier) *Service {
	return &Service{
		records:  records,
		auditLog: auditLog,
		notifier: notifier,
	}
}

func (s *Service) Create(ctx context.Context, userID string, req RecordPayload) (*ServiceRecord, error) {
	rec, err := recordFromPayload(req)
	if err != nil {
		return nil, err
	}

	rec.ID = uuid.NewString()
	rec.CreatedBy = userID
	rec.CreatedAt = time.Now()

	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logMutation(ctx, userID, audit.ActionInsert, rec.ID, map[string]any{
		"new_data": mutationSummary(rec),
	})
	s.notifier.Notify(Channel)

	return rec, nil
}

// CheckDuplicate reports whether any record with the same contract number was
// created within the last hour. Advisory only: creation is never blocked.
func (s *Service) CheckDuplicate(ctx context.Context, contractNumber string) (bool, error) {
	contractNumber = strings.TrimSpace(contractNumber)
	if contractNumber == "" {
		return false, nil
	}
	since := time.Now().Add(-duplicateWindow)
	n, err := s.records.CountByContractSince(ctx, contractNumber, since)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ServiceRecord, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Update replaces every writable field; id and created_at are immutable.
// Concurrent edits are last-write-wins.
func (s *Service) Update(ctx context.Context, userID, id string, req RecordPayload) (*ServiceRecord, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := recordFromPayload(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt

	if err := s.records.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.logMutation(ctx, userID, audit.ActionUpdate, updated.ID, map[string]any{
		"new_data": mutationSummary(updated),
	})
	s.notifier.Notify(Channel)

	return updated, nil
}

// Delete is permanent; a snapshot of the removed record goes to the audit log.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}

	s.logMutation(ctx, userID, audit.ActionDelete, id, map[string]any{
		"deleted_record": mutationSummary(existing),
	})
	s.notifier.Notify(Channel)

	return nil
}

func recordFromPayload(req RecordPayload) (*ServiceRecord, error) {
	if strings.TrimSpace(req.OperatorName) == "" ||
		strings.TrimSpace(req.TechnicianName) == "" ||
		strings.TrimSpace(req.CompanyName) == "" ||
		strings.TrimSpace(req.ContractNumber) == "" {
		return nil, ErrMissingRequiredData
	}
	serviceType := ServiceType(strings.TrimSpace(req.ServiceType))
	if !serviceType.Valid() {
		return nil, ErrInvalidServiceType
	}
	if strings.TrimSpace(req.GeneralComments) == "" {
		return nil, ErrCommentsRequired
	}
	if len(req.Images) > MaxImages {
		return nil, ErrTooManyImages
	}

	return &ServiceRecord{
		OperatorName:    strings.TrimSpace(req.OperatorName),
		TechnicianName:  strings.TrimSpace(req.TechnicianName),
		CompanyName:     strings.TrimSpace(req.CompanyName),
		ContractNumber:  strings.TrimSpace(req.ContractNumber),
		ServiceType:     serviceType,
		Street:          req.Street,
		Neighborhood:    req.Neighborhood,
		CTOLocation:     req.CTOLocation,
		AreaCX:          req.AreaCX,
		AvailableSlots:  req.AvailableSlots,
		Unit:            req.Unit,
		VisitedCXs:      req.VisitedCXs,
		GeneralComments: req.GeneralComments,
		Images:          req.Images,
	}, nil
}

func mutationSummary(rec *ServiceRecord) map[string]any {
	return map[string]any{
		"service_type":    string(rec.ServiceType),
		"operator_name":   rec.OperatorName,
		"contract_number": rec.ContractNumber,
		"neighborhood":    rec.Neighborhood,
	}
}

func (s *Service) logMutation(ctx context.Context, userID, action, recordID string, changes map[string]any) {
	entry := &audit.Entry{
		UserID:    userID,
		Action:    action,
		TableName: "service_records",
		RecordID:  recordID,
		Changes:   changes,
	}
	if err := s.auditLog.Log(ctx, entry); err != nil {
		log.Printf("audit: failed to log %s on %s: %v", action, recordID, err)
		return
	}
	s.notifier.Notify("audit_logs")
}
