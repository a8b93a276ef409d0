package record

import (
	"context"
	"time"

	"sic/internal/pkg/utils"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type recordModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	OperatorName    string    `gorm:"column:operator_name"`
	TechnicianName  string    `gorm:"column:technician_name"`
	CompanyName     string    `gorm:"column:company_name"`
	ContractNumber  string    `gorm:"column:contract_number;index"`
	ServiceType     string    `gorm:"column:service_type"`
	Street          string    `gorm:"column:street"`
	Neighborhood    string    `gorm:"column:neighborhood"`
	CTOLocation     string    `gorm:"column:cto_location"`
	AreaCX          string    `gorm:"column:area_cx"`
	AvailableSlots  string    `gorm:"column:available_slots"`
	Unit            string    `gorm:"column:unit"`
	VisitedCXs      string    `gorm:"column:visited_cxs"`
	GeneralComments *string   `gorm:"column:general_comments"`
	Images          string    `gorm:"column:images"`
	CreatedBy       *string   `gorm:"column:created_by"`
	CreatedAt       time.Time `gorm:"column:created_at;index"`
}

func (recordModel) TableName() string { return "service_records" }

func toDomainRecord(m recordModel) *ServiceRecord {
	var comments, createdBy string
	if m.GeneralComments != nil {
		comments = *m.GeneralComments
	}
	if m.CreatedBy != nil {
		createdBy = *m.CreatedBy
	}

	return &ServiceRecord{
		ID:              m.ID,
		OperatorName:    m.OperatorName,
		TechnicianName:  m.TechnicianName,
		CompanyName:     m.CompanyName,
		ContractNumber:  m.ContractNumber,
		ServiceType:     ServiceType(m.ServiceType),
		Street:          m.Street,
		Neighborhood:    m.Neighborhood,
		CTOLocation:     m.CTOLocation,
		AreaCX:          m.AreaCX,
		AvailableSlots:  m.AvailableSlots,
		Unit:            m.Unit,
		VisitedCXs:      m.VisitedCXs,
		GeneralComments: comments,
		Images:          utils.StringToImages(m.Images),
		CreatedBy:       createdBy,
		CreatedAt:       m.CreatedAt,
	}
}

func toRecordModel(r *ServiceRecord) recordModel {
	var comments, createdBy *string
	if r.GeneralComments != "" {
		v := r.GeneralComments
		comments = &v
	}
	if r.CreatedBy != "" {
		v := r.CreatedBy
		createdBy = &v
	}

	return recordModel{
		ID:              r.ID,
		OperatorName:    r.OperatorName,
		TechnicianName:  r.TechnicianName,
		CompanyName:     r.CompanyName,
		ContractNumber:  r.ContractNumber,
		ServiceType:     string(r.ServiceType),
		Street:          r.Street,
		Neighborhood:    r.Neighborhood,
		CTOLocation:     r.CTOLocation,
		AreaCX:          r.AreaCX,
		AvailableSlots:  r.AvailableSlots,
		Unit:            r.Unit,
		VisitedCXs:      r.VisitedCXs,
		GeneralComments: comments,
		Images:          utils.ImagesToString(r.Images),
		CreatedBy:       createdBy,
		CreatedAt:       r.CreatedAt,
	}
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&recordModel{})
}

func (r *Repository) Create(ctx context.Context, rec *ServiceRecord) error {
	m := toRecordModel(rec)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rec = *toDomainRecord(m)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*ServiceRecord, error) {
	var m recordModel
	tx := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRecord(m), nil
}

func (r *Repository) Update(ctx context.Context, rec *ServiceRecord) error {
	m := toRecordModel(rec)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&recordModel{}, "id = ?", id).Error
}

// Fetch returns all records matching the conjunctive filters, newest first.
func (r *Repository) Fetch(ctx context.Context, f Filters) ([]ServiceRecord, error) {
	q := r.db.WithContext(ctx).Model(&recordModel{})

	if f.Start != nil {
		q = q.Where("created_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("created_at <= ?", *f.End)
	}
	if f.ServiceType != "" {
		q = q.Where("service_type = ?", f.ServiceType)
	}
	if f.Neighborhood != "" {
		q = q.Where("neighborhood = ?", f.Neighborhood)
	}
	if f.Operator != "" {
		q = q.Where("operator_name = ?", f.Operator)
	}

	var models []recordModel
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]ServiceRecord, 0, len(models))
	for _, m := range models {
		records = append(records, *toDomainRecord(m))
	}
	return records, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	tx := r.db.WithContext(ctx).Model(&recordModel{}).Count(&total)
	return total, tx.Error
}

func (r *Repository) Recent(ctx context.Context, limit int) ([]ServiceRecord, error) {
	var models []recordModel
	tx := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	records := make([]ServiceRecord, 0, len(models))
	for _, m := range models {
		records = append(records, *toDomainRecord(m))
	}
	return records, nil
}

// CountByContractSince backs the intake duplicate warning.
func (r *Repository) CountByContractSince(ctx context.Context, contractNumber string, since time.Time) (int64, error) {
	var total int64
	tx := r.db.WithContext(ctx).
		Model(&recordModel{}).
		Where("contract_number = ?", contractNumber).
		Where("created_at >= ?", since).
		Count(&total)
	return total, tx.Error
}
