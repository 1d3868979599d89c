package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"booking-gateway-server/models"
)

// JobStore persists the append-only claim audit trail. Records are created
// once and never updated.
type JobStore struct {
	db *gorm.DB
}

func NewJobStore(db *gorm.DB) *JobStore {
	return &JobStore{db: db}
}

func (s *JobStore) Create(ctx context.Context, job *models.JobRecord) error {
	job.Status = models.JobStatusAccepted
	return s.db.WithContext(ctx).Create(job).Error
}

func (s *JobStore) GetByBooking(ctx context.Context, bookingID uint) (*models.JobRecord, error) {
	var job models.JobRecord
	err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (s *JobStore) ListByContractor(ctx context.Context, contractorID uint) ([]models.JobRecord, error) {
	var jobs []models.JobRecord
	err := s.db.WithContext(ctx).
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC, id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
