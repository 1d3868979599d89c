package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"booking-gateway-server/models"
)

// ContractorStore backs the Authenticator collaborator: signup, login lookup,
// and activation. Business components only ever see contractor ids.
type ContractorStore struct {
	db *gorm.DB
}

func NewContractorStore(db *gorm.DB) *ContractorStore {
	return &ContractorStore{db: db}
}

func (s *ContractorStore) Create(ctx context.Context, contractor *models.Contractor) error {
	return s.db.WithContext(ctx).Create(contractor).Error
}

func (s *ContractorStore) GetByID(ctx context.Context, id uint) (*models.Contractor, error) {
	var contractor models.Contractor
	if err := s.db.WithContext(ctx).First(&contractor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contractor, nil
}

func (s *ContractorStore) GetByPhone(ctx context.Context, phoneNumber string) (*models.Contractor, error) {
	var contractor models.Contractor
	err := s.db.WithContext(ctx).
		Where("phone_number = ?", phoneNumber).
		First(&contractor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contractor, nil
}

// Activate flips a contractor to active. Activating an already-active
// contractor is a no-op.
func (s *ContractorStore) Activate(ctx context.Context, id uint) (*models.Contractor, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Contractor{}).
		Where("id = ?", id).
		Update("status", models.ContractorStatusActive)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}
