package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"booking-gateway-server/models"
)

// BookingStore owns booking records and their status transitions. It is the
// single source of truth for booking state; every transition after creation
// goes through an atomic conditional update so no reader can observe a
// confirmed booking without its contractor or vice versa.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

// Create persists a new booking with status pending and no contractor,
// regardless of what the caller set on those fields.
func (s *BookingStore) Create(ctx context.Context, booking *models.Booking) error {
	booking.Status = models.BookingStatusPending
	booking.ContractorID = nil
	return s.db.WithContext(ctx).Create(booking).Error
}

func (s *BookingStore) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// ListPending returns a point-in-time snapshot of unclaimed bookings,
// newest first.
func (s *BookingStore) ListPending(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("status = ? AND contractor_id IS NULL", models.BookingStatusPending).
		Order("created_at DESC, id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListStalePending returns pending bookings created before the cutoff. Used by
// the expiration job.
func (s *BookingStore) ListStalePending(ctx context.Context, before time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("status = ? AND created_at <= ?", models.BookingStatusPending, before).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ConfirmWithContractor is the only transition out of pending besides
// cancellation. The conditional update succeeds only while the booking is
// still pending and unclaimed, so two racing contractors cannot both win even
// without the arbiter's per-booking section.
func (s *BookingStore) ConfirmWithContractor(ctx context.Context, bookingID, contractorID uint) (*models.Booking, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ? AND contractor_id IS NULL", bookingID, models.BookingStatusPending).
		Updates(map[string]any{
			"status":        models.BookingStatusConfirmed,
			"contractor_id": contractorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the booking never existed or someone else got there first.
		var probe models.Booking
		if err := s.db.WithContext(ctx).First(&probe, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return nil, ErrConflict
	}
	return s.GetByID(ctx, bookingID)
}

// Cancel moves a booking to cancelled from any prior state and reports
// whether this call performed the transition. Cancelling an already-cancelled
// booking is an idempotent no-op (false, nil). A confirmed booking keeps its
// contractor_id after cancellation.
func (s *BookingStore) Cancel(ctx context.Context, bookingID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status <> ?", bookingID, models.BookingStatusCancelled).
		Update("status", models.BookingStatusCancelled)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count == 0 {
			return false, ErrNotFound
		}
		// Already cancelled.
		return false, nil
	}
	return true, nil
}

// CancelIfPending cancels only while the booking is still pending and
// unclaimed, so a claim that landed after the caller last looked always wins.
// ErrConflict means the booking has moved on (claimed or already cancelled).
func (s *BookingStore) CancelIfPending(ctx context.Context, bookingID uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ? AND contractor_id IS NULL", bookingID, models.BookingStatusPending).
		Update("status", models.BookingStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var probe models.Booking
		if err := s.db.WithContext(ctx).First(&probe, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return ErrConflict
	}
	return nil
}
