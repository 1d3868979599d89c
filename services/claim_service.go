package services

import (
	"context"
	"sync"
	"time"

	"booking-gateway-server/crm"
	"booking-gateway-server/models"
	"booking-gateway-server/store"
)

// ClaimService arbitrates concurrent job claims. Each booking id gets its own
// mutex so two contractors racing for the same booking are totally ordered,
// while claims on distinct bookings never wait on each other. There is no
// global lock across bookings; the map mutex is only held for the lookup.
//
// The database's conditional update in ConfirmWithContractor is the second
// line of defense, so even another process sharing the database cannot
// double-assign a booking.
type ClaimService struct {
	bookings *store.BookingStore
	jobs     *store.JobStore
	events   Events

	mu    sync.Mutex
	locks map[uint]*bookingLock
}

type bookingLock struct {
	mu       sync.Mutex
	lastUsed time.Time
}

func NewClaimService(bookings *store.BookingStore, jobs *store.JobStore, events Events) *ClaimService {
	if events == nil {
		events = NopEvents{}
	}
	return &ClaimService{
		bookings: bookings,
		jobs:     jobs,
		events:   events,
		locks:    make(map[uint]*bookingLock),
	}
}

// lockFor returns the mutex owned by this booking id, creating it on first
// use.
func (s *ClaimService) lockFor(bookingID uint) *bookingLock {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[bookingID]
	if !ok {
		l = &bookingLock{}
		s.locks[bookingID] = l
	}
	l.lastUsed = time.Now()
	return l
}

// Cleanup drops per-booking locks that have been idle longer than maxIdle.
// A lock is only removed when nobody holds it: TryLock under the map mutex
// guarantees no claimer can acquire a stale entry concurrently.
func (s *ClaimService) Cleanup(maxIdle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for id, l := range s.locks {
		if l.lastUsed.After(cutoff) {
			continue
		}
		if l.mu.TryLock() {
			l.mu.Unlock()
			delete(s.locks, id)
		}
	}
}

// Claim binds a contractor to a pending booking. Exactly one of any set of
// concurrent claims on the same booking succeeds; the rest get ErrConflict.
// The first claimer to acquire the booking's section and find it pending
// wins; arrival order at the section is the only tie-break.
func (s *ClaimService) Claim(ctx context.Context, bookingID, contractorID uint, price float64) (*models.JobRecord, error) {
	l := s.lockFor(bookingID)
	l.mu.Lock()
	defer l.mu.Unlock()

	// Re-check under the section: losers bail out here with a clean conflict
	// instead of a failed update.
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsClaimable() {
		return nil, store.ErrConflict
	}

	confirmed, err := s.bookings.ConfirmWithContractor(ctx, bookingID, contractorID)
	if err != nil {
		return nil, err
	}

	job := &models.JobRecord{
		BookingID:    bookingID,
		ContractorID: contractorID,
		Price:        price,
		Status:       models.JobStatusAccepted,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.events.Publish(crm.EventBookingConfirmed, confirmed)
	return job, nil
}
