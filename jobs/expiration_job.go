package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"booking-gateway-server/crm"
	"booking-gateway-server/models"
	"booking-gateway-server/services"
	"booking-gateway-server/store"
)

// ExpirationJob cancels bookings that have sat pending longer than the
// configured TTL. Cancellation goes through the same conditional update as
// the API, so a booking claimed mid-sweep is left alone.
type ExpirationJob struct {
	bookings *store.BookingStore
	events   services.Events
	ttl      time.Duration
	interval time.Duration
	stop     chan struct{}
}

func NewExpirationJob(bookings *store.BookingStore, events services.Events, ttl time.Duration) *ExpirationJob {
	if events == nil {
		events = services.NopEvents{}
	}
	return &ExpirationJob{
		bookings: bookings,
		events:   events,
		ttl:      ttl,
		interval: 10 * time.Minute,
		stop:     make(chan struct{}),
	}
}

// Start launches the periodic sweep in a goroutine. No-op when the TTL is
// zero.
func (j *ExpirationJob) Start() {
	if j.ttl <= 0 {
		log.Println("Booking expiration job disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		log.Printf("Booking expiration job started (TTL %s)", j.ttl)
		j.sweep()

		for {
			select {
			case <-ticker.C:
				j.sweep()
			case <-j.stop:
				return
			}
		}
	}()
}

func (j *ExpirationJob) Stop() {
	close(j.stop)
}

func (j *ExpirationJob) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-j.ttl)
	stale, err := j.bookings.ListStalePending(ctx, cutoff)
	if err != nil {
		log.Printf("Expiration sweep failed: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	expired := 0
	for i := range stale {
		if j.expire(ctx, &stale[i]) {
			expired++
		}
	}

	if expired > 0 {
		log.Printf("Expired %d stale pending bookings", expired)
	}
}

// expire cancels one stale booking. The conditional cancel only fires while
// the booking is still pending and unclaimed, so a claim that landed between
// the listing and this call is left alone.
func (j *ExpirationJob) expire(ctx context.Context, booking *models.Booking) bool {
	err := j.bookings.CancelIfPending(ctx, booking.ID)
	switch {
	case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrNotFound):
		return false
	case err != nil:
		log.Printf("Failed to expire booking %d: %v", booking.ID, err)
		return false
	}

	booking.Status = models.BookingStatusCancelled
	j.events.Publish(crm.EventBookingCancelled, booking)
	return true
}
