package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"booking-gateway-server/crm"
	"booking-gateway-server/database"
	"booking-gateway-server/models"
	"booking-gateway-server/store"
)

type captureEvents struct {
	mu     sync.Mutex
	events []capturedEvent
}

type capturedEvent struct {
	eventType string
	status    models.BookingStatus
}

func (c *captureEvents) Publish(eventType string, booking *models.Booking) {
	c.mu.Lock()
	c.events = append(c.events, capturedEvent{eventType: eventType, status: booking.Status})
	c.mu.Unlock()
}

func (c *captureEvents) all() []capturedEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]capturedEvent(nil), c.events...)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedBooking(t *testing.T, bookings *store.BookingStore) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		CustomerName:  "Amina K",
		CustomerPhone: "+22240001122",
		Service:       "plumbing",
		PreferredDate: "2026-09-15",
		Address:       "12 Rue des Jardins",
	}
	if err := bookings.Create(context.Background(), booking); err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return booking
}

func TestSweepCancelsStalePending(t *testing.T) {
	db := newTestDB(t)
	bookings := store.NewBookingStore(db)

	stale := seedBooking(t, bookings)
	claimed := seedBooking(t, bookings)
	if _, err := bookings.ConfirmWithContractor(context.Background(), claimed.ID, 7); err != nil {
		t.Fatalf("ConfirmWithContractor failed: %v", err)
	}

	// Everything created above is already older than a nanosecond TTL.
	time.Sleep(5 * time.Millisecond)
	job := NewExpirationJob(bookings, nil, time.Nanosecond)
	job.sweep()

	got, err := bookings.GetByID(context.Background(), stale.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.BookingStatusCancelled {
		t.Errorf("expected stale booking cancelled, got %s", got.Status)
	}

	kept, err := bookings.GetByID(context.Background(), claimed.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if kept.Status != models.BookingStatusConfirmed {
		t.Errorf("claimed booking must survive the sweep, got %s", kept.Status)
	}
}

func TestSweepLeavesFreshPendingAlone(t *testing.T) {
	db := newTestDB(t)
	bookings := store.NewBookingStore(db)

	fresh := seedBooking(t, bookings)

	job := NewExpirationJob(bookings, nil, 24*time.Hour)
	job.sweep()

	got, err := bookings.GetByID(context.Background(), fresh.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.BookingStatusPending {
		t.Errorf("fresh booking must stay pending, got %s", got.Status)
	}
}

func TestExpireSkipsBookingClaimedAfterListing(t *testing.T) {
	db := newTestDB(t)
	bookings := store.NewBookingStore(db)
	events := &captureEvents{}
	job := NewExpirationJob(bookings, events, time.Nanosecond)

	booking := seedBooking(t, bookings)

	// The listing saw the booking pending; a contractor claims it before the
	// sweep reaches it.
	if _, err := bookings.ConfirmWithContractor(context.Background(), booking.ID, 5); err != nil {
		t.Fatalf("ConfirmWithContractor failed: %v", err)
	}

	if job.expire(context.Background(), booking) {
		t.Fatal("expire must not touch a just-claimed booking")
	}

	got, err := bookings.GetByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.BookingStatusConfirmed {
		t.Errorf("expected booking to stay confirmed, got %s", got.Status)
	}
	if got.ContractorID == nil || *got.ContractorID != 5 {
		t.Errorf("expected contractor 5 to keep the booking, got %v", got.ContractorID)
	}
	if evs := events.all(); len(evs) != 0 {
		t.Errorf("expected no events for a skipped booking, got %d", len(evs))
	}
}

func TestExpireEmitsCancelledEvent(t *testing.T) {
	db := newTestDB(t)
	bookings := store.NewBookingStore(db)
	events := &captureEvents{}
	job := NewExpirationJob(bookings, events, time.Nanosecond)

	booking := seedBooking(t, bookings)
	time.Sleep(5 * time.Millisecond)
	job.sweep()

	evs := events.all()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	if evs[0].eventType != crm.EventBookingCancelled {
		t.Errorf("expected %s, got %s", crm.EventBookingCancelled, evs[0].eventType)
	}
	if evs[0].status != models.BookingStatusCancelled {
		t.Errorf("event must carry the cancelled status, got %s", evs[0].status)
	}

	got, err := bookings.GetByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.BookingStatusCancelled {
		t.Errorf("expected cancelled booking, got %s", got.Status)
	}
}

func TestStartDisabledWithZeroTTL(t *testing.T) {
	db := newTestDB(t)
	bookings := store.NewBookingStore(db)

	job := NewExpirationJob(bookings, nil, 0)
	// Must return without launching the ticker goroutine.
	job.Start()
}
