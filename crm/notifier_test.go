package crm

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"booking-gateway-server/models"
)

func testBooking(id uint) *models.Booking {
	return &models.Booking{
		ID:      id,
		Service: "plumbing",
		Status:  models.BookingStatusPending,
	}
}

func TestNotifierDeliversEvents(t *testing.T) {
	var mu sync.Mutex
	var received []Event

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var ev Event
		if err := json.Unmarshal(body, &ev); err != nil {
			t.Errorf("bad event payload: %v", err)
		}
		mu.Lock()
		received = append(received, ev)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNotifier(server.URL, 16, 3)
	n.Start()

	n.Publish(EventBookingCreated, testBooking(1))
	n.Publish(EventBookingConfirmed, testBooking(1))
	// Close flushes the inbox before returning.
	n.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 2 {
		t.Fatalf("expected 2 delivered events, got %d", len(received))
	}
	if received[0].Type != EventBookingCreated || received[1].Type != EventBookingConfirmed {
		t.Errorf("events out of order: %s, %s", received[0].Type, received[1].Type)
	}
	if received[0].BookingID != 1 {
		t.Errorf("expected booking 1, got %d", received[0].BookingID)
	}
}

func TestNotifierRetriesOnFailure(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNotifier(server.URL, 16, 3)
	n.Start()
	n.Publish(EventBookingCancelled, testBooking(2))
	n.Close()

	mu.Lock()
	defer mu.Unlock()
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestNotifierWithoutURLIsNoop(t *testing.T) {
	n := NewNotifier("", 4, 3)
	n.Start()
	n.Publish(EventBookingCreated, testBooking(3))
	// Close must not hang with an unset sink.
	n.Close()
}

func TestPublishNeverBlocksWhenQueueFull(t *testing.T) {
	// Worker not started, so the queue fills up and further publishes drop.
	n := NewNotifier("http://127.0.0.1:1", 2, 1)
	for i := 0; i < 10; i++ {
		n.Publish(EventBookingCreated, testBooking(uint(i + 1)))
	}
}
