package crm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"booking-gateway-server/models"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// Event is the payload posted to the CRM webhook for each booking-lifecycle
// change.
type Event struct {
	Type         string    `json:"type"`
	BookingID    uint      `json:"booking_id"`
	Status       string    `json:"status"`
	ContractorID *uint     `json:"contractor_id,omitempty"`
	Service      string    `json:"service"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Notifier delivers booking-lifecycle events to an external CRM webhook.
// Publishing hands the event to a buffered channel consumed by a single
// worker goroutine; a slow or failing sink never delays or fails the booking
// or claim operation that triggered the event. When the queue is full the
// event is dropped rather than blocking the request.
type Notifier struct {
	webhookURL string
	maxRetries int
	client     *http.Client
	inbox      chan Event
	done       chan struct{}
}

func NewNotifier(webhookURL string, queueSize, maxRetries int) *Notifier {
	if queueSize <= 0 {
		queueSize = 256
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Notifier{
		webhookURL: webhookURL,
		maxRetries: maxRetries,
		client:     &http.Client{Timeout: 5 * time.Second},
		inbox:      make(chan Event, queueSize),
		done:       make(chan struct{}),
	}
}

// Start launches the delivery goroutine.
func (n *Notifier) Start() {
	go n.run()
}

// Close flushes queued events and waits for the delivery goroutine to exit.
func (n *Notifier) Close() {
	close(n.inbox)
	<-n.done
}

// Publish queues a lifecycle event. Never blocks.
func (n *Notifier) Publish(eventType string, booking *models.Booking) {
	ev := Event{
		Type:         eventType,
		BookingID:    booking.ID,
		Status:       string(booking.Status),
		ContractorID: booking.ContractorID,
		Service:      booking.Service,
		OccurredAt:   time.Now().UTC(),
	}
	select {
	case n.inbox <- ev:
	default:
		log.Printf("crm queue full, dropping %s for booking %d", eventType, booking.ID)
	}
}

func (n *Notifier) run() {
	defer close(n.done)
	for ev := range n.inbox {
		if n.webhookURL == "" {
			continue
		}
		n.deliver(ev)
	}
}

// deliver posts one event with bounded retry and linear backoff. Failures are
// logged and abandoned; the CRM is a best-effort sink.
func (n *Notifier) deliver(ev Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("crm event marshal failed: %v", err)
		return
	}

	for attempt := 1; attempt <= n.maxRetries; attempt++ {
		resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < 300 {
				return
			}
			err = &statusError{code: resp.StatusCode}
		}
		log.Printf("crm delivery attempt %d/%d for %s booking %d failed: %v",
			attempt, n.maxRetries, ev.Type, ev.BookingID, err)
		if attempt < n.maxRetries {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}
