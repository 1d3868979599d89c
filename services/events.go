package services

import "booking-gateway-server/models"

// Events receives booking-lifecycle notifications. Implementations must be
// fire-and-forget: Publish never blocks the caller and a delivery failure
// never fails the triggering request.
type Events interface {
	Publish(eventType string, booking *models.Booking)
}

// NopEvents discards everything. Used when no sink is configured and in tests.
type NopEvents struct{}

func (NopEvents) Publish(string, *models.Booking) {}
