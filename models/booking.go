package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	CustomerName  string        `json:"customer_name" gorm:"size:255;not null"`
	CustomerPhone string        `json:"customer_phone" gorm:"size:20;not null"`
	Service       string        `json:"service" gorm:"size:255;not null"`
	PreferredDate string        `json:"preferred_date" gorm:"size:20;not null"`
	PreferredTime string        `json:"preferred_time" gorm:"size:20"`
	Address       string        `json:"address" gorm:"size:500;not null"`
	Notes         *string       `json:"notes" gorm:"size:1000"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','confirmed','cancelled')"`
	ContractorID  *uint         `json:"contractor_id"` // Set exactly once, on a successful claim
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Contractor *Contractor `json:"contractor,omitempty" gorm:"foreignKey:ContractorID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// IsClaimable reports whether a claim could still succeed against this booking.
func (b *Booking) IsClaimable() bool {
	return b.Status == BookingStatusPending && b.ContractorID == nil
}

// BookingCreate represents the request structure for creating a booking
type BookingCreate struct {
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerPhone string  `json:"customer_phone" binding:"required"`
	Service       string  `json:"service" binding:"required"`
	PreferredDate string  `json:"preferred_date" binding:"required"`
	PreferredTime string  `json:"preferred_time"`
	Address       string  `json:"address" binding:"required"`
	Notes         *string `json:"notes"`
}
