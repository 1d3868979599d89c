package models

import (
	"time"
)

type JobStatus string

const (
	JobStatusAccepted JobStatus = "accepted"
)

// JobRecord is the append-only audit row created when a contractor wins a
// claim. It is never mutated after creation.
type JobRecord struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	BookingID    uint      `json:"booking_id" gorm:"not null;index"`
	ContractorID uint      `json:"contractor_id" gorm:"not null;index"`
	Price        float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Status       JobStatus `json:"status" gorm:"type:varchar(20);not null;default:'accepted'"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Booking    Booking    `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Contractor Contractor `json:"-" gorm:"foreignKey:ContractorID"`
}

// TableName specifies the table name for the JobRecord model
func (JobRecord) TableName() string {
	return "job_records"
}

// JobClaimCreate represents the request structure for claiming a job
type JobClaimCreate struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}
