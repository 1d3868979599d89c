package models

import (
	"time"

	"gorm.io/gorm"
)

type ContractorStatus string

const (
	ContractorStatusPending ContractorStatus = "pending"
	ContractorStatusActive  ContractorStatus = "active"
)

type Contractor struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	FullName     string           `json:"full_name" gorm:"size:255;not null"`
	PhoneNumber  string           `json:"phone_number" gorm:"size:20;uniqueIndex;not null"`
	PasswordHash string           `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Status       ContractorStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','active')"`
	CreatedAt    time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Contractor model
func (Contractor) TableName() string {
	return "contractors"
}

// BeforeCreate is a GORM hook that runs before creating a contractor
func (c *Contractor) BeforeCreate(tx *gorm.DB) error {
	if c.Status == "" {
		c.Status = ContractorStatusPending
	}
	return nil
}

// IsActive checks if the contractor may list or claim jobs
func (c *Contractor) IsActive() bool {
	return c.Status == ContractorStatusActive
}

// ContractorRegister represents the signup request structure
type ContractorRegister struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}

// ContractorLogin represents the login request structure
type ContractorLogin struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}
