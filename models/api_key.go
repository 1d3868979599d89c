package models

import (
	"time"
)

// ApiKey identifies a calling application for metering purposes. Absent keys
// mean anonymous access; presented keys must exist and be active.
type ApiKey struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Key        string     `json:"key" gorm:"size:64;uniqueIndex;not null"`
	Name       string     `json:"name" gorm:"size:255;not null"`
	Active     bool       `json:"active" gorm:"not null;default:true"`
	UsageCount int64      `json:"usage_count" gorm:"not null;default:0"` // Only ever increases
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the ApiKey model
func (ApiKey) TableName() string {
	return "api_keys"
}

// ApiKeyCreate represents the request structure for minting an API key
type ApiKeyCreate struct {
	Name string `json:"name" binding:"required"`
}
