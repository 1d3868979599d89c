package store

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"booking-gateway-server/models"
)

// ApiKeyRegistry validates presented keys and meters their usage. Usage
// recording is fire-and-forget: increments are handed to a single writer
// goroutine through a buffered channel so a slow database write can never
// hold up the response path. A full buffer drops the sample.
type ApiKeyRegistry struct {
	db    *gorm.DB
	usage chan uint
	done  chan struct{}
}

func NewApiKeyRegistry(db *gorm.DB, buffer int) *ApiKeyRegistry {
	if buffer <= 0 {
		buffer = 256
	}
	return &ApiKeyRegistry{
		db:    db,
		usage: make(chan uint, buffer),
		done:  make(chan struct{}),
	}
}

// Start launches the usage writer goroutine.
func (r *ApiKeyRegistry) Start() {
	go r.run()
}

// Stop drains queued usage increments and waits for the writer to exit.
func (r *ApiKeyRegistry) Stop() {
	close(r.usage)
	<-r.done
}

func (r *ApiKeyRegistry) run() {
	defer close(r.done)
	for keyID := range r.usage {
		now := time.Now()
		err := r.db.Model(&models.ApiKey{}).
			Where("id = ?", keyID).
			UpdateColumns(map[string]any{
				"usage_count":  gorm.Expr("usage_count + ?", 1),
				"last_used_at": now,
			}).Error
		if err != nil {
			log.Printf("api key usage write failed for key %d: %v", keyID, err)
		}
	}
}

// Validate resolves a presented raw key. Unknown or inactive keys yield
// ErrInvalidKey. Callers handle the absent-key case themselves; an empty
// string is never a valid key.
func (r *ApiKeyRegistry) Validate(ctx context.Context, rawKey string) (*models.ApiKey, error) {
	if rawKey == "" {
		return nil, ErrInvalidKey
	}
	var key models.ApiKey
	err := r.db.WithContext(ctx).
		Where("key = ?", rawKey).
		First(&key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidKey
		}
		return nil, err
	}
	if !key.Active {
		return nil, ErrInvalidKey
	}
	return &key, nil
}

// RecordUsage queues a usage increment for the key. Never blocks; a failure
// to record usage must not fail the request it belongs to.
func (r *ApiKeyRegistry) RecordUsage(keyID uint) {
	select {
	case r.usage <- keyID:
	default:
		log.Printf("api key usage queue full, dropping increment for key %d", keyID)
	}
}

// Mint creates a new active key with an opaque token.
func (r *ApiKeyRegistry) Mint(ctx context.Context, name string) (*models.ApiKey, error) {
	key := &models.ApiKey{
		Key:    strings.ReplaceAll(uuid.NewString(), "-", ""),
		Name:   name,
		Active: true,
	}
	if err := r.db.WithContext(ctx).Create(key).Error; err != nil {
		return nil, err
	}
	return key, nil
}

// Deactivate turns a key off. Requests presenting it are rejected afterwards;
// its usage history is retained.
func (r *ApiKeyRegistry) Deactivate(ctx context.Context, rawKey string) error {
	res := r.db.WithContext(ctx).
		Model(&models.ApiKey{}).
		Where("key = ?", rawKey).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
