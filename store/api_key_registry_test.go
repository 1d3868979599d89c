package store

import (
	"context"
	"errors"
	"testing"

	"booking-gateway-server/models"
)

func TestMintAndValidate(t *testing.T) {
	r := NewApiKeyRegistry(newTestDB(t), 8)
	ctx := context.Background()

	key, err := r.Mint(ctx, "mobile-app")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if key.Key == "" {
		t.Fatal("minted key has empty token")
	}
	if !key.Active {
		t.Fatal("minted key should be active")
	}

	got, err := r.Validate(ctx, key.Key)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got.ID != key.ID {
		t.Errorf("expected key %d, got %d", key.ID, got.ID)
	}
}

func TestValidateRejectsUnknownAndEmpty(t *testing.T) {
	r := NewApiKeyRegistry(newTestDB(t), 8)
	ctx := context.Background()

	if _, err := r.Validate(ctx, "no-such-key"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for unknown key, got %v", err)
	}
	if _, err := r.Validate(ctx, ""); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for empty key, got %v", err)
	}
}

func TestDeactivateRejectsFurtherUse(t *testing.T) {
	r := NewApiKeyRegistry(newTestDB(t), 8)
	ctx := context.Background()

	key, err := r.Mint(ctx, "partner")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if err := r.Deactivate(ctx, key.Key); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	if _, err := r.Validate(ctx, key.Key); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey after deactivation, got %v", err)
	}
}

func TestDeactivateUnknownKey(t *testing.T) {
	r := NewApiKeyRegistry(newTestDB(t), 8)

	if err := r.Deactivate(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordUsagePersistsCount(t *testing.T) {
	db := newTestDB(t)
	r := NewApiKeyRegistry(db, 64)
	ctx := context.Background()

	key, err := r.Mint(ctx, "metered")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	r.Start()
	for i := 0; i < 10; i++ {
		r.RecordUsage(key.ID)
	}
	// Stop drains the queue before returning, so the writes are visible.
	r.Stop()

	var got models.ApiKey
	if err := db.First(&got, key.ID).Error; err != nil {
		t.Fatalf("failed to reload key: %v", err)
	}
	if got.UsageCount != 10 {
		t.Errorf("expected usage count 10, got %d", got.UsageCount)
	}
	if got.LastUsedAt == nil {
		t.Error("expected last_used_at to be set")
	}
}
