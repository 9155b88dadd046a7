package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestBucket_TryAcquire(t *testing.T) {
	config := Config{
		RequestsPerSecond: 10,
		BurstSize:         5,
	}
	bucket := NewBucket(config)

	// Should allow burst size requests
	for i := 0; i < 5; i++ {
		if !bucket.TryAcquire() {
			t.Errorf("request %d should be allowed", i)
		}
	}

	// Next request should be denied
	if bucket.TryAcquire() {
		t.Error("request after burst should be denied")
	}
}

func TestBucket_Refill(t *testing.T) {
	config := Config{
		RequestsPerSecond: 100, // Fast refill for test
		BurstSize:         2,
	}
	bucket := NewBucket(config)

	// Exhaust tokens
	bucket.TryAcquire()
	bucket.TryAcquire()

	if bucket.TryAcquire() {
		t.Error("should be denied after exhausting tokens")
	}

	// Wait for refill
	time.Sleep(50 * time.Millisecond)

	if !bucket.TryAcquire() {
		t.Error("should be allowed after refill")
	}
}

func TestBucket_WaitForSlot(t *testing.T) {
	config := Config{
		RequestsPerSecond: 100,
		BurstSize:         1,
	}
	bucket := NewBucket(config)

	bucket.TryAcquire()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	if err := bucket.WaitForSlot(ctx); err != nil {
		t.Fatalf("WaitForSlot: %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("waited longer than expected for refill")
	}
}

func TestBucket_WaitForSlot_Cancelled(t *testing.T) {
	config := Config{
		RequestsPerSecond: 0.001, // effectively never refills
		BurstSize:         1,
	}
	bucket := NewBucket(config)
	bucket.TryAcquire()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := bucket.WaitForSlot(ctx); err == nil {
		t.Error("expected context error when no token becomes available")
	}
}
