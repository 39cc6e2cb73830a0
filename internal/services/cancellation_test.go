package services

import (
	"testing"
	"time"
)

func TestCancellableWellBeforeDeparture(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	departure := now.Add(48 * time.Hour)
	if !Cancellable(departure, now) {
		t.Fatalf("48h before departure should be cancellable")
	}
}

func TestCancellableInsideWindow(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	departure := now.Add(23 * time.Hour)
	if Cancellable(departure, now) {
		t.Fatalf("23h before departure should not be cancellable")
	}
}

func TestCancellableExactBoundary(t *testing.T) {
	// Exactly 24h out is already inside the window.
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	departure := now.Add(CancellationWindow)
	if Cancellable(departure, now) {
		t.Fatalf("exactly 24h before departure should not be cancellable")
	}
	if !Cancellable(departure.Add(time.Second), now) {
		t.Fatalf("one second past the boundary should be cancellable")
	}
}

func TestCancellableDepartedTrip(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	departure := now.Add(-time.Hour)
	if Cancellable(departure, now) {
		t.Fatalf("departed trip should not be cancellable")
	}
}
