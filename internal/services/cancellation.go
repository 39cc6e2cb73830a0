package services

import "time"

// CancellationWindow is how long before departure a booking may still be
// cancelled. Fixed business rule, not configurable.
const CancellationWindow = 24 * time.Hour

// Cancellable reports whether a booking for a trip departing at departure
// may still be cancelled at now. The boundary is strict: a trip departing in
// exactly 24 hours is no longer cancellable.
func Cancellable(departure, now time.Time) bool {
	return departure.After(now.Add(CancellationWindow))
}
