package services

import (
	"testing"

	"busnexus/internal/domain"
)

func TestSearchTripsValidation(t *testing.T) {
	svc := TripService{}

	cases := []struct {
		name        string
		origin      string
		destination string
		date        string
	}{
		{"missing origin", "", "Shelbyville", "2026-08-10"},
		{"missing destination", "Springfield", "", "2026-08-10"},
		{"same place", "Springfield", "springfield", "2026-08-10"},
		{"same place extra spaces", "Spring  field", "spring field", "2026-08-10"},
		{"bad date", "Springfield", "Shelbyville", "10-08-2026"},
		{"empty date", "Springfield", "Shelbyville", ""},
	}
	for _, tc := range cases {
		_, err := svc.SearchTrips(tc.origin, tc.destination, tc.date)
		if !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestScheduleTripRejectsBadTimes(t *testing.T) {
	svc := TripService{}

	if _, err := svc.ScheduleTrip(1, 2, "not-a-datetime", "2026-08-10 13:00:00", 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad departure, got %v", err)
	}
	if _, err := svc.ScheduleTrip(1, 2, "2026-08-10 13:00:00", "2026-08-10 08:00:00", 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for arrival before departure, got %v", err)
	}
	if _, err := svc.ScheduleTrip(1, 2, "2026-08-10 08:00:00", "2026-08-10 08:00:00", 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for equal times, got %v", err)
	}
}

func TestUpdateTripStatusRejectsUnknownTarget(t *testing.T) {
	svc := TripService{}

	if err := svc.UpdateTripStatus(1, "scheduled"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.UpdateTripStatus(1, "boarding"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
