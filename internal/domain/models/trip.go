package models

import "time"

// Trip statuses. A trip starts scheduled and ends completed or cancelled.
const (
	TripScheduled = "scheduled"
	TripCompleted = "completed"
	TripCancelled = "cancelled"
)

// Trip is one scheduled departure of a bus over a route. SeatsAvailable is
// owned by the inventory ledger: 0 <= SeatsAvailable <= bus capacity always.
type Trip struct {
	ID             int64
	BusID          int64
	RouteID        int64
	Departure      time.Time
	Arrival        time.Time
	SeatsAvailable int
	Status         string
}

// TripSummary is the search-result row joined with bus and route data.
type TripSummary struct {
	TripID         int64
	BusNo          string
	BusType        string
	Departure      time.Time
	Arrival        time.Time
	SeatsAvailable int
	Origin         string
	Destination    string
	BaseFare       int64
}

// TripDetail extends the summary with the fields booking needs.
type TripDetail struct {
	TripSummary
	BusID    int64
	RouteID  int64
	Capacity int
	Status   string
}
