package models

import "time"

// Booking statuses. booked -> cancelled happens at most once.
const (
	BookingBooked    = "booked"
	BookingCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Booking is a passenger's reservation of one or more seats on a trip.
// TotalFare is computed at booking time and never recomputed afterwards.
type Booking struct {
	ID              int64
	UserID          int64
	TripID          int64
	TotalFare       int64
	BookingStatus   string
	PaymentStatus   string
	BookingDatetime time.Time
}

// Ticket is one reserved seat within a booking. SeatNo is sequential within
// the booking (1..n), not a physical seat-map position.
type Ticket struct {
	ID          int64
	BookingID   int64
	SeatNo      int
	PickupPoint string
	DropPoint   string
}

// BookingHistoryItem is the passenger-facing history row joined with trip,
// route and bus data.
type BookingHistoryItem struct {
	BookingID       int64
	BookingDatetime time.Time
	TotalFare       int64
	BookingStatus   string
	PaymentStatus   string
	Departure       time.Time
	Arrival         time.Time
	Origin          string
	Destination     string
	BusNo           string
	BusType         string
}
