package services

import (
	"fmt"

	"busnexus/internal/utils"
)

// BookingNotice is handed to the notification collaborator after a booking
// commits. The collaborator runs outside the transaction; its failure never
// invalidates the booking.
type BookingNotice struct {
	Recipient   string
	BookingID   int64
	TripSummary string
	NumSeats    int
	TotalFare   int64
}

type Notifier interface {
	BookingConfirmed(n BookingNotice) error
}

// LogNotifier is the default sink: it writes the confirmation to the log.
// Real mail delivery plugs in behind the same interface.
type LogNotifier struct {
	RequestID string
}

func (l LogNotifier) BookingConfirmed(n BookingNotice) error {
	utils.LogEvent(l.RequestID, "notify", "booking_confirmed",
		fmt.Sprintf("recipient=%s booking_id=%d trip=%q seats=%d total=%s",
			n.Recipient, n.BookingID, n.TripSummary, n.NumSeats, utils.FormatMoney(n.TotalFare)))
	return nil
}
