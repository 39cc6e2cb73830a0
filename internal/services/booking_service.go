package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "busnexus/internal/config"
	"busnexus/internal/domain"
	"busnexus/internal/domain/models"
	"busnexus/internal/repositories"
	"busnexus/internal/utils"
)

// BookingService is the booking lifecycle engine. Every state change runs as
// one transaction: the availability check, the seat decrement and the
// booking/ticket writes commit together or not at all.
type BookingService struct {
	DB          *sql.DB
	TripRepo    repositories.TripRepo
	BookingRepo repositories.BookingRepo
	UserRepo    repositories.UserRepo
	Notifier    Notifier
	RequestID   string
	Now         func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) notifier() Notifier {
	if s.Notifier != nil {
		return s.Notifier
	}
	return LogNotifier{RequestID: s.RequestID}
}

// CreateBooking reserves numSeats on a trip for the calling user. On success
// it returns the new booking ID; the booking row, its tickets and the seat
// decrement are committed atomically. Fails with a ValidationError before
// any transaction opens when numSeats < 1.
func (s BookingService) CreateBooking(rc domain.RequestContext, tripID int64, numSeats int) (int64, error) {
	if rc.UserID <= 0 {
		return 0, domain.ValidationError{Field: "user_id", Msg: "missing caller identity"}
	}
	if tripID <= 0 {
		return 0, domain.ValidationError{Field: "trip_id", Msg: "invalid id"}
	}
	if numSeats < 1 {
		return 0, domain.ValidationError{Field: "num_seats", Msg: "must be at least 1"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	trip, err := s.TripRepo.LockDetail(tx, tripID)
	if err != nil {
		return 0, err
	}
	if trip.Status != models.TripScheduled {
		return 0, domain.ConflictError{Resource: "trip", Msg: "trip is not open for booking"}
	}

	totalFare, err := utils.TotalFare(trip.BaseFare, numSeats)
	if err != nil {
		return 0, domain.ValidationError{Field: "num_seats", Msg: err.Error()}
	}

	if err := s.TripRepo.Reserve(tx, tripID, numSeats); err != nil {
		return 0, err
	}

	bookingID, err := s.BookingRepo.InsertBooking(tx, models.Booking{
		UserID:          int64(rc.UserID),
		TripID:          tripID,
		TotalFare:       totalFare,
		BookingStatus:   models.BookingBooked,
		PaymentStatus:   models.PaymentUnpaid,
		BookingDatetime: s.now(),
	})
	if err != nil {
		return 0, err
	}

	if err := s.BookingRepo.InsertTickets(tx, bookingID, numSeats, trip.Origin, trip.Destination); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "created",
		fmt.Sprintf("booking_id=%d trip_id=%d seats=%d total=%s", bookingID, tripID, numSeats, utils.FormatMoney(totalFare)))

	s.notifyConfirmed(rc, bookingID, trip, numSeats, totalFare)

	return bookingID, nil
}

// notifyConfirmed runs after commit, fire-and-forget. A notification failure
// is logged and otherwise ignored.
func (s BookingService) notifyConfirmed(rc domain.RequestContext, bookingID int64, trip models.TripDetail, numSeats int, totalFare int64) {
	n := s.notifier()
	reqID := s.RequestID
	recipient := ""
	if u, err := s.UserRepo.GetByID(int64(rc.UserID)); err == nil {
		recipient = u.Email
	}
	notice := BookingNotice{
		Recipient:   recipient,
		BookingID:   bookingID,
		TripSummary: fmt.Sprintf("%s -> %s, %s", trip.Origin, trip.Destination, utils.FormatDateTime(trip.Departure)),
		NumSeats:    numSeats,
		TotalFare:   totalFare,
	}
	go func() {
		if err := n.BookingConfirmed(notice); err != nil {
			utils.LogEvent(reqID, "notify", "booking_confirmed_failed",
				fmt.Sprintf("booking_id=%d err=%v", notice.BookingID, err))
		}
	}()
}

// CancelBooking flips a booking to cancelled and restores its seats, all in
// one transaction. A second cancellation of the same booking fails with
// AlreadyCancelled and releases nothing.
func (s BookingService) CancelBooking(rc domain.RequestContext, bookingID int64) error {
	if bookingID <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	view, err := s.BookingRepo.LockForCancel(tx, bookingID)
	if err != nil {
		return err
	}
	if !rc.IsCoordinator() && view.UserID != int64(rc.UserID) {
		return domain.NotFoundError{Resource: "booking"}
	}
	if view.BookingStatus == models.BookingCancelled {
		return domain.PolicyError{Rule: "already_cancelled", Msg: "booking is already cancelled"}
	}
	if !Cancellable(view.Departure, s.now()) {
		return domain.PolicyError{Rule: "cancellation_window_closed", Msg: "trip departs within 24 hours"}
	}

	if err := s.BookingRepo.MarkCancelled(tx, bookingID); err != nil {
		return err
	}
	if view.TicketCount > 0 {
		if err := s.TripRepo.Release(tx, view.TripID, view.TicketCount); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "cancelled",
		fmt.Sprintf("booking_id=%d trip_id=%d seats_released=%d", bookingID, view.TripID, view.TicketCount))
	return nil
}

// GetBooking returns a booking visible to the caller (owner or coordinator).
func (s BookingService) GetBooking(rc domain.RequestContext, bookingID int64) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return b, err
	}
	if !rc.IsCoordinator() && b.UserID != int64(rc.UserID) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

// GetBookingHistory lists a user's bookings, newest first.
func (s BookingService) GetBookingHistory(rc domain.RequestContext, userID int64) ([]models.BookingHistoryItem, error) {
	if !rc.IsCoordinator() && userID != int64(rc.UserID) {
		return nil, domain.ValidationError{Field: "user_id", Msg: "cannot read another user's history"}
	}
	return s.BookingRepo.HistoryByUser(userID)
}

// GetTickets lists the tickets of a booking visible to the caller.
func (s BookingService) GetTickets(rc domain.RequestContext, bookingID int64) ([]models.Ticket, error) {
	if _, err := s.GetBooking(rc, bookingID); err != nil {
		return nil, err
	}
	return s.BookingRepo.TicketsByBooking(bookingID)
}
