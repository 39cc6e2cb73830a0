package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "busnexus/internal/config"
	"busnexus/internal/domain"
	"busnexus/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// BookingLockView is the row state needed to decide a cancellation, read
// under FOR UPDATE so the status flip and seat release are serialized.
type BookingLockView struct {
	BookingID     int64
	UserID        int64
	TripID        int64
	BookingStatus string
	Departure     time.Time
	TicketCount   int
}

// InsertBooking writes the booking row inside the create-booking transaction.
func (r BookingRepo) InsertBooking(tx *sql.Tx, b models.Booking) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO bookings (user_id, trip_id, total_fare, booking_status, payment_status, booking_datetime)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserID, b.TripID, b.TotalFare, b.BookingStatus, b.PaymentStatus, b.BookingDatetime)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

// InsertTickets writes one ticket per seat with sequential seat numbers
// 1..count. Pickup and drop default to the route endpoints.
func (r BookingRepo) InsertTickets(tx *sql.Tx, bookingID int64, count int, pickup, drop string) error {
	for seatNo := 1; seatNo <= count; seatNo++ {
		if _, err := tx.Exec(`
			INSERT INTO tickets (booking_id, seat_no, pickup_point, drop_point)
			VALUES (?, ?, ?, ?)`,
			bookingID, seatNo, pickup, drop); err != nil {
			return domain.InternalError{Err: err}
		}
	}
	return nil
}

// LockForCancel reads the booking joined with its trip under a row lock,
// including the live ticket count used for the seat release.
func (r BookingRepo) LockForCancel(tx *sql.Tx, bookingID int64) (BookingLockView, error) {
	var v BookingLockView
	err := tx.QueryRow(`
		SELECT
			b.id, b.user_id, b.trip_id, b.booking_status,
			t.departure_datetime,
			(SELECT COUNT(*) FROM tickets k WHERE k.booking_id = b.id)
		FROM bookings b
		JOIN trips t ON b.trip_id = t.id
		WHERE b.id = ?
		FOR UPDATE`, bookingID).Scan(
		&v.BookingID, &v.UserID, &v.TripID, &v.BookingStatus,
		&v.Departure, &v.TicketCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return v, domain.NotFoundError{Resource: "booking"}
		}
		return v, domain.InternalError{Err: err}
	}
	return v, nil
}

// MarkCancelled flips booking_status inside the cancellation transaction.
func (r BookingRepo) MarkCancelled(tx *sql.Tx, bookingID int64) error {
	res, err := tx.Exec(`UPDATE bookings SET booking_status = 'cancelled' WHERE id = ?`, bookingID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// GetByID fetches a booking row.
func (r BookingRepo) GetByID(bookingID int64) (models.Booking, error) {
	var b models.Booking
	err := r.db().QueryRow(`
		SELECT id, user_id, trip_id, total_fare, booking_status, payment_status, booking_datetime
		FROM bookings WHERE id = ?`, bookingID).Scan(
		&b.ID, &b.UserID, &b.TripID, &b.TotalFare,
		&b.BookingStatus, &b.PaymentStatus, &b.BookingDatetime,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, domain.NotFoundError{Resource: "booking"}
		}
		return b, domain.InternalError{Err: err}
	}
	return b, nil
}

// HistoryByUser lists a passenger's bookings newest first, joined with trip,
// route and bus summaries.
func (r BookingRepo) HistoryByUser(userID int64) ([]models.BookingHistoryItem, error) {
	rows, err := r.db().Query(`
		SELECT
			b.id, b.booking_datetime, b.total_fare,
			b.booking_status, b.payment_status,
			t.departure_datetime, t.arrival_datetime,
			r.origin, r.destination,
			bus.bus_no, bus.bus_type
		FROM bookings b
		JOIN trips t ON b.trip_id = t.id
		JOIN routes r ON t.route_id = r.id
		JOIN buses bus ON t.bus_id = bus.id
		WHERE b.user_id = ?
		ORDER BY b.booking_datetime DESC`, userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.BookingHistoryItem{}
	for rows.Next() {
		var it models.BookingHistoryItem
		if err := rows.Scan(
			&it.BookingID, &it.BookingDatetime, &it.TotalFare,
			&it.BookingStatus, &it.PaymentStatus,
			&it.Departure, &it.Arrival,
			&it.Origin, &it.Destination,
			&it.BusNo, &it.BusType,
		); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}

// TicketsByBooking lists the seat records of one booking.
func (r BookingRepo) TicketsByBooking(bookingID int64) ([]models.Ticket, error) {
	rows, err := r.db().Query(`
		SELECT id, booking_id, seat_no, pickup_point, drop_point
		FROM tickets WHERE booking_id = ? ORDER BY seat_no ASC`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.BookingID, &t.SeatNo, &t.PickupPoint, &t.DropPoint); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}
