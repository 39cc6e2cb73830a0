package services

import (
	"testing"
	"time"

	"busnexus/internal/domain"
	"busnexus/internal/domain/models"
	"busnexus/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var fixedNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

type capturedNotice struct {
	ch chan BookingNotice
}

func (c capturedNotice) BookingConfirmed(n BookingNotice) error {
	c.ch <- n
	return nil
}

func bookingSvc(t *testing.T) (BookingService, sqlmock.Sqlmock, capturedNotice, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	notifier := capturedNotice{ch: make(chan BookingNotice, 1)}
	svc := BookingService{
		DB:          db,
		TripRepo:    repositories.TripRepo{DB: db},
		BookingRepo: repositories.BookingRepo{DB: db},
		UserRepo:    repositories.UserRepo{DB: db},
		Notifier:    notifier,
		Now:         func() time.Time { return fixedNow },
	}
	return svc, mock, notifier, func() { db.Close() }
}

func tripDetailRows(seats int, status string, baseFare int64) *sqlmock.Rows {
	departure := fixedNow.Add(72 * time.Hour)
	return sqlmock.NewRows([]string{
		"id", "bus_id", "route_id",
		"departure_datetime", "arrival_datetime",
		"seats_available", "status",
		"bus_no", "bus_type", "capacity",
		"origin", "destination", "base_fare",
	}).AddRow(
		7, 1, 2,
		departure, departure.Add(5*time.Hour),
		seats, status,
		"BN-01", "AC Sleeper", 40,
		"Springfield", "Shelbyville", baseFare,
	)
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "phone", "role", "password_hash", "created_at",
	}).AddRow(3, "Ada", "Lovelace", "ada@example.com", "0800", "passenger", "x", fixedNow)
}

func TestCreateBookingCommitsAtomically(t *testing.T) {
	svc, mock, notifier, done := bookingSvc(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips t").WithArgs(int64(7)).
		WillReturnRows(tripDetailRows(10, models.TripScheduled, 1000))
	mock.ExpectExec("UPDATE trips").WithArgs(3, int64(7), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO tickets").WithArgs(int64(42), 1, "Springfield", "Shelbyville").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO tickets").WithArgs(int64(42), 2, "Springfield", "Shelbyville").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO tickets").WithArgs(int64(42), 3, "Springfield", "Shelbyville").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM users").WithArgs(int64(3)).
		WillReturnRows(userRows())

	rc := domain.RequestContext{UserID: 3, Role: domain.RolePassenger}
	id, err := svc.CreateBooking(rc, 7, 3)
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}
	if id != 42 {
		t.Fatalf("booking id = %d, want 42", id)
	}

	select {
	case n := <-notifier.ch:
		if n.BookingID != 42 || n.NumSeats != 3 || n.TotalFare != 3000 {
			t.Fatalf("unexpected notice: %+v", n)
		}
		if n.Recipient != "ada@example.com" {
			t.Fatalf("recipient = %q", n.Recipient)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("confirmation notice never sent")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingInsufficientSeatsRollsBack(t *testing.T) {
	svc, mock, _, done := bookingSvc(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips t").WithArgs(int64(7)).
		WillReturnRows(tripDetailRows(2, models.TripScheduled, 1000))
	mock.ExpectExec("UPDATE trips").WithArgs(5, int64(7), 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	rc := domain.RequestContext{UserID: 3, Role: domain.RolePassenger}
	_, err := svc.CreateBooking(rc, 7, 5)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsNonScheduledTrip(t *testing.T) {
	svc, mock, _, done := bookingSvc(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips t").WithArgs(int64(7)).
		WillReturnRows(tripDetailRows(10, models.TripCancelled, 1000))
	mock.ExpectRollback()

	rc := domain.RequestContext{UserID: 3, Role: domain.RolePassenger}
	_, err := svc.CreateBooking(rc, 7, 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsZeroSeatsBeforeTx(t *testing.T) {
	svc, mock, _, done := bookingSvc(t)
	defer done()

	rc := domain.RequestContext{UserID: 3, Role: domain.RolePassenger}
	_, err := svc.CreateBooking(rc, 7, 0)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// No transaction may have been opened.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func cancelLockRows(userID int64, status string, departure time.Time, tickets int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "trip_id", "booking_status", "departure_datetime", "ticket_count",
	}).AddRow(42, userID, 7, status, departure, tickets)
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	svc, mock, _, done := bookingSvc(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(42)).
		WillReturnRows(cancelLockRows(3, models.BookingBooked, fixedNow.Add(72*time.Hour), 3))
	mock.ExpectExec("UPDATE bookings").WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trips").WithArgs(3, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rc := domain.RequestContext{UserID: 3, Role: domain.RolePassenger}
	if err := svc.CancelBooking(rc, 42); err != nil {
		t.Fatalf("cancel error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingTwiceFails(t *testing.T) {
	svc, mock, _, done := bookingSvc(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(42)).
		WillReturnRows(cancelLockRows(3, models.BookingCancelled, fixedNow.Add(72*time.Hour), 3))
	mock.ExpectRollback()

	rc := domain.RequestContext{UserID: 3, Role: domain.RolePassenger}
	err := svc.CancelBooking(rc, 42)
	if !domain.IsPolicy(err) {
		t.Fatalf("expected policy error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingWindowClosed(t *testing.T) {
	svc, mock, _, done := bookingSvc(t)
	defer done()

	// Trip departs in exactly 24h: the window is already closed.
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(42)).
		WillReturnRows(cancelLockRows(3, models.BookingBooked, fixedNow.Add(24*time.Hour), 3))
	mock.ExpectRollback()

	rc := domain.RequestContext{UserID: 3, Role: domain.RolePassenger}
	err := svc.CancelBooking(rc, 42)
	if !domain.IsPolicy(err) {
		t.Fatalf("expected policy error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingOwnershipHidden(t *testing.T) {
	svc, mock, _, done := bookingSvc(t)
	defer done()

	// Another passenger's booking reads as not found, not forbidden.
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(42)).
		WillReturnRows(cancelLockRows(99, models.BookingBooked, fixedNow.Add(72*time.Hour), 3))
	mock.ExpectRollback()

	rc := domain.RequestContext{UserID: 3, Role: domain.RolePassenger}
	err := svc.CancelBooking(rc, 42)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingByCoordinator(t *testing.T) {
	svc, mock, _, done := bookingSvc(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings b").WithArgs(int64(42)).
		WillReturnRows(cancelLockRows(99, models.BookingBooked, fixedNow.Add(72*time.Hour), 2))
	mock.ExpectExec("UPDATE bookings").WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trips").WithArgs(2, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rc := domain.RequestContext{UserID: 1, Role: domain.RoleCoordinator}
	if err := svc.CancelBooking(rc, 42); err != nil {
		t.Fatalf("coordinator cancel error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
