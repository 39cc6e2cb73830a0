package repositories

import (
	"testing"

	"busnexus/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestReserveDecrementsWhenSeatsRemain(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips").
		WithArgs(2, int64(7), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	repo := TripRepo{DB: db}
	if err := repo.Reserve(tx, 7, 2); err != nil {
		t.Fatalf("reserve error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveFailsWhenInsufficientSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// The conditional UPDATE touches no row when seats_available < count.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips").
		WithArgs(5, int64(7), 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	repo := TripRepo{DB: db}
	err = repo.Reserve(tx, 7, 5)
	if err == nil {
		t.Fatalf("expected conflict, got nil")
	}
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReleaseCapsAtCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// LEAST(seats_available + n, capacity) is pushed down into the UPDATE.
	mock.ExpectBegin()
	mock.ExpectExec(`LEAST\(t\.seats_available \+ \?, b\.capacity\)`).
		WithArgs(3, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	repo := TripRepo{DB: db}
	if err := repo.Release(tx, 7, 3); err != nil {
		t.Fatalf("release error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReleaseUnknownTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips").
		WithArgs(1, int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}
	repo := TripRepo{DB: db}
	err = repo.Release(tx, 999, 1)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
