package repositories

import (
	"database/sql"
	"errors"

	intconfig "busnexus/internal/config"
	"busnexus/internal/domain"
	"busnexus/internal/domain/models"
)

// TripRepo owns the trips table, including the seat inventory ledger.
// Reserve and Release are the only writers of seats_available.
type TripRepo struct {
	DB *sql.DB
}

func (r TripRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripDetailSelect = `
	SELECT
		t.id, t.bus_id, t.route_id,
		t.departure_datetime, t.arrival_datetime,
		t.seats_available, t.status,
		b.bus_no, b.bus_type, b.capacity,
		r.origin, r.destination, r.base_fare
	FROM trips t
	JOIN buses b ON t.bus_id = b.id
	JOIN routes r ON t.route_id = r.id
	WHERE t.id = ?`

// LockDetail reads the trip row joined with bus and route under a row lock.
// Must run inside the same transaction as the Reserve that follows; the lock
// serializes concurrent bookings on the same trip.
func (r TripRepo) LockDetail(tx *sql.Tx, tripID int64) (models.TripDetail, error) {
	var d models.TripDetail
	err := tx.QueryRow(tripDetailSelect+` FOR UPDATE`, tripID).Scan(
		&d.TripID, &d.BusID, &d.RouteID,
		&d.Departure, &d.Arrival,
		&d.SeatsAvailable, &d.Status,
		&d.BusNo, &d.BusType, &d.Capacity,
		&d.Origin, &d.Destination, &d.BaseFare,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return d, domain.NotFoundError{Resource: "trip"}
		}
		return d, domain.InternalError{Err: err}
	}
	return d, nil
}

// GetDetail is the lock-free read used by trip detail views.
func (r TripRepo) GetDetail(tripID int64) (models.TripDetail, error) {
	var d models.TripDetail
	err := r.db().QueryRow(tripDetailSelect, tripID).Scan(
		&d.TripID, &d.BusID, &d.RouteID,
		&d.Departure, &d.Arrival,
		&d.SeatsAvailable, &d.Status,
		&d.BusNo, &d.BusType, &d.Capacity,
		&d.Origin, &d.Destination, &d.BaseFare,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return d, domain.NotFoundError{Resource: "trip"}
		}
		return d, domain.InternalError{Err: err}
	}
	return d, nil
}

// Reserve decrements seats_available by count iff enough seats remain. The
// check and the decrement are one conditional UPDATE, never two steps, so
// concurrent reservations cannot both pass the availability check.
func (r TripRepo) Reserve(tx *sql.Tx, tripID int64, count int) error {
	res, err := tx.Exec(`
		UPDATE trips
		SET seats_available = seats_available - ?
		WHERE id = ? AND seats_available >= ?`,
		count, tripID, count)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected == 0 {
		return domain.ConflictError{Resource: "trip", Msg: "insufficient seats available"}
	}
	return nil
}

// Release returns count seats to the trip, capped at the bus capacity so a
// double release can never push the ledger past the conservation bound.
func (r TripRepo) Release(tx *sql.Tx, tripID int64, count int) error {
	res, err := tx.Exec(`
		UPDATE trips t
		JOIN buses b ON t.bus_id = b.id
		SET t.seats_available = LEAST(t.seats_available + ?, b.capacity)
		WHERE t.id = ?`,
		count, tripID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// Search lists scheduled trips with open seats for origin/destination/date.
func (r TripRepo) Search(origin, destination, date string) ([]models.TripSummary, error) {
	rows, err := r.db().Query(`
		SELECT
			t.id, b.bus_no, b.bus_type,
			t.departure_datetime, t.arrival_datetime,
			t.seats_available, r.origin, r.destination, r.base_fare
		FROM trips t
		JOIN routes r ON t.route_id = r.id
		JOIN buses b ON t.bus_id = b.id
		WHERE r.origin = ?
		  AND r.destination = ?
		  AND DATE(t.departure_datetime) = ?
		  AND t.seats_available > 0
		  AND t.status = 'scheduled'
		ORDER BY t.departure_datetime ASC`,
		origin, destination, date)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.TripSummary{}
	for rows.Next() {
		var s models.TripSummary
		if err := rows.Scan(
			&s.TripID, &s.BusNo, &s.BusType,
			&s.Departure, &s.Arrival,
			&s.SeatsAvailable, &s.Origin, &s.Destination, &s.BaseFare,
		); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}

// List returns trips for the coordinator dashboard, optionally including
// already-departed ones.
func (r TripRepo) List(includePast bool, today string) ([]models.TripSummary, error) {
	query := `
		SELECT
			t.id, b.bus_no, b.bus_type,
			t.departure_datetime, t.arrival_datetime,
			t.seats_available, r.origin, r.destination, r.base_fare
		FROM trips t
		JOIN buses b ON t.bus_id = b.id
		JOIN routes r ON t.route_id = r.id`
	args := []any{}
	if !includePast {
		query += ` WHERE DATE(t.departure_datetime) >= ?`
		args = append(args, today)
	}
	query += ` ORDER BY t.departure_datetime ASC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.TripSummary{}
	for rows.Next() {
		var s models.TripSummary
		if err := rows.Scan(
			&s.TripID, &s.BusNo, &s.BusType,
			&s.Departure, &s.Arrival,
			&s.SeatsAvailable, &s.Origin, &s.Destination, &s.BaseFare,
		); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}

// Create inserts a scheduled trip. seats_available is decided by the caller
// (defaults to bus capacity in the service layer).
func (r TripRepo) Create(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (bus_id, route_id, departure_datetime, arrival_datetime, seats_available, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.BusID, t.RouteID, t.Departure, t.Arrival, t.SeatsAvailable, t.Status)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

// UpdateStatus flips trip status (scheduled -> completed/cancelled).
func (r TripRepo) UpdateStatus(tripID int64, status string) error {
	res, err := r.db().Exec(`UPDATE trips SET status = ? WHERE id = ?`, status, tripID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// DistinctOrigins backs the search form origin dropdown.
func (r TripRepo) DistinctOrigins() ([]string, error) {
	return r.distinctColumn("origin")
}

// DistinctDestinations backs the search form destination dropdown.
func (r TripRepo) DistinctDestinations() ([]string, error) {
	return r.distinctColumn("destination")
}

func (r TripRepo) distinctColumn(col string) ([]string, error) {
	rows, err := r.db().Query(`SELECT DISTINCT ` + col + ` FROM routes ORDER BY ` + col)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}
