package repositories

import (
	"database/sql"

	intconfig "busnexus/internal/config"
	"busnexus/internal/domain"
)

// ReportRepo backs the coordinator dashboard aggregates. Revenue figures are
// sums of frozen total_fare values in cents; no recomputation happens here.
type ReportRepo struct {
	DB *sql.DB
}

func (r ReportRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

type RevenueRow struct {
	Date         string
	Revenue      int64
	BookingCount int
}

type RoutePopularityRow struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	BookingCount int    `json:"bookingCount"`
}

type DestinationRow struct {
	Destination  string `json:"destination"`
	BookingCount int    `json:"bookingCount"`
}

// TotalActiveBookings counts bookings that are still booked.
func (r ReportRepo) TotalActiveBookings() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings WHERE booking_status = 'booked'`).Scan(&n)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

// DailyRevenue groups active-booking revenue per day, optionally bounded.
func (r ReportRepo) DailyRevenue(startDate, endDate string) ([]RevenueRow, error) {
	query := `
		SELECT
			DATE_FORMAT(booking_datetime, '%Y-%m-%d'),
			COALESCE(SUM(total_fare), 0),
			COUNT(*)
		FROM bookings
		WHERE booking_status = 'booked'`
	args := []any{}
	if startDate != "" {
		query += ` AND DATE(booking_datetime) >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		query += ` AND DATE(booking_datetime) <= ?`
		args = append(args, endDate)
	}
	query += ` GROUP BY DATE_FORMAT(booking_datetime, '%Y-%m-%d') ORDER BY 1 DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []RevenueRow{}
	for rows.Next() {
		var row RevenueRow
		if err := rows.Scan(&row.Date, &row.Revenue, &row.BookingCount); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}

// RoutePopularity lists the ten most-booked routes.
func (r ReportRepo) RoutePopularity() ([]RoutePopularityRow, error) {
	rows, err := r.db().Query(`
		SELECT r.origin, r.destination, COUNT(*)
		FROM bookings b
		JOIN trips t ON b.trip_id = t.id
		JOIN routes r ON t.route_id = r.id
		WHERE b.booking_status = 'booked'
		GROUP BY r.origin, r.destination
		ORDER BY 3 DESC
		LIMIT 10`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []RoutePopularityRow{}
	for rows.Next() {
		var row RoutePopularityRow
		if err := rows.Scan(&row.Origin, &row.Destination, &row.BookingCount); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}

// PopularDestinations lists the ten most-booked destinations.
func (r ReportRepo) PopularDestinations() ([]DestinationRow, error) {
	rows, err := r.db().Query(`
		SELECT r.destination, COUNT(*)
		FROM bookings b
		JOIN trips t ON b.trip_id = t.id
		JOIN routes r ON t.route_id = r.id
		WHERE b.booking_status = 'booked'
		GROUP BY r.destination
		ORDER BY 2 DESC
		LIMIT 10`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []DestinationRow{}
	for rows.Next() {
		var row DestinationRow
		if err := rows.Scan(&row.Destination, &row.BookingCount); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}
