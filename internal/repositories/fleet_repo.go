package repositories

import (
	"database/sql"
	"errors"

	intconfig "busnexus/internal/config"
	"busnexus/internal/domain"
	"busnexus/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

// FleetRepo owns buses, routes and drivers, including the referential
// deletion guards against trips.
type FleetRepo struct {
	DB *sql.DB
}

func (r FleetRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// isDuplicateKey reports MySQL error 1062 (unique key violation), the race
// backstop behind the pre-insert duplicate checks.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// ---- buses ----

func (r FleetRepo) ListBuses() ([]models.Bus, error) {
	rows, err := r.db().Query(`SELECT id, bus_no, bus_type, capacity, driver_id FROM buses ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		var driverID sql.NullInt64
		if err := rows.Scan(&b.ID, &b.BusNo, &b.BusType, &b.Capacity, &driverID); err != nil {
			return out, domain.InternalError{Err: err}
		}
		if driverID.Valid {
			id := driverID.Int64
			b.DriverID = &id
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r FleetRepo) GetBus(busID int64) (models.Bus, error) {
	var b models.Bus
	var driverID sql.NullInt64
	err := r.db().QueryRow(`SELECT id, bus_no, bus_type, capacity, driver_id FROM buses WHERE id = ?`, busID).
		Scan(&b.ID, &b.BusNo, &b.BusType, &b.Capacity, &driverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, domain.NotFoundError{Resource: "bus"}
		}
		return b, domain.InternalError{Err: err}
	}
	if driverID.Valid {
		id := driverID.Int64
		b.DriverID = &id
	}
	return b, nil
}

func (r FleetRepo) BusNoExists(busNo string, excludeID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM buses WHERE bus_no = ? AND id <> ?`, busNo, excludeID).Scan(&n)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

func (r FleetRepo) CreateBus(b models.Bus) (int64, error) {
	res, err := r.db().Exec(`INSERT INTO buses (bus_no, bus_type, capacity, driver_id) VALUES (?, ?, ?, ?)`,
		b.BusNo, b.BusType, b.Capacity, nullableID(b.DriverID))
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "bus", Msg: "bus number already exists"}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r FleetRepo) UpdateBus(b models.Bus) error {
	res, err := r.db().Exec(`UPDATE buses SET bus_no = ?, bus_type = ?, capacity = ?, driver_id = ? WHERE id = ?`,
		b.BusNo, b.BusType, b.Capacity, nullableID(b.DriverID), b.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ConflictError{Resource: "bus", Msg: "bus number already exists"}
		}
		return domain.InternalError{Err: err}
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		// same-value updates also report zero rows; confirm existence
		if _, gerr := r.GetBus(b.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// DeleteBus removes a bus unless a trip still references it.
func (r FleetRepo) DeleteBus(busID int64) error {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM trips WHERE bus_id = ?`, busID).Scan(&n); err != nil {
		return domain.InternalError{Err: err}
	}
	if n > 0 {
		return domain.ConflictError{Resource: "bus", Msg: "bus is referenced by trips"}
	}
	res, err := r.db().Exec(`DELETE FROM buses WHERE id = ?`, busID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.NotFoundError{Resource: "bus"}
	}
	return nil
}

// ---- routes ----

func (r FleetRepo) ListRoutes() ([]models.Route, error) {
	rows, err := r.db().Query(`
		SELECT id, origin, destination, distance_km, base_fare,
		       origin_lat, origin_lon, destination_lat, destination_lon,
		       COALESCE(description, '')
		FROM routes ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r FleetRepo) GetRoute(routeID int64) (models.Route, error) {
	row := r.db().QueryRow(`
		SELECT id, origin, destination, distance_km, base_fare,
		       origin_lat, origin_lon, destination_lat, destination_lon,
		       COALESCE(description, '')
		FROM routes WHERE id = ?`, routeID)
	rt, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rt, domain.NotFoundError{Resource: "route"}
		}
		return rt, domain.InternalError{Err: err}
	}
	return rt, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (models.Route, error) {
	var rt models.Route
	var oLat, oLon, dLat, dLon sql.NullFloat64
	if err := row.Scan(
		&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKM, &rt.BaseFare,
		&oLat, &oLon, &dLat, &dLon, &rt.Description,
	); err != nil {
		return rt, err
	}
	rt.OriginLat = nullableFloat(oLat)
	rt.OriginLon = nullableFloat(oLon)
	rt.DestLat = nullableFloat(dLat)
	rt.DestLon = nullableFloat(dLon)
	return rt, nil
}

func (r FleetRepo) CreateRoute(rt models.Route) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO routes (origin, destination, distance_km, base_fare,
			origin_lat, origin_lon, destination_lat, destination_lon, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.Origin, rt.Destination, rt.DistanceKM, rt.BaseFare,
		nullableFloatArg(rt.OriginLat), nullableFloatArg(rt.OriginLon),
		nullableFloatArg(rt.DestLat), nullableFloatArg(rt.DestLon),
		rt.Description)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r FleetRepo) UpdateRoute(rt models.Route) error {
	res, err := r.db().Exec(`
		UPDATE routes SET origin = ?, destination = ?, distance_km = ?, base_fare = ?,
			origin_lat = ?, origin_lon = ?, destination_lat = ?, destination_lon = ?, description = ?
		WHERE id = ?`,
		rt.Origin, rt.Destination, rt.DistanceKM, rt.BaseFare,
		nullableFloatArg(rt.OriginLat), nullableFloatArg(rt.OriginLon),
		nullableFloatArg(rt.DestLat), nullableFloatArg(rt.DestLon),
		rt.Description, rt.ID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		if _, gerr := r.GetRoute(rt.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// DeleteRoute removes a route unless a trip still references it.
func (r FleetRepo) DeleteRoute(routeID int64) error {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM trips WHERE route_id = ?`, routeID).Scan(&n); err != nil {
		return domain.InternalError{Err: err}
	}
	if n > 0 {
		return domain.ConflictError{Resource: "route", Msg: "route is referenced by trips"}
	}
	res, err := r.db().Exec(`DELETE FROM routes WHERE id = ?`, routeID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

// ---- drivers ----

func (r FleetRepo) ListDrivers() ([]models.Driver, error) {
	rows, err := r.db().Query(`
		SELECT id, first_name, last_name, contact_no, license_no,
		       COALESCE(DATE_FORMAT(hired_date, '%Y-%m-%d'), '')
		FROM drivers ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.FirstName, &d.LastName, &d.ContactNo, &d.LicenseNo, &d.HiredDate); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r FleetRepo) GetDriver(driverID int64) (models.Driver, error) {
	var d models.Driver
	err := r.db().QueryRow(`
		SELECT id, first_name, last_name, contact_no, license_no,
		       COALESCE(DATE_FORMAT(hired_date, '%Y-%m-%d'), '')
		FROM drivers WHERE id = ?`, driverID).
		Scan(&d.ID, &d.FirstName, &d.LastName, &d.ContactNo, &d.LicenseNo, &d.HiredDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return d, domain.NotFoundError{Resource: "driver"}
		}
		return d, domain.InternalError{Err: err}
	}
	return d, nil
}

func (r FleetRepo) CreateDriver(d models.Driver) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO drivers (first_name, last_name, contact_no, license_no, hired_date)
		VALUES (?, ?, ?, ?, ?)`,
		d.FirstName, d.LastName, d.ContactNo, d.LicenseNo, nullIfEmpty(d.HiredDate))
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r FleetRepo) UpdateDriver(d models.Driver) error {
	res, err := r.db().Exec(`
		UPDATE drivers SET first_name = ?, last_name = ?, contact_no = ?, license_no = ?, hired_date = ?
		WHERE id = ?`,
		d.FirstName, d.LastName, d.ContactNo, d.LicenseNo, nullIfEmpty(d.HiredDate), d.ID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		if _, gerr := r.GetDriver(d.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// DeleteDriver removes a driver unless a bus still references them.
func (r FleetRepo) DeleteDriver(driverID int64) error {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM buses WHERE driver_id = ?`, driverID).Scan(&n); err != nil {
		return domain.InternalError{Err: err}
	}
	if n > 0 {
		return domain.ConflictError{Resource: "driver", Msg: "driver is assigned to a bus"}
	}
	res, err := r.db().Exec(`DELETE FROM drivers WHERE id = ?`, driverID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

// ---- helpers ----

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullableFloatArg(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
