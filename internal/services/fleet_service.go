package services

import (
	"busnexus/internal/domain"
	"busnexus/internal/domain/models"
	"busnexus/internal/repositories"
	"busnexus/internal/utils"
)

// FleetService validates coordinator CRUD on buses, routes and drivers
// before it reaches storage. Deletion guards live in the repository.
type FleetService struct {
	FleetRepo repositories.FleetRepo
}

// ---- buses ----

func (s FleetService) ListBuses() ([]models.Bus, error) {
	return s.FleetRepo.ListBuses()
}

func (s FleetService) validateBus(b models.Bus) error {
	if utils.TrimOrEmpty(b.BusNo) == "" {
		return domain.ValidationError{Field: "bus_no", Msg: "required"}
	}
	if b.Capacity < 1 {
		return domain.ValidationError{Field: "capacity", Msg: "must be positive"}
	}
	return nil
}

func (s FleetService) CreateBus(b models.Bus) (int64, error) {
	b.BusNo = utils.TrimOrEmpty(b.BusNo)
	b.BusType = utils.TrimOrEmpty(b.BusType)
	if err := s.validateBus(b); err != nil {
		return 0, err
	}
	exists, err := s.FleetRepo.BusNoExists(b.BusNo, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, domain.ValidationError{Field: "bus_no", Msg: "already registered"}
	}
	if b.DriverID != nil {
		if _, err := s.FleetRepo.GetDriver(*b.DriverID); err != nil {
			return 0, err
		}
	}
	return s.FleetRepo.CreateBus(b)
}

func (s FleetService) UpdateBus(b models.Bus) error {
	b.BusNo = utils.TrimOrEmpty(b.BusNo)
	b.BusType = utils.TrimOrEmpty(b.BusType)
	if err := s.validateBus(b); err != nil {
		return err
	}
	exists, err := s.FleetRepo.BusNoExists(b.BusNo, b.ID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ValidationError{Field: "bus_no", Msg: "already registered"}
	}
	if b.DriverID != nil {
		if _, err := s.FleetRepo.GetDriver(*b.DriverID); err != nil {
			return err
		}
	}
	return s.FleetRepo.UpdateBus(b)
}

func (s FleetService) DeleteBus(busID int64) error {
	return s.FleetRepo.DeleteBus(busID)
}

// ---- routes ----

func (s FleetService) ListRoutes() ([]models.Route, error) {
	return s.FleetRepo.ListRoutes()
}

func (s FleetService) validateRoute(rt models.Route) error {
	if rt.Origin == "" {
		return domain.ValidationError{Field: "origin", Msg: "required"}
	}
	if rt.Destination == "" {
		return domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if utils.NormalizePlace(rt.Origin) == utils.NormalizePlace(rt.Destination) {
		return domain.ValidationError{Field: "destination", Msg: "must differ from origin"}
	}
	if rt.BaseFare < 0 {
		return domain.ValidationError{Field: "base_fare", Msg: "must not be negative"}
	}
	return nil
}

func (s FleetService) CreateRoute(rt models.Route) (int64, error) {
	rt.Origin = utils.NormalizeSpace(rt.Origin)
	rt.Destination = utils.NormalizeSpace(rt.Destination)
	if err := s.validateRoute(rt); err != nil {
		return 0, err
	}
	return s.FleetRepo.CreateRoute(rt)
}

func (s FleetService) UpdateRoute(rt models.Route) error {
	rt.Origin = utils.NormalizeSpace(rt.Origin)
	rt.Destination = utils.NormalizeSpace(rt.Destination)
	if err := s.validateRoute(rt); err != nil {
		return err
	}
	return s.FleetRepo.UpdateRoute(rt)
}

func (s FleetService) DeleteRoute(routeID int64) error {
	return s.FleetRepo.DeleteRoute(routeID)
}

// ---- drivers ----

func (s FleetService) ListDrivers() ([]models.Driver, error) {
	return s.FleetRepo.ListDrivers()
}

func (s FleetService) validateDriver(d models.Driver) error {
	if utils.TrimOrEmpty(d.FirstName) == "" {
		return domain.ValidationError{Field: "first_name", Msg: "required"}
	}
	if utils.TrimOrEmpty(d.LicenseNo) == "" {
		return domain.ValidationError{Field: "license_no", Msg: "required"}
	}
	if d.HiredDate != "" {
		if _, err := utils.ParseDate(d.HiredDate); err != nil {
			return domain.ValidationError{Field: "hired_date", Msg: "expected YYYY-MM-DD"}
		}
	}
	return nil
}

func (s FleetService) CreateDriver(d models.Driver) (int64, error) {
	if err := s.validateDriver(d); err != nil {
		return 0, err
	}
	return s.FleetRepo.CreateDriver(d)
}

func (s FleetService) UpdateDriver(d models.Driver) error {
	if err := s.validateDriver(d); err != nil {
		return err
	}
	return s.FleetRepo.UpdateDriver(d)
}

func (s FleetService) DeleteDriver(driverID int64) error {
	return s.FleetRepo.DeleteDriver(driverID)
}
