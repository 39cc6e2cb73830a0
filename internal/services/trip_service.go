package services

import (
	"time"

	"busnexus/internal/domain"
	"busnexus/internal/domain/models"
	"busnexus/internal/repositories"
	"busnexus/internal/utils"
)

// TripService covers trip search for passengers and scheduling for
// coordinators. Seat counts are read here but only mutated by the ledger.
type TripService struct {
	TripRepo  repositories.TripRepo
	FleetRepo repositories.FleetRepo
	Now       func() time.Time
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SearchTrips lists scheduled trips with open seats for a travel date.
func (s TripService) SearchTrips(origin, destination, date string) ([]models.TripSummary, error) {
	origin = utils.NormalizeSpace(origin)
	destination = utils.NormalizeSpace(destination)
	if origin == "" {
		return nil, domain.ValidationError{Field: "origin", Msg: "required"}
	}
	if destination == "" {
		return nil, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if utils.NormalizePlace(origin) == utils.NormalizePlace(destination) {
		return nil, domain.ValidationError{Field: "destination", Msg: "must differ from origin"}
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD"}
	}
	return s.TripRepo.Search(origin, destination, utils.FormatDate(day))
}

// GetTripDetails returns the joined trip view or NotFound.
func (s TripService) GetTripDetails(tripID int64) (models.TripDetail, error) {
	if tripID <= 0 {
		return models.TripDetail{}, domain.ValidationError{Field: "trip_id", Msg: "invalid id"}
	}
	return s.TripRepo.GetDetail(tripID)
}

// ListTrips backs the coordinator trip table.
func (s TripService) ListTrips(includePast bool) ([]models.TripSummary, error) {
	return s.TripRepo.List(includePast, utils.FormatDate(s.now()))
}

// ScheduleTrip creates a scheduled trip. Seats default to the bus capacity
// and may be lowered (never raised) by the caller.
func (s TripService) ScheduleTrip(busID, routeID int64, departure, arrival string, seats int) (int64, error) {
	dep, err := utils.ParseDateTime(departure)
	if err != nil {
		return 0, domain.ValidationError{Field: "departure_datetime", Msg: "expected YYYY-MM-DD HH:MM:SS"}
	}
	arr, err := utils.ParseDateTime(arrival)
	if err != nil {
		return 0, domain.ValidationError{Field: "arrival_datetime", Msg: "expected YYYY-MM-DD HH:MM:SS"}
	}
	if !arr.After(dep) {
		return 0, domain.ValidationError{Field: "arrival_datetime", Msg: "must be after departure"}
	}

	bus, err := s.FleetRepo.GetBus(busID)
	if err != nil {
		return 0, err
	}
	if _, err := s.FleetRepo.GetRoute(routeID); err != nil {
		return 0, err
	}

	if seats <= 0 {
		seats = bus.Capacity
	}
	if seats > bus.Capacity {
		return 0, domain.ValidationError{Field: "seats_available", Msg: "exceeds bus capacity"}
	}

	return s.TripRepo.Create(models.Trip{
		BusID:          busID,
		RouteID:        routeID,
		Departure:      dep,
		Arrival:        arr,
		SeatsAvailable: seats,
		Status:         models.TripScheduled,
	})
}

// UpdateTripStatus moves a scheduled trip to completed or cancelled. Both
// target states are terminal.
func (s TripService) UpdateTripStatus(tripID int64, status string) error {
	if status != models.TripCompleted && status != models.TripCancelled {
		return domain.ValidationError{Field: "status", Msg: "must be completed or cancelled"}
	}
	detail, err := s.TripRepo.GetDetail(tripID)
	if err != nil {
		return err
	}
	if detail.Status != models.TripScheduled {
		return domain.ConflictError{Resource: "trip", Msg: "trip is no longer scheduled"}
	}
	return s.TripRepo.UpdateStatus(tripID, status)
}

// Origins lists distinct route origins for the search form.
func (s TripService) Origins() ([]string, error) {
	return s.TripRepo.DistinctOrigins()
}

// Destinations lists distinct route destinations for the search form.
func (s TripService) Destinations() ([]string, error) {
	return s.TripRepo.DistinctDestinations()
}
