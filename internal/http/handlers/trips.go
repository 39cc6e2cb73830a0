package handlers

import (
	"net/http"

	"busnexus/internal/domain/models"
	"busnexus/internal/http/middleware"
	"busnexus/internal/repositories"
	"busnexus/internal/services"
	"busnexus/internal/utils"

	"github.com/gin-gonic/gin"
)

func tripService() services.TripService {
	return services.TripService{
		TripRepo:  repositories.TripRepo{},
		FleetRepo: repositories.FleetRepo{},
	}
}

// tripSummaryView is the wire form of a search-result row.
type tripSummaryView struct {
	TripID         int64  `json:"tripId"`
	BusNo          string `json:"busNo"`
	BusType        string `json:"busType"`
	Departure      string `json:"departureDatetime"`
	Arrival        string `json:"arrivalDatetime"`
	SeatsAvailable int    `json:"seatsAvailable"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	BaseFare       string `json:"baseFare"`
}

func toTripSummaryView(t models.TripSummary) tripSummaryView {
	return tripSummaryView{
		TripID:         t.TripID,
		BusNo:          t.BusNo,
		BusType:        t.BusType,
		Departure:      utils.FormatDateTime(t.Departure),
		Arrival:        utils.FormatDateTime(t.Arrival),
		SeatsAvailable: t.SeatsAvailable,
		Origin:         t.Origin,
		Destination:    t.Destination,
		BaseFare:       utils.FormatMoney(t.BaseFare),
	}
}

func toTripSummaryViews(trips []models.TripSummary) []tripSummaryView {
	out := make([]tripSummaryView, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripSummaryView(t))
	}
	return out
}

type tripDetailView struct {
	tripSummaryView
	BusID    int64  `json:"busId"`
	RouteID  int64  `json:"routeId"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

// GET /api/trips/search?origin=&destination=&date=
func SearchTrips(c *gin.Context) {
	trips, err := tripService().SearchTrips(
		c.Query("origin"),
		c.Query("destination"),
		c.Query("date"),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": toTripSummaryViews(trips)})
}

// GET /api/trips/origins
func TripOrigins(c *gin.Context) {
	origins, err := tripService().Origins()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"origins": origins})
}

// GET /api/trips/destinations
func TripDestinations(c *gin.Context) {
	destinations, err := tripService().Destinations()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destinations": destinations})
}

// GET /api/trips?include_past=true
func ListTrips(c *gin.Context) {
	trips, err := tripService().ListTrips(c.Query("include_past") == "true")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": toTripSummaryViews(trips)})
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	detail, err := tripService().GetTripDetails(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": tripDetailView{
		tripSummaryView: toTripSummaryView(detail.TripSummary),
		BusID:           detail.BusID,
		RouteID:         detail.RouteID,
		Capacity:        detail.Capacity,
		Status:          detail.Status,
	}})
}

type scheduleTripRequest struct {
	BusID     int64  `json:"busId"`
	RouteID   int64  `json:"routeId"`
	Departure string `json:"departureDatetime"`
	Arrival   string `json:"arrivalDatetime"`
	Seats     int    `json:"seatsAvailable"`
}

// POST /api/trips (coordinator)
func ScheduleTrip(c *gin.Context) {
	var req scheduleTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := tripService().ScheduleTrip(req.BusID, req.RouteID, req.Departure, req.Arrival, req.Seats)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "trip", "scheduled", "trip created")
	c.JSON(http.StatusCreated, gin.H{"tripId": id})
}

type tripStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/trips/:id/status (coordinator)
func UpdateTripStatus(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req tripStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := tripService().UpdateTripStatus(id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": id, "status": req.Status})
}
