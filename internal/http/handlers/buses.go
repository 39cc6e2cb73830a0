package handlers

import (
	"net/http"

	"busnexus/internal/domain/models"
	"busnexus/internal/repositories"
	"busnexus/internal/services"

	"github.com/gin-gonic/gin"
)

func fleetService() services.FleetService {
	return services.FleetService{FleetRepo: repositories.FleetRepo{}}
}

type busView struct {
	ID       int64  `json:"id"`
	BusNo    string `json:"busNo"`
	BusType  string `json:"busType"`
	Capacity int    `json:"capacity"`
	DriverID *int64 `json:"driverId"`
}

type busRequest struct {
	BusNo    string `json:"busNo"`
	BusType  string `json:"busType"`
	Capacity int    `json:"capacity"`
	DriverID *int64 `json:"driverId"`
}

// GET /api/buses (coordinator)
func ListBuses(c *gin.Context) {
	buses, err := fleetService().ListBuses()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]busView, 0, len(buses))
	for _, b := range buses {
		out = append(out, busView{ID: b.ID, BusNo: b.BusNo, BusType: b.BusType, Capacity: b.Capacity, DriverID: b.DriverID})
	}
	c.JSON(http.StatusOK, gin.H{"buses": out})
}

// POST /api/buses (coordinator)
func CreateBus(c *gin.Context) {
	var req busRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := fleetService().CreateBus(models.Bus{
		BusNo:    req.BusNo,
		BusType:  req.BusType,
		Capacity: req.Capacity,
		DriverID: req.DriverID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"busId": id})
}

// PUT /api/buses/:id (coordinator)
func UpdateBus(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req busRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	err := fleetService().UpdateBus(models.Bus{
		ID:       id,
		BusNo:    req.BusNo,
		BusType:  req.BusType,
		Capacity: req.Capacity,
		DriverID: req.DriverID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"busId": id})
}

// DELETE /api/buses/:id (coordinator)
func DeleteBus(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := fleetService().DeleteBus(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"busId": id, "deleted": true})
}
