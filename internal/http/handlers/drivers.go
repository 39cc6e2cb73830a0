package handlers

import (
	"net/http"

	"busnexus/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type driverView struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ContactNo string `json:"contactNo"`
	LicenseNo string `json:"licenseNo"`
	HiredDate string `json:"hiredDate"`
}

type driverRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ContactNo string `json:"contactNo"`
	LicenseNo string `json:"licenseNo"`
	HiredDate string `json:"hiredDate"`
}

// GET /api/drivers (coordinator)
func ListDrivers(c *gin.Context) {
	drivers, err := fleetService().ListDrivers()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]driverView, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, driverView{
			ID:        d.ID,
			FirstName: d.FirstName,
			LastName:  d.LastName,
			ContactNo: d.ContactNo,
			LicenseNo: d.LicenseNo,
			HiredDate: d.HiredDate,
		})
	}
	c.JSON(http.StatusOK, gin.H{"drivers": out})
}

// POST /api/drivers (coordinator)
func CreateDriver(c *gin.Context) {
	var req driverRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := fleetService().CreateDriver(models.Driver{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ContactNo: req.ContactNo,
		LicenseNo: req.LicenseNo,
		HiredDate: req.HiredDate,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driverId": id})
}

// PUT /api/drivers/:id (coordinator)
func UpdateDriver(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req driverRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	err := fleetService().UpdateDriver(models.Driver{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ContactNo: req.ContactNo,
		LicenseNo: req.LicenseNo,
		HiredDate: req.HiredDate,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driverId": id})
}

// DELETE /api/drivers/:id (coordinator)
func DeleteDriver(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := fleetService().DeleteDriver(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driverId": id, "deleted": true})
}
