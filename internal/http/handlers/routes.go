package handlers

import (
	"net/http"

	"busnexus/internal/domain"
	"busnexus/internal/domain/models"
	"busnexus/internal/utils"

	"github.com/gin-gonic/gin"
)

type routeView struct {
	ID          int64    `json:"id"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	DistanceKM  float64  `json:"distanceKm"`
	BaseFare    string   `json:"baseFare"`
	OriginLat   *float64 `json:"originLat"`
	OriginLon   *float64 `json:"originLon"`
	DestLat     *float64 `json:"destLat"`
	DestLon     *float64 `json:"destLon"`
	Description string   `json:"description"`
}

type routeRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	DistanceKM  float64  `json:"distanceKm"`
	BaseFare    string   `json:"baseFare"`
	OriginLat   *float64 `json:"originLat"`
	OriginLon   *float64 `json:"originLon"`
	DestLat     *float64 `json:"destLat"`
	DestLon     *float64 `json:"destLon"`
	Description string   `json:"description"`
}

func (r routeRequest) toModel(id int64) (models.Route, error) {
	fare, err := utils.ParseMoney(r.BaseFare)
	if err != nil {
		return models.Route{}, domain.ValidationError{Field: "baseFare", Msg: "expected a decimal amount"}
	}
	return models.Route{
		ID:          id,
		Origin:      r.Origin,
		Destination: r.Destination,
		DistanceKM:  r.DistanceKM,
		BaseFare:    fare,
		OriginLat:   r.OriginLat,
		OriginLon:   r.OriginLon,
		DestLat:     r.DestLat,
		DestLon:     r.DestLon,
		Description: r.Description,
	}, nil
}

// GET /api/routes (coordinator)
func ListRoutes(c *gin.Context) {
	routes, err := fleetService().ListRoutes()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]routeView, 0, len(routes))
	for _, rt := range routes {
		out = append(out, routeView{
			ID:          rt.ID,
			Origin:      rt.Origin,
			Destination: rt.Destination,
			DistanceKM:  rt.DistanceKM,
			BaseFare:    utils.FormatMoney(rt.BaseFare),
			OriginLat:   rt.OriginLat,
			OriginLon:   rt.OriginLon,
			DestLat:     rt.DestLat,
			DestLon:     rt.DestLon,
			Description: rt.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

// POST /api/routes (coordinator)
func CreateRoute(c *gin.Context) {
	var req routeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	rt, err := req.toModel(0)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	id, err := fleetService().CreateRoute(rt)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"routeId": id})
}

// PUT /api/routes/:id (coordinator)
func UpdateRoute(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req routeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	rt, err := req.toModel(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := fleetService().UpdateRoute(rt); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routeId": id})
}

// DELETE /api/routes/:id (coordinator)
func DeleteRoute(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := fleetService().DeleteRoute(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routeId": id, "deleted": true})
}
