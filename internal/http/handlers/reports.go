package handlers

import (
	"net/http"

	"busnexus/internal/repositories"
	"busnexus/internal/services"

	"github.com/gin-gonic/gin"
)

func reportService() services.ReportService {
	return services.ReportService{ReportRepo: repositories.ReportRepo{}}
}

// GET /api/reports/summary (coordinator)
func ReportSummary(c *gin.Context) {
	summary, err := reportService().Summary()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GET /api/reports/revenue?start_date=&end_date= (coordinator)
func ReportRevenue(c *gin.Context) {
	rows, err := reportService().DailyRevenue(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revenue": rows})
}

// GET /api/reports/popular-routes (coordinator)
func ReportPopularRoutes(c *gin.Context) {
	rows, err := repositories.ReportRepo{}.RoutePopularity()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"popularRoutes": rows})
}
