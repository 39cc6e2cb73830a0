package services

import (
	"busnexus/internal/domain"
	"busnexus/internal/repositories"
	"busnexus/internal/utils"
)

// ReportService assembles the coordinator dashboard numbers.
type ReportService struct {
	ReportRepo repositories.ReportRepo
}

type DashboardSummary struct {
	TotalActiveBookings int                               `json:"totalActiveBookings"`
	PopularRoutes       []repositories.RoutePopularityRow `json:"popularRoutes"`
	PopularDestinations []repositories.DestinationRow     `json:"popularDestinations"`
}

func (s ReportService) Summary() (DashboardSummary, error) {
	var out DashboardSummary
	total, err := s.ReportRepo.TotalActiveBookings()
	if err != nil {
		return out, err
	}
	routes, err := s.ReportRepo.RoutePopularity()
	if err != nil {
		return out, err
	}
	dests, err := s.ReportRepo.PopularDestinations()
	if err != nil {
		return out, err
	}
	out.TotalActiveBookings = total
	out.PopularRoutes = routes
	out.PopularDestinations = dests
	return out, nil
}

// RevenueRow is the wire form of a daily revenue bucket; the amount is the
// formatted decimal string of the cent sum.
type RevenueRow struct {
	Date         string `json:"date"`
	Revenue      string `json:"revenue"`
	BookingCount int    `json:"bookingCount"`
}

func (s ReportService) DailyRevenue(startDate, endDate string) ([]RevenueRow, error) {
	if startDate != "" {
		if _, err := utils.ParseDate(startDate); err != nil {
			return nil, domain.ValidationError{Field: "start_date", Msg: "expected YYYY-MM-DD"}
		}
	}
	if endDate != "" {
		if _, err := utils.ParseDate(endDate); err != nil {
			return nil, domain.ValidationError{Field: "end_date", Msg: "expected YYYY-MM-DD"}
		}
	}
	rows, err := s.ReportRepo.DailyRevenue(startDate, endDate)
	if err != nil {
		return nil, err
	}
	out := make([]RevenueRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, RevenueRow{
			Date:         r.Date,
			Revenue:      utils.FormatMoney(r.Revenue),
			BookingCount: r.BookingCount,
		})
	}
	return out, nil
}
