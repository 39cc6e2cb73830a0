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

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		TripRepo:    repositories.TripRepo{},
		BookingRepo: repositories.BookingRepo{},
		UserRepo:    repositories.UserRepo{},
		RequestID:   middleware.GetRequestID(c),
	}
}

type bookingView struct {
	BookingID       int64  `json:"bookingId"`
	UserID          int64  `json:"userId"`
	TripID          int64  `json:"tripId"`
	TotalFare       string `json:"totalFare"`
	BookingStatus   string `json:"bookingStatus"`
	PaymentStatus   string `json:"paymentStatus"`
	BookingDatetime string `json:"bookingDatetime"`
}

func toBookingView(b models.Booking) bookingView {
	return bookingView{
		BookingID:       b.ID,
		UserID:          b.UserID,
		TripID:          b.TripID,
		TotalFare:       utils.FormatMoney(b.TotalFare),
		BookingStatus:   b.BookingStatus,
		PaymentStatus:   b.PaymentStatus,
		BookingDatetime: utils.FormatDateTime(b.BookingDatetime),
	}
}

type ticketView struct {
	TicketID    int64  `json:"ticketId"`
	SeatNo      int    `json:"seatNo"`
	PickupPoint string `json:"pickupPoint"`
	DropPoint   string `json:"dropPoint"`
}

type createBookingRequest struct {
	TripID   int64 `json:"tripId"`
	NumSeats int   `json:"numSeats"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	rc, ok := CallerContext(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := bookingService(c).CreateBooking(rc, req.TripID, req.NumSeats)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bookingId": id})
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	rc, ok := CallerContext(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := bookingService(c).CancelBooking(rc, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookingId": id, "bookingStatus": models.BookingCancelled})
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	rc, ok := CallerContext(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	b, err := bookingService(c).GetBooking(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": toBookingView(b)})
}

// GET /api/bookings/:id/tickets
func GetBookingTickets(c *gin.Context) {
	rc, ok := CallerContext(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	tickets, err := bookingService(c).GetTickets(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]ticketView, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketView{
			TicketID:    t.ID,
			SeatNo:      t.SeatNo,
			PickupPoint: t.PickupPoint,
			DropPoint:   t.DropPoint,
		})
	}
	c.JSON(http.StatusOK, gin.H{"bookingId": id, "tickets": out})
}

// GET /api/bookings/:id/e-ticket
func DownloadETicket(c *gin.Context) {
	rc, ok := CallerContext(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := services.DocsService{
		BookingRepo: repositories.BookingRepo{},
		TripRepo:    repositories.TripRepo{},
		UserRepo:    repositories.UserRepo{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateETicket(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/users/:id/bookings
func UserBookingHistory(c *gin.Context) {
	rc, ok := CallerContext(c)
	if !ok {
		return
	}
	userID, ok := PathID(c, "id")
	if !ok {
		return
	}
	items, err := bookingService(c).GetBookingHistory(rc, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	type historyView struct {
		BookingID       int64  `json:"bookingId"`
		BookingDatetime string `json:"bookingDatetime"`
		TotalFare       string `json:"totalFare"`
		BookingStatus   string `json:"bookingStatus"`
		PaymentStatus   string `json:"paymentStatus"`
		Departure       string `json:"departureDatetime"`
		Arrival         string `json:"arrivalDatetime"`
		Origin          string `json:"origin"`
		Destination     string `json:"destination"`
		BusNo           string `json:"busNo"`
		BusType         string `json:"busType"`
	}
	out := make([]historyView, 0, len(items))
	for _, it := range items {
		out = append(out, historyView{
			BookingID:       it.BookingID,
			BookingDatetime: utils.FormatDateTime(it.BookingDatetime),
			TotalFare:       utils.FormatMoney(it.TotalFare),
			BookingStatus:   it.BookingStatus,
			PaymentStatus:   it.PaymentStatus,
			Departure:       utils.FormatDateTime(it.Departure),
			Arrival:         utils.FormatDateTime(it.Arrival),
			Origin:          it.Origin,
			Destination:     it.Destination,
			BusNo:           it.BusNo,
			BusType:         it.BusType,
		})
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "bookings": out})
}
