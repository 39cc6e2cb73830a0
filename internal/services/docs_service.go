package services

import (
	"bytes"
	"fmt"
	"strings"

	"busnexus/internal/domain"
	"busnexus/internal/domain/models"
	"busnexus/internal/repositories"
	"busnexus/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the e-ticket PDF for a booking.
type DocsService struct {
	BookingRepo repositories.BookingRepo
	TripRepo    repositories.TripRepo
	UserRepo    repositories.UserRepo
	RequestID   string
}

type eTicketData struct {
	BookingID     int64
	PassengerName string
	Origin        string
	Destination   string
	BusNo         string
	Departure     string
	Arrival       string
	Tickets       []models.Ticket
	TotalFare     int64
	PaymentStatus string
	BookingStatus string
}

// GenerateETicket builds the PDF for a booking visible to the caller.
func (s DocsService) GenerateETicket(rc domain.RequestContext, bookingID int64) ([]byte, string, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	if !rc.IsCoordinator() && booking.UserID != int64(rc.UserID) {
		return nil, "", domain.NotFoundError{Resource: "booking"}
	}

	trip, err := s.TripRepo.GetDetail(booking.TripID)
	if err != nil {
		return nil, "", err
	}
	tickets, err := s.BookingRepo.TicketsByBooking(bookingID)
	if err != nil {
		return nil, "", err
	}

	data := eTicketData{
		BookingID:     booking.ID,
		Origin:        trip.Origin,
		Destination:   trip.Destination,
		BusNo:         trip.BusNo,
		Departure:     utils.FormatDateTime(trip.Departure),
		Arrival:       utils.FormatDateTime(trip.Arrival),
		Tickets:       tickets,
		TotalFare:     booking.TotalFare,
		PaymentStatus: booking.PaymentStatus,
		BookingStatus: booking.BookingStatus,
	}
	if u, err := s.UserRepo.GetByID(booking.UserID); err == nil {
		data.PassengerName = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}

	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func buildETicketPDF(d eTicketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking      : #%d (%s)", d.BookingID, safe(d.BookingStatus, "-")),
		fmt.Sprintf("Passenger    : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("Route        : %s -> %s", safe(d.Origin, "-"), safe(d.Destination, "-")),
		fmt.Sprintf("Bus          : %s", safe(d.BusNo, "-")),
		fmt.Sprintf("Departure    : %s", safe(d.Departure, "-")),
		fmt.Sprintf("Arrival      : %s", safe(d.Arrival, "-")),
		fmt.Sprintf("Total Fare   : %s", utils.FormatMoney(d.TotalFare)),
		fmt.Sprintf("Payment      : %s", safe(d.PaymentStatus, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Seats")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, t := range d.Tickets {
		pdf.Cell(0, 6, fmt.Sprintf("Seat %d  pickup %s  drop %s", t.SeatNo, safe(t.PickupPoint, "-"), safe(t.DropPoint, "-")))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this e-ticket at departure. One line per reserved seat.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d.pdf", d.BookingID)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
