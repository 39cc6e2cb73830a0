package services

import (
	"strings"
	"testing"

	"busnexus/internal/domain/models"
)

func TestBuildETicketPDF(t *testing.T) {
	data := eTicketData{
		BookingID:     42,
		PassengerName: "Ada Lovelace",
		Origin:        "Springfield",
		Destination:   "Shelbyville",
		BusNo:         "BN-01",
		Departure:     "2026-08-10 08:00:00",
		Arrival:       "2026-08-10 13:00:00",
		Tickets: []models.Ticket{
			{SeatNo: 1, PickupPoint: "Springfield", DropPoint: "Shelbyville"},
			{SeatNo: 2, PickupPoint: "Springfield", DropPoint: "Shelbyville"},
		},
		TotalFare:     2000,
		PaymentStatus: models.PaymentUnpaid,
		BookingStatus: models.BookingBooked,
	}

	pdf, filename, err := buildETicketPDF(data)
	if err != nil {
		t.Fatalf("buildETicketPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("buildETicketPDF returned empty data")
	}
	if filename != "ETICKET_42.pdf" {
		t.Fatalf("filename = %q", filename)
	}
	if !strings.HasPrefix(string(pdf[:5]), "%PDF-") {
		t.Fatalf("output does not look like a PDF")
	}
}

func TestBuildETicketPDFWithMissingFields(t *testing.T) {
	pdf, _, err := buildETicketPDF(eTicketData{BookingID: 1})
	if err != nil {
		t.Fatalf("buildETicketPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("buildETicketPDF returned empty data")
	}
}
