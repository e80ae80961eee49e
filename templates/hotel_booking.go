package templates

import (
	"fmt"
	"math/rand"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/pkg/layout"
)

// HotelBookingPDF renders the booking confirmation: one block per stay
// with dates, nights, guests and the per-stay price summary.
type HotelBookingPDF struct{}

// NewHotelBookingPDF creates a new hotel booking PDF renderer
func NewHotelBookingPDF() *HotelBookingPDF {
	return &HotelBookingPDF{}
}

// Target identifies the kind/format pair this renderer produces
func (t *HotelBookingPDF) Target() entity.RenderTarget {
	return entity.RenderTarget{Kind: entity.KindHotelBooking, Format: entity.FormatPDF}
}

// Render produces the hotel booking PDF
func (t *HotelBookingPDF) Render(record *entity.NormalizedRecord, _ *rand.Rand) ([]byte, error) {
	doc := layout.NewDoc(layout.WithTitle("Hotel Booking Confirmation"))
	guests := len(record.Travellers())

	if len(record.Stays) == 0 {
		doc.Font("B", 12)
		doc.Cell(0, 10, "No hotel stay was selected for this itinerary.", "", 1, "C")
		return doc.Output()
	}

	doc.Font("B", 16)
	doc.Cell(0, 10, fmt.Sprintf("Your %d Booking(s) are Confirmed!", len(record.Stays)), "", 1, "C")
	doc.Font("", 10)
	doc.Cell(0, 5, fmt.Sprintf("Booking Itinerary ID: %s-HTL", record.TripID), "", 1, "C")
	doc.Ln(5)

	for i, stay := range record.Stays {
		t.renderStay(doc, i, stay, guests)
	}

	doc.SetY(-30)
	doc.Font("I", 9)
	doc.MultiCell(0, 5, "This is a dummy document generated for demonstration purposes. Manage your booking at support.travaky.com.", "", "C")

	return doc.Output()
}

func (t *HotelBookingPDF) renderStay(doc *layout.Doc, index int, stay entity.HotelStay, guests int) {
	doc.Separator(4, 4, 220)
	doc.Font("B", 14)
	doc.Cell(0, 8, fmt.Sprintf("Stay %d: %s", index+1, stay.Hotel.Name), "", 1, "L")
	doc.Font("", 11)
	doc.Cell(0, 6, fmt.Sprintf("%s, %s", stay.Hotel.City, stay.Hotel.Country), "", 1, "L")
	doc.Ln(3)

	colWidth := doc.ContentWidth()/2 - 5

	doc.Font("B", 11)
	doc.Cell(colWidth, 7, "Check-in", "", 0, "L")
	doc.Cell(colWidth, 7, "Check-out", "", 1, "L")
	doc.Font("", 11)
	doc.Cell(colWidth, 7, stay.Leg.ArrivalDate.Format("Mon, 02 Jan 2006"), "", 0, "L")
	doc.Cell(colWidth, 7, stay.Leg.DepartureDate.Format("Mon, 02 Jan 2006"), "", 1, "L")

	doc.Font("B", 11)
	doc.Cell(colWidth, 7, "Total Nights", "", 0, "L")
	doc.Cell(colWidth, 7, "Guests", "", 1, "L")
	doc.Font("", 11)
	doc.Cell(colWidth, 7, fmt.Sprintf("%d", stay.Nights()), "", 0, "L")
	doc.Cell(colWidth, 7, fmt.Sprintf("%d", guests), "", 1, "L")
	doc.Ln(5)

	doc.Font("B", 12)
	doc.Cell(0, 8, "Price Summary for this Stay", "", 1, "L")
	doc.Font("", 11)
	doc.Cell(130, 7, "Nightly Rate (per guest)", "", 0, "L")
	doc.Cell(0, 7, fmt.Sprintf("EUR %s", formatAmount(stay.Hotel.Rate)), "", 1, "R")
	doc.Cell(130, 8, "Total Stay Cost", "T", 0, "L")
	doc.Cell(0, 8, fmt.Sprintf("EUR %s", formatAmount(stay.Cost(guests))), "T", 1, "R")
	doc.Ln(5)
}
