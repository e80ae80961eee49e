// Package templates holds the document renderers: one type per
// (document kind, output format) pair, registered with the renderer
// registry at startup.
package templates

import (
	"fmt"
	"math/rand"
	"strings"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/pkg/layout"
	"traveldocs-service/pkg/ticket"
)

const (
	defaultAirline = "Travaky Airlines"
	supportLine    = "Manage your booking online at support.travaky.com | Helpline: +1-800-TRAVAKY"
)

var ticketRules = []string{
	"All timings are local to the respective airport. Please verify flight times with the airline 24 hours prior to departure.",
	"Check-in counters close 60 minutes before departure for international flights and 45 minutes for domestic flights. Please report early to allow sufficient time for security screening.",
	"A valid, government-issued photo ID is mandatory for all passengers, including infants, at check-in.",
	"For international travel, ensure your passport has at least 6 months of validity from your date of travel and that you possess any required visas or transit documents for your destination and layovers.",
	"Cabin baggage is limited to 1 piece weighing up to 8kg, with dimensions not exceeding 55x35x25 cm. One personal item, such as a laptop bag or handbag, is also permitted.",
	"The standard checked baggage allowance is 1 piece weighing up to 23kg. Any single bag weighing over 32kg will not be accepted.",
	"Excess baggage will be chargeable at prevailing airport rates. Contact Travaky Airlines for details on pre-purchasing extra baggage allowance.",
	"This e-ticket is non-transferable. Any changes to your travel date or routing are subject to airline rules, may incur fees, and will require payment of any fare difference.",
	"Carriage of dangerous goods like explosives, compressed gases, flammable items, corrosives, or radioactive materials is strictly prohibited in either checked or cabin baggage.",
	"Travaky Airlines is not liable for any loss or damage to fragile, valuable, or perishable items (e.g., jewelry, electronics, cash, important documents) included in your checked baggage.",
	"In case of flight cancellation or a major delay, you will be re-booked on the next available flight as per our Conditions of Carriage. Please contact our ground staff for assistance.",
	"This booking is governed by Travaky Airlines' Conditions of Carriage, which are available on our website.",
}

// FlightTicketPDF renders the e-ticket confirmation: header, per-leg
// segments, traveller table with barcodes, fare breakup and fare rules.
type FlightTicketPDF struct{}

// NewFlightTicketPDF creates a new flight ticket PDF renderer
func NewFlightTicketPDF() *FlightTicketPDF {
	return &FlightTicketPDF{}
}

// Target identifies the kind/format pair this renderer produces
func (t *FlightTicketPDF) Target() entity.RenderTarget {
	return entity.RenderTarget{Kind: entity.KindFlightTicket, Format: entity.FormatPDF}
}

// Render produces the flight ticket PDF
func (t *FlightTicketPDF) Render(record *entity.NormalizedRecord, rnd *rand.Rand) ([]byte, error) {
	doc := layout.NewDoc()
	travellers := record.Travellers()
	legs := record.Legs

	primaryAirline := defaultAirline
	if len(legs) > 0 && legs[0].Airline != "" {
		primaryAirline = legs[0].Airline
	}

	doc.Font("B", 18)
	doc.Cell(0, 10, fmt.Sprintf("%s -Ticket Confirmation", primaryAirline), "", 1, "L")
	doc.Font("", 12)
	doc.Cell(0, 10, fmt.Sprintf("Trip ID: %s", record.TripID), "", 1, "L")

	if len(legs) > 0 {
		doc.Font("B", 16)
		doc.Cell(0, 10, fmt.Sprintf("%s to %s", record.Applicant.Hometown, legs[len(legs)-1].Destination), "", 1, "L")
		doc.Font("", 10)
		doc.Cell(0, 5, fmt.Sprintf("Primary PNR: %s", orNA(legs[0].PNR)), "", 1, "L")
	}
	doc.Separator(4, 4, 220)

	for i, leg := range legs {
		t.renderLeg(doc, leg, len(travellers), rnd)
		if i < len(legs)-1 {
			doc.Separator(4, 4, 220)
		}
	}

	t.renderTravellers(doc, record, travellers, rnd)
	t.renderFareBreakup(doc, record)
	t.renderRules(doc)

	doc.Separator(4, 4, 220)
	doc.Font("", 10)
	doc.Cell(0, 8, supportLine, "", 1, "C")

	return doc.Output()
}

func (t *FlightTicketPDF) renderLeg(doc *layout.Doc, leg entity.TripLeg, travellers int, rnd *rand.Rand) {
	airline := leg.Airline
	if airline == "" {
		airline = defaultAirline
	}

	doc.Font("B", 12)
	doc.Cell(80, 8, airline, "", 0, "L")
	doc.Font("B", 10)
	doc.Cell(0, 8, fmt.Sprintf("PNR: %s", orNA(leg.PNR)), "", 1, "R")

	doc.Font("", 10)
	doc.Cell(0, 6, fmt.Sprintf("Flight %s | Fare type: Saver", orNA(leg.FlightNo)), "", 1, "L")
	yBeforeTimes := doc.Y()

	doc.Font("B", 16)
	doc.Cell(50, 8, orNA(leg.DepTime), "", 0, "L")
	doc.Cell(20, 8, "-->", "", 0, "C")
	doc.Cell(50, 8, orNA(leg.ArrTime), "", 1, "L")

	doc.SetY(yBeforeTimes + 6)
	doc.Font("", 10)
	doc.Cell(50, 8, leg.Origin, "", 0, "L")
	doc.Cell(20, 8, "", "", 0, "C")
	doc.Cell(50, 8, leg.Destination, "", 1, "L")

	doc.Ln(2)
	seats := make([]string, travellers)
	for i := range seats {
		seats[i] = fmt.Sprintf("%d%c", 10+rnd.Intn(31), 'A'+rune(rnd.Intn(6)))
	}
	doc.MultiCell(0, 5, fmt.Sprintf("Date: %s\nSeats - %s", leg.ArrivalDate.Format("Mon, 02 Jan 2006"), strings.Join(seats, ", ")), "", "L")
}

func (t *FlightTicketPDF) renderTravellers(doc *layout.Doc, record *entity.NormalizedRecord, travellers []string, rnd *rand.Rand) {
	doc.Separator(4, 4, 220)
	doc.Font("B", 11)
	doc.FillColor(240, 240, 240)
	doc.FillCell(140, 8, "TRAVELLERS", "1", 0, "L")
	doc.FillCell(50, 8, "E-TICKET NO.", "1", 1, "C")

	for i, name := range travellers {
		ticketNo := ""
		if len(record.Legs) > 0 {
			ticketNo = record.Legs[0].TicketNo
		}
		if ticketNo == "" {
			ticketNo = ticket.Number(rnd, "", i)
		}

		yBefore := doc.Y()
		doc.Font("", 11)
		doc.Cell(80, 12, fmt.Sprintf("  %s", strings.ToUpper(name)), "L", 0, "L")
		doc.Cell(60, 12, "", "B", 0, "C")
		doc.Cell(50, 12, ticketNo, "R", 1, "C")

		if png, err := ticket.BarcodePNG(ticketNo); err == nil {
			doc.ImagePNG(png, doc.X()+80, yBefore+2, 8)
		}
	}
	doc.Cell(0, 0, "", "T", 1, "")
}

func (t *FlightTicketPDF) renderFareBreakup(doc *layout.Doc, record *entity.NormalizedRecord) {
	base, taxes, total := record.FareBreakdown()

	doc.Separator(4, 4, 220)
	doc.Font("B", 11)
	doc.Cell(0, 8, "FARE BREAKUP", "", 1, "L")
	doc.Font("", 10)
	doc.Cell(120, 6, "Base Fare:", "", 0, "L")
	doc.Cell(0, 6, fmt.Sprintf("$ %s", formatAmount(base)), "", 1, "R")
	doc.Cell(120, 6, "Taxes and Surcharges:", "", 0, "L")
	doc.Cell(0, 6, fmt.Sprintf("$ %s", formatAmount(taxes)), "", 1, "R")
	doc.Font("B", 10)
	doc.Cell(120, 8, "Total Fare (USD):", "T", 0, "L")
	doc.Cell(0, 8, fmt.Sprintf("$ %s", formatAmount(total)), "T", 1, "R")
}

func (t *FlightTicketPDF) renderRules(doc *layout.Doc) {
	doc.Separator(4, 4, 220)
	doc.Font("B", 11)
	doc.Cell(0, 8, "IMPORTANT INFORMATION", "", 1, "L")
	doc.Font("", 8)
	doc.Ln(1)

	for _, rule := range ticketRules {
		doc.Cell(4, 4, "-", "", 0, "C")
		doc.MultiCell(doc.ContentWidth()-4, 4, rule, "", "L")
		doc.SetY(doc.Y() + 1)
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// formatAmount renders a dollar amount with thousands separators, e.g.
// 1416 as "1,416.00".
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
