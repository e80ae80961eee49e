package templates

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/pkg/layout"
)

// airportCodes maps known destinations to their primary airport. The
// first leg's origin always shows as XXX; unknown origins show YYY and
// unknown destinations ZZZ.
var airportCodes = map[string]string{
	"France":  "CDG",
	"Germany": "FRA",
	"Italy":   "FCO",
	"Spain":   "MAD",
	"USA":     "JFK",
	"Dubai":   "DXB",
}

var aircraftTypes = []string{"777-300ER", "787-9", "A350-900"}

// ItineraryPDF renders the day-wise travel plan: the trip banner, the
// reservation block and a three-column segment layout per leg.
type ItineraryPDF struct{}

// NewItineraryPDF creates a new itinerary PDF renderer
func NewItineraryPDF() *ItineraryPDF {
	return &ItineraryPDF{}
}

// Target identifies the kind/format pair this renderer produces
func (t *ItineraryPDF) Target() entity.RenderTarget {
	return entity.RenderTarget{Kind: entity.KindItinerary, Format: entity.FormatPDF}
}

// Render produces the itinerary PDF
func (t *ItineraryPDF) Render(record *entity.NormalizedRecord, rnd *rand.Rand) ([]byte, error) {
	doc := layout.NewDoc(layout.WithBreakMargin(10))
	passenger := strings.ToUpper(record.Applicant.Name)
	legs := record.Legs

	if len(legs) > 0 {
		start := strings.ToUpper(legs[0].ArrivalDate.Format("02 Jan 2006"))
		end := strings.ToUpper(legs[len(legs)-1].DepartureDate.Format("02 Jan 2006"))
		dest := strings.ToUpper(legs[len(legs)-1].Destination)
		doc.Font("B", 11)
		doc.FillColor(220, 220, 220)
		doc.FillCell(80, 7, fmt.Sprintf("%s   %s", start, end), "1", 0, "C")
		doc.FillCell(0, 7, fmt.Sprintf("TRIP TO %s", dest), "1", 1, "C")
	}
	doc.Ln(5)

	pnr, airlineCode := "N/A", "TVK"
	if len(legs) > 0 {
		pnr = orNA(legs[0].PNR)
		if a := legs[0].Airline; a != "" {
			airlineCode = strings.ToUpper(a)
			if len(airlineCode) > 3 {
				airlineCode = airlineCode[:3]
			}
		}
	}

	doc.Font("", 9)
	doc.Cell(50, 5, "PREPARED FOR", "", 1, "L")
	doc.Font("B", 12)
	doc.Cell(50, 6, passenger, "", 1, "L")
	doc.Ln(3)
	doc.Font("", 9)
	doc.Cell(60, 5, "RESERVATION CODE", "", 0, "L")
	doc.Cell(60, 5, "AIRLINE RESERVATION CODE", "", 1, "L")
	doc.Font("B", 10)
	doc.Cell(60, 6, pnr, "", 0, "L")
	doc.Cell(60, 6, fmt.Sprintf("%s (%s)", pnr, airlineCode), "", 1, "L")
	doc.Separator(2, 2, 180)

	for i, leg := range legs {
		t.renderLeg(doc, leg, i == 0, passenger, rnd)
	}

	return doc.Output()
}

func (t *ItineraryPDF) renderLeg(doc *layout.Doc, leg entity.TripLeg, first bool, passenger string, rnd *rand.Rand) {
	airline := leg.Airline
	if airline == "" {
		airline = defaultAirline
	}
	arrival := leg.ArrivalDate.Time
	nextDay := arrival.Add(24 * time.Hour)

	doc.Font("B", 10)
	doc.Cell(0, 7, fmt.Sprintf("> DEPARTURE: %s  >  ARRIVAL: %s",
		strings.ToUpper(arrival.Format("Monday 02 Jan")),
		strings.ToUpper(nextDay.Format("Monday 02 Jan"))), "", 1, "")
	doc.Font("", 8)
	doc.Cell(0, 4, "Please verify flight times prior to departure", "", 1, "")
	doc.Ln(2)

	yBeforeLeg := doc.Y()

	// Column 1: airline, flight number, duration, class, status.
	doc.Font("B", 12)
	doc.Cell(45, 6, airline, "", 1, "L")
	doc.Font("B", 14)
	doc.Cell(45, 8, orNA(leg.FlightNo), "", 1, "L")
	doc.SetY(doc.Y() + 5)
	doc.Font("", 9)
	doc.Cell(45, 5, fmt.Sprintf("Duration:\n%dhr(s) %dmin(s)", 7+rnd.Intn(6), rnd.Intn(60)), "", 1, "L")
	doc.Cell(45, 5, "Class: Economy", "", 1, "L")
	doc.Cell(45, 5, "Status: Confirmed", "", 1, "L")
	yAfterCol1 := doc.Y()

	// Column 2: route codes and the boxed departure/arrival times.
	doc.SetY(yBeforeLeg)
	doc.SetX(55)
	originCode := "XXX"
	if !first {
		originCode = codeFor(leg.Origin, "YYY")
	}
	destCode := codeFor(leg.Destination, "ZZZ")
	doc.Font("B", 16)
	doc.Cell(50, 8, originCode, "", 0, "L")
	doc.Cell(10, 8, ">", "", 0, "C")
	doc.Cell(50, 8, destCode, "", 1, "L")
	doc.SetX(55)
	doc.Font("", 9)
	doc.Cell(60, 5, leg.Origin, "", 0, "L")
	doc.Cell(60, 5, leg.Destination, "", 1, "L")
	doc.SetX(55)
	doc.Rect(doc.X(), doc.Y()+2, 90, 18)
	doc.Ln(3)
	doc.SetX(57)
	doc.Cell(45, 5, "Departing At:", "", 0, "L")
	doc.Cell(45, 5, "Arriving At:", "", 1, "L")
	doc.SetX(57)
	doc.Font("B", 10)
	doc.Cell(45, 5, orNA(leg.DepTime), "", 0, "L")
	doc.Cell(45, 5, orNA(leg.ArrTime), "", 1, "L")
	doc.SetX(57)
	doc.Font("", 9)
	doc.Cell(45, 5, fmt.Sprintf("(%s)", arrival.Format("Mon, 02 Jan")), "", 0, "L")
	doc.Cell(45, 5, fmt.Sprintf("(%s)", nextDay.Format("Mon, 02 Jan")), "", 1, "L")

	// Column 3: aircraft.
	doc.SetY(yBeforeLeg)
	doc.SetX(150)
	doc.Font("", 9)
	doc.Cell(0, 5, "Aircraft:", "", 1, "L")
	doc.SetX(150)
	doc.Font("B", 9)
	doc.Cell(0, 5, fmt.Sprintf("BOEING %s", aircraftTypes[rnd.Intn(len(aircraftTypes))]), "", 1, "L")

	bottom := doc.Y() + 10
	if yAfterCol1 > bottom {
		bottom = yAfterCol1
	}
	doc.SetY(bottom)
	doc.FillColor(240, 240, 240)
	doc.Font("", 9)
	doc.FillCell(95, 7, fmt.Sprintf("Passenger Name:  >> %s", passenger), "T", 0, "L")
	doc.FillCell(95, 7, "Seats:  Check-In Required", "T", 1, "L")
	doc.Separator(2, 2, 180)
}

func codeFor(country, fallback string) string {
	if code, ok := airportCodes[country]; ok {
		return code
	}
	return fallback
}
