package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"math/rand"
	"strings"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/pkg/ticket"
)

// Shared ocean blue page frame for all HTML documents.
const htmlBase = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 0; background: #eef6fb; color: #10344c; }
  .page { max-width: 760px; margin: 24px auto; background: #ffffff; border: 1px solid #bcd9ec; border-radius: 8px; overflow: hidden; }
  .banner { background: #0b5e8e; color: #ffffff; padding: 18px 28px; }
  .banner h1 { margin: 0; font-size: 22px; }
  .banner .sub { margin-top: 4px; font-size: 13px; color: #bfe2f5; }
  .content { padding: 20px 28px 28px; }
  .section { border-top: 1px solid #d7e9f4; margin-top: 18px; padding-top: 14px; }
  .section h2 { font-size: 14px; letter-spacing: 1px; text-transform: uppercase; color: #0b5e8e; margin: 0 0 10px; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th { text-align: left; background: #e3f1f9; color: #0b5e8e; padding: 7px 10px; }
  td { padding: 7px 10px; border-bottom: 1px solid #e8f2f9; }
  .amount { text-align: right; }
  .total { font-weight: bold; border-top: 2px solid #0b5e8e; }
  .muted { color: #5e7f94; font-size: 12px; }
  .route { font-size: 19px; font-weight: bold; margin: 6px 0; }
  .letter { white-space: pre-wrap; font-size: 14px; line-height: 1.55; }
  .footer { background: #e3f1f9; color: #376a88; font-size: 11px; text-align: center; padding: 12px; }
</style>
</head>
<body>
<div class="page">
  <div class="banner"><h1>{{.Title}}</h1><div class="sub">{{.Subtitle}}</div></div>
  <div class="content">{{.Body}}</div>
  <div class="footer">This is a dummy document generated for demonstration purposes. {{.FooterNote}}</div>
</div>
</body>
</html>`

var basePage = template.Must(template.New("base").Parse(htmlBase))

type pageData struct {
	Title      string
	Subtitle   string
	Body       template.HTML
	FooterNote string
}

func renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := basePage.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering html page: %w", err)
	}
	return buf.Bytes(), nil
}

// FlightTicketHTML renders the e-ticket confirmation as a styled web page.
type FlightTicketHTML struct{}

// NewFlightTicketHTML creates a new flight ticket HTML renderer
func NewFlightTicketHTML() *FlightTicketHTML {
	return &FlightTicketHTML{}
}

func (t *FlightTicketHTML) Target() entity.RenderTarget {
	return entity.RenderTarget{Kind: entity.KindFlightTicket, Format: entity.FormatHTML}
}

var flightBody = template.Must(template.New("flight").Parse(`
{{if .Legs}}<div class="route">{{.Origin}} to {{.FinalDestination}}</div>
<div class="muted">Primary PNR: {{.PrimaryPNR}}</div>{{end}}
<div class="section"><h2>Flight Segments</h2>
<table><tr><th>Airline</th><th>Flight</th><th>From</th><th>To</th><th>Date</th><th>Dep</th><th>Arr</th><th>Seats</th></tr>
{{range .Legs}}<tr><td>{{.Airline}}</td><td>{{.FlightNo}}</td><td>{{.Origin}}</td><td>{{.Destination}}</td><td>{{.Date}}</td><td>{{.DepTime}}</td><td>{{.ArrTime}}</td><td>{{.Seats}}</td></tr>{{end}}
</table></div>
<div class="section"><h2>Travellers</h2>
<table><tr><th>Name</th><th>E-Ticket No.</th></tr>
{{range .Travellers}}<tr><td>{{.Name}}</td><td>{{.TicketNo}}</td></tr>{{end}}
</table></div>
<div class="section"><h2>Fare Breakup</h2>
<table>
<tr><td>Base Fare</td><td class="amount">$ {{.BaseFare}}</td></tr>
<tr><td>Taxes and Surcharges</td><td class="amount">$ {{.Taxes}}</td></tr>
<tr class="total"><td>Total Fare (USD)</td><td class="amount">$ {{.Total}}</td></tr>
</table></div>`))

type flightLegView struct {
	Airline, FlightNo, Origin, Destination, Date, DepTime, ArrTime, Seats string
}

type travellerView struct {
	Name, TicketNo string
}

func (t *FlightTicketHTML) Render(record *entity.NormalizedRecord, rnd *rand.Rand) ([]byte, error) {
	travellers := record.Travellers()

	legs := make([]flightLegView, 0, len(record.Legs))
	for _, leg := range record.Legs {
		seats := make([]string, len(travellers))
		for i := range seats {
			seats[i] = fmt.Sprintf("%d%c", 10+rnd.Intn(31), 'A'+rune(rnd.Intn(6)))
		}
		airline := leg.Airline
		if airline == "" {
			airline = defaultAirline
		}
		legs = append(legs, flightLegView{
			Airline:     airline,
			FlightNo:    orNA(leg.FlightNo),
			Origin:      leg.Origin,
			Destination: leg.Destination,
			Date:        leg.ArrivalDate.Format("Mon, 02 Jan 2006"),
			DepTime:     orNA(leg.DepTime),
			ArrTime:     orNA(leg.ArrTime),
			Seats:       strings.Join(seats, ", "),
		})
	}

	rows := make([]travellerView, 0, len(travellers))
	for i, name := range travellers {
		ticketNo := ""
		if len(record.Legs) > 0 {
			ticketNo = record.Legs[0].TicketNo
		}
		if ticketNo == "" {
			ticketNo = ticket.Number(rnd, "", i)
		}
		rows = append(rows, travellerView{Name: strings.ToUpper(name), TicketNo: ticketNo})
	}

	base, taxes, total := record.FareBreakdown()
	primaryPNR := "N/A"
	finalDest := ""
	if len(record.Legs) > 0 {
		primaryPNR = orNA(record.Legs[0].PNR)
		finalDest = record.Legs[len(record.Legs)-1].Destination
	}

	var body bytes.Buffer
	err := flightBody.Execute(&body, map[string]interface{}{
		"Legs":             legs,
		"Origin":           record.Applicant.Hometown,
		"FinalDestination": finalDest,
		"PrimaryPNR":       primaryPNR,
		"Travellers":       rows,
		"BaseFare":         formatAmount(base),
		"Taxes":            formatAmount(taxes),
		"Total":            formatAmount(total),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering flight ticket html: %w", err)
	}

	return renderPage(pageData{
		Title:      "Ticket Confirmation",
		Subtitle:   fmt.Sprintf("Trip ID: %s", record.TripID),
		Body:       template.HTML(body.String()),
		FooterNote: supportLine,
	})
}

// HotelBookingHTML renders the booking confirmation as a styled web page.
type HotelBookingHTML struct{}

// NewHotelBookingHTML creates a new hotel booking HTML renderer
func NewHotelBookingHTML() *HotelBookingHTML {
	return &HotelBookingHTML{}
}

func (t *HotelBookingHTML) Target() entity.RenderTarget {
	return entity.RenderTarget{Kind: entity.KindHotelBooking, Format: entity.FormatHTML}
}

var hotelBody = template.Must(template.New("hotel").Parse(`
{{if not .Stays}}<p>No hotel stay was selected for this itinerary.</p>{{else}}
{{range .Stays}}<div class="section"><h2>Stay {{.Index}}: {{.Name}}</h2>
<div class="muted">{{.Location}}</div>
<table>
<tr><th>Check-in</th><th>Check-out</th><th>Nights</th><th>Guests</th></tr>
<tr><td>{{.CheckIn}}</td><td>{{.CheckOut}}</td><td>{{.Nights}}</td><td>{{.Guests}}</td></tr>
</table>
<table>
<tr><td>Nightly Rate (per guest)</td><td class="amount">EUR {{.Rate}}</td></tr>
<tr class="total"><td>Total Stay Cost</td><td class="amount">EUR {{.Total}}</td></tr>
</table></div>{{end}}{{end}}`))

type stayView struct {
	Index             int
	Name, Location    string
	CheckIn, CheckOut string
	Nights, Guests    int
	Rate, Total       string
}

func (t *HotelBookingHTML) Render(record *entity.NormalizedRecord, _ *rand.Rand) ([]byte, error) {
	guests := len(record.Travellers())

	stays := make([]stayView, 0, len(record.Stays))
	for i, stay := range record.Stays {
		stays = append(stays, stayView{
			Index:    i + 1,
			Name:     stay.Hotel.Name,
			Location: fmt.Sprintf("%s, %s", stay.Hotel.City, stay.Hotel.Country),
			CheckIn:  stay.Leg.ArrivalDate.Format("Mon, 02 Jan 2006"),
			CheckOut: stay.Leg.DepartureDate.Format("Mon, 02 Jan 2006"),
			Nights:   stay.Nights(),
			Guests:   guests,
			Rate:     formatAmount(stay.Hotel.Rate),
			Total:    formatAmount(stay.Cost(guests)),
		})
	}

	var body bytes.Buffer
	if err := hotelBody.Execute(&body, map[string]interface{}{"Stays": stays}); err != nil {
		return nil, fmt.Errorf("rendering hotel booking html: %w", err)
	}

	return renderPage(pageData{
		Title:      "Hotel Booking Confirmation",
		Subtitle:   fmt.Sprintf("Booking Itinerary ID: %s-HTL", record.TripID),
		Body:       template.HTML(body.String()),
		FooterNote: "Manage your booking at support.travaky.com.",
	})
}

// ItineraryHTML renders the day-wise travel plan as a styled web page.
type ItineraryHTML struct{}

// NewItineraryHTML creates a new itinerary HTML renderer
func NewItineraryHTML() *ItineraryHTML {
	return &ItineraryHTML{}
}

func (t *ItineraryHTML) Target() entity.RenderTarget {
	return entity.RenderTarget{Kind: entity.KindItinerary, Format: entity.FormatHTML}
}

var itineraryBody = template.Must(template.New("itinerary").Parse(`
<div class="muted">PREPARED FOR</div>
<div class="route">{{.Passenger}}</div>
<div class="muted">Reservation Code: {{.PNR}} ({{.AirlineCode}})</div>
{{range .Legs}}<div class="section"><h2>Departure: {{.DepartureDay}}</h2>
<div class="route">{{.OriginCode}} &gt; {{.DestCode}}</div>
<div class="muted">{{.Origin}} to {{.Destination}}</div>
<table>
<tr><th>Airline</th><th>Flight</th><th>Departing At</th><th>Arriving At</th><th>Aircraft</th><th>Class</th><th>Status</th></tr>
<tr><td>{{.Airline}}</td><td>{{.FlightNo}}</td><td>{{.DepTime}}</td><td>{{.ArrTime}}</td><td>BOEING {{.Aircraft}}</td><td>Economy</td><td>Confirmed</td></tr>
</table></div>{{end}}`))

type itineraryLegView struct {
	DepartureDay, OriginCode, DestCode, Origin, Destination string
	Airline, FlightNo, DepTime, ArrTime, Aircraft           string
}

func (t *ItineraryHTML) Render(record *entity.NormalizedRecord, rnd *rand.Rand) ([]byte, error) {
	legs := make([]itineraryLegView, 0, len(record.Legs))
	for i, leg := range record.Legs {
		airline := leg.Airline
		if airline == "" {
			airline = defaultAirline
		}
		originCode := "XXX"
		if i > 0 {
			originCode = codeFor(leg.Origin, "YYY")
		}
		legs = append(legs, itineraryLegView{
			DepartureDay: strings.ToUpper(leg.ArrivalDate.Format("Monday 02 Jan")),
			OriginCode:   originCode,
			DestCode:     codeFor(leg.Destination, "ZZZ"),
			Origin:       leg.Origin,
			Destination:  leg.Destination,
			Airline:      airline,
			FlightNo:     orNA(leg.FlightNo),
			DepTime:      orNA(leg.DepTime),
			ArrTime:      orNA(leg.ArrTime),
			Aircraft:     aircraftTypes[rnd.Intn(len(aircraftTypes))],
		})
	}

	subtitle := ""
	pnr, airlineCode := "N/A", "TVK"
	if len(record.Legs) > 0 {
		pnr = orNA(record.Legs[0].PNR)
		if a := record.Legs[0].Airline; a != "" {
			airlineCode = strings.ToUpper(a)
			if len(airlineCode) > 3 {
				airlineCode = airlineCode[:3]
			}
		}
		last := record.Legs[len(record.Legs)-1]
		subtitle = fmt.Sprintf("%s to %s | Trip to %s",
			strings.ToUpper(record.Legs[0].ArrivalDate.Format("02 Jan 2006")),
			strings.ToUpper(last.DepartureDate.Format("02 Jan 2006")),
			strings.ToUpper(last.Destination))
	}

	var body bytes.Buffer
	err := itineraryBody.Execute(&body, map[string]interface{}{
		"Passenger":   strings.ToUpper(record.Applicant.Name),
		"PNR":         pnr,
		"AirlineCode": airlineCode,
		"Legs":        legs,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering itinerary html: %w", err)
	}

	return renderPage(pageData{
		Title:      "Travel Itinerary",
		Subtitle:   subtitle,
		Body:       template.HTML(body.String()),
		FooterNote: "Please verify flight times prior to departure.",
	})
}

// CoverLetterHTML renders the assembled visa cover letter as a styled web page.
type CoverLetterHTML struct{}

// NewCoverLetterHTML creates a new cover letter HTML renderer
func NewCoverLetterHTML() *CoverLetterHTML {
	return &CoverLetterHTML{}
}

func (t *CoverLetterHTML) Target() entity.RenderTarget {
	return entity.RenderTarget{Kind: entity.KindCoverLetter, Format: entity.FormatHTML}
}

var coverLetterBody = template.Must(template.New("cover").Parse(`<div class="letter">{{.Text}}</div>`))

func (t *CoverLetterHTML) Render(record *entity.NormalizedRecord, _ *rand.Rand) ([]byte, error) {
	var body bytes.Buffer
	if err := coverLetterBody.Execute(&body, map[string]interface{}{"Text": record.CoverLetter}); err != nil {
		return nil, fmt.Errorf("rendering cover letter html: %w", err)
	}

	return renderPage(pageData{
		Title:      "Visa Cover Letter",
		Subtitle:   record.Applicant.Name,
		Body:       template.HTML(body.String()),
		FooterNote: "Submitted in support of a short-term tourist visa application.",
	})
}
