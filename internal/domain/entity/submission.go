package entity

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date without a time component, serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate creates a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON parses a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON formats the date as YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// DaysUntil returns the number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

// TripLeg is one segment of a multi-destination trip. Legs are immutable
// once handed to a renderer; Origin is filled in during normalization.
type TripLeg struct {
	Destination   string `json:"country"`
	ArrivalDate   Date   `json:"arrival_date"`
	DepartureDate Date   `json:"departure_date"`
	Airline       string `json:"airline,omitempty"`
	PNR           string `json:"pnr,omitempty"`
	FlightNo      string `json:"flight_no,omitempty"`
	TicketNo      string `json:"ticket_no,omitempty"`
	DepTime       string `json:"dep_time,omitempty"`
	ArrTime       string `json:"arr_time,omitempty"`

	// Origin is derived: the applicant's hometown for the first leg,
	// the previous leg's destination otherwise.
	Origin string `json:"origin,omitempty"`
}

// Guest is an accompanying traveller.
type Guest struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender,omitempty"`
}

// Applicant is the primary passenger plus the employment and passport
// details used by the cover letter.
type Applicant struct {
	Name           string `json:"passenger_name"`
	Hometown       string `json:"hometown"`
	Age            int    `json:"age"`
	Gender         string `json:"gender,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	JoiningDate    Date   `json:"joining_date,omitempty"`
	PassportNumber string `json:"passport_number,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	Email          string `json:"email,omitempty"`
}

// HotelStay pairs a trip leg with a selected hotel offering.
type HotelStay struct {
	Leg   TripLeg `json:"trip"`
	Hotel Hotel   `json:"hotel"`
}

// Nights returns the stay length in nights, never less than one even for
// same-day or inverted date ranges.
func (s HotelStay) Nights() int {
	n := s.Leg.ArrivalDate.DaysUntil(s.Leg.DepartureDate)
	if n < 1 {
		return 1
	}
	return n
}

// Cost is the total stay cost: nightly rate x nights x guests.
func (s HotelStay) Cost(guests int) float64 {
	return s.Hotel.Rate * float64(s.Nights()) * float64(guests)
}

// Submission is one travel form submission as received from the client.
type Submission struct {
	ID         string         `json:"uuid"`
	Applicant  Applicant      `json:"applicant"`
	FlightCost float64        `json:"flight_cost"`
	Legs       []TripLeg      `json:"trips"`
	Guests     []Guest        `json:"family_members"`
	Stays      []HotelStay    `json:"selected_hotels_per_trip,omitempty"`
	Targets    []RenderTarget `json:"documents"`
}
