package entity

import (
	"fmt"
	"time"
)

// DocumentKind identifies one generated document type.
type DocumentKind string

const (
	KindFlightTicket DocumentKind = "flight_ticket"
	KindHotelBooking DocumentKind = "hotel_booking"
	KindItinerary    DocumentKind = "itinerary"
	KindCoverLetter  DocumentKind = "cover_letter"
)

// OutputFormat identifies the artifact encoding.
type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatHTML OutputFormat = "html"
)

// ContentType returns the MIME type for the format.
func (f OutputFormat) ContentType() string {
	if f == FormatHTML {
		return "text/html"
	}
	return "application/pdf"
}

// RenderTarget selects one (kind, format) pair for generation.
type RenderTarget struct {
	Kind   DocumentKind `json:"kind"`
	Format OutputFormat `json:"format"`
}

// URLKey is the column-style key the stored URL is recorded under,
// e.g. "pdf_flight_ticket_url".
func (t RenderTarget) URLKey() string {
	return fmt.Sprintf("%s_%s_url", t.Format, t.Kind)
}

// ObjectPath is the storage path for the artifact, keyed by submission id.
func (t RenderTarget) ObjectPath(submissionID string) string {
	return fmt.Sprintf("%s/%s.%s", submissionID, t.Kind, t.Format)
}

// Artifact is one rendered document ready for upload.
type Artifact struct {
	Target RenderTarget
	Data   []byte
}

// DocumentRecord is the row persisted after generation. Insert-only;
// read back only for the history listing.
type DocumentRecord struct {
	ID             string            `json:"uuid"`
	PassengerName  string            `json:"passenger_name"`
	Hometown       string            `json:"hometown"`
	Age            int               `json:"age"`
	Gender         string            `json:"gender,omitempty"`
	JobTitle       string            `json:"job_title,omitempty"`
	CompanyName    string            `json:"company_name,omitempty"`
	JoiningDate    Date              `json:"joining_date,omitempty"`
	PassportNumber string            `json:"passport_number,omitempty"`
	PhoneNumber    string            `json:"phone_number,omitempty"`
	FlightCost     float64           `json:"flight_cost"`
	Trips          []TripLeg         `json:"trips"`
	Guests         []Guest           `json:"family_members"`
	SelectedHotels string            `json:"selected_hotel,omitempty"`
	Targets        []RenderTarget    `json:"documents"`
	DocumentURLs   map[string]string `json:"document_urls"`
	CreatedAt      time.Time         `json:"created_at"`
}
