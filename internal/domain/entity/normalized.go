package entity

// NormalizedRecord is the read-only view of a submission consumed by the
// document renderers: legs sorted and filtered, derived fields computed.
// Renderers must never mutate it.
type NormalizedRecord struct {
	SubmissionID string
	// TripID is the short display id: first segment of the submission
	// uuid, uppercased.
	TripID     string
	Applicant  Applicant
	FlightCost float64

	// Legs are filtered to non-empty destinations and sorted by arrival
	// date ascending (stable; input order breaks ties). Origin is filled.
	Legs []TripLeg
	// Guests are filtered to non-empty names.
	Guests []Guest
	Stays  []HotelStay

	// HotelNames is the human-readable joined list of selected hotels.
	HotelNames string

	// CoverLetter holds the assembled narrative text; set only when a
	// cover letter document was requested.
	CoverLetter string
}

// Travellers returns all passenger names, applicant first. Length is
// always at least one.
func (r *NormalizedRecord) Travellers() []string {
	names := make([]string, 0, 1+len(r.Guests))
	names = append(names, r.Applicant.Name)
	for _, g := range r.Guests {
		names = append(names, g.Name)
	}
	return names
}

// FareBreakdown computes the flight fare: base = per-person cost x
// traveller count, tax = 18% of base, total = base + tax.
func (r *NormalizedRecord) FareBreakdown() (base, tax, total float64) {
	base = r.FlightCost * float64(len(r.Travellers()))
	tax = base * 0.18
	total = base + tax
	return base, tax, total
}
