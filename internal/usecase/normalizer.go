package usecase

import (
	"sort"
	"strings"

	"traveldocs-service/internal/domain/entity"
)

// Normalize builds the read-only view of a submission the renderers
// consume: legs filtered to non-empty destinations and stably sorted by
// arrival date (input order breaks ties), guests filtered to non-empty
// names, per-leg origins derived. The input submission is never
// mutated, and normalizing the same submission twice yields the same
// record.
func Normalize(sub *entity.Submission) *entity.NormalizedRecord {
	legs := make([]entity.TripLeg, 0, len(sub.Legs))
	for _, leg := range sub.Legs {
		if strings.TrimSpace(leg.Destination) == "" {
			continue
		}
		legs = append(legs, leg)
	}
	sort.SliceStable(legs, func(i, j int) bool {
		return legs[i].ArrivalDate.Before(legs[j].ArrivalDate.Time)
	})
	for i := range legs {
		if i == 0 {
			legs[i].Origin = sub.Applicant.Hometown
		} else {
			legs[i].Origin = legs[i-1].Destination
		}
	}

	guests := make([]entity.Guest, 0, len(sub.Guests))
	for _, g := range sub.Guests {
		if strings.TrimSpace(g.Name) == "" {
			continue
		}
		guests = append(guests, g)
	}

	stays := make([]entity.HotelStay, len(sub.Stays))
	copy(stays, sub.Stays)

	names := make([]string, 0, len(stays))
	for _, stay := range stays {
		names = append(names, stay.Hotel.Name)
	}

	return &entity.NormalizedRecord{
		SubmissionID: sub.ID,
		TripID:       shortTripID(sub.ID),
		Applicant:    sub.Applicant,
		FlightCost:   sub.FlightCost,
		Legs:         legs,
		Guests:       guests,
		Stays:        stays,
		HotelNames:   strings.Join(names, ", "),
	}
}

func shortTripID(id string) string {
	if i := strings.Index(id, "-"); i > 0 {
		id = id[:i]
	}
	return strings.ToUpper(id)
}
