package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/domain/repository"
	"traveldocs-service/pkg/logger"
)

const letterSkeleton = `Date: %s

To,
The Visa Officer
Embassy of %s

Subject: Tourist Visa Application - %s

Dear Sir/Madam,

I am writing to submit my application for a short-term tourist visa to visit %s from %s to %s.

This trip is purely for tourism purposes. I plan to explore a few major cities and cultural landmarks during this time. My aim is to learn more about the country's history, architecture, and way of life, while taking a short break from my professional routine.

I am currently working as a %s with %s and have been employed here since %s. My leave for this trip has already been approved, and I am financially prepared to support all travel-related expenses on my own. My travel insurance, round-trip flight bookings, hotel reservations, and detailed travel plan are included in the application.

I understand the importance of following visa regulations and assure you that I will fully comply with the terms of the visa. I have strong professional and personal ties to my home country, and I will be returning after my visit as scheduled.

Please find below the list of documents enclosed with this application:

- Completed visa application form
- Passport with required validity
- Flight and hotel bookings
- Proof of travel insurance
- Leave approval from employer
- Bank statements and ITRs
- Day-wise travel itinerary
- This covering letter

I hope you find everything in order, and I remain available for any further clarification if needed.

Thank you for considering my request.

Sincerely,
%s
Passport No.: %s
Contact No.: %s`

const promptInstructions = `You are a silent text-replacement tool. Your ONLY job is to smooth the wording of the letter below without changing its structure or facts.
DO NOT add any conversational text like "Here is the letter...".
DO NOT add any descriptions of formatting.
DO NOT add any extra placeholders like "[Signature]".
Produce ONLY the raw letter text and nothing else.

--- LETTER ---
%s`

// CoverLetterAssembler fills the fixed visa letter skeleton from a
// normalized record and delegates prose smoothing to the completion
// service. The service's output is untrusted: it is sanitized before
// use, and any failure falls back to the locally filled skeleton.
type CoverLetterAssembler struct {
	completionRepo repository.CompletionRepository
	logger         logger.Logger
	now            func() time.Time
}

// NewCoverLetterAssembler creates a new cover letter assembler. A nil
// completion repository disables smoothing entirely.
func NewCoverLetterAssembler(completionRepo repository.CompletionRepository, logger logger.Logger) *CoverLetterAssembler {
	return &CoverLetterAssembler{
		completionRepo: completionRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Assemble returns the narrative letter text for the record.
func (a *CoverLetterAssembler) Assemble(ctx context.Context, record *entity.NormalizedRecord) string {
	skeleton := a.Skeleton(record)
	if a.completionRepo == nil {
		return skeleton
	}

	prompt := fmt.Sprintf(promptInstructions, skeleton)
	text, err := a.completionRepo.Complete(ctx, prompt)
	if err != nil {
		a.logger.Warn("Completion failed, using skeleton letter", "error", err)
		return skeleton
	}

	clean := SanitizeCompletion(text)
	if clean == "" {
		a.logger.Warn("Completion produced no usable text, using skeleton letter")
		return skeleton
	}
	return clean
}

// Skeleton deterministically fills the letter template from the record.
func (a *CoverLetterAssembler) Skeleton(record *entity.NormalizedRecord) string {
	destination := "your destination"
	startDate, endDate := "[Start Date]", "[End Date]"
	if len(record.Legs) > 0 {
		destination = record.Legs[0].Destination
		startDate = record.Legs[0].ArrivalDate.Format("02 January 2006")
		endDate = record.Legs[len(record.Legs)-1].DepartureDate.Format("02 January 2006")
	}

	applicant := record.Applicant
	jobTitle := orPlaceholder(applicant.JobTitle, "[Your Job Title]")
	company := orPlaceholder(applicant.CompanyName, "[Company Name]")
	joining := "[Joining Date]"
	if !applicant.JoiningDate.IsZero() {
		joining = applicant.JoiningDate.Format("02 January 2006")
	}

	return fmt.Sprintf(letterSkeleton,
		a.now().Format("02/01/2006"),
		destination,
		applicant.Name,
		destination,
		startDate,
		endDate,
		jobTitle,
		company,
		joining,
		applicant.Name,
		orPlaceholder(applicant.PassportNumber, "[XXXXXXXXX]"),
		orPlaceholder(applicant.PhoneNumber, "[XXXXXXXXX]"),
	)
}

// SanitizeCompletion strips artifacts the completion service must not
// leak into a rendered document: code fences, template markers, leading
// commentary before the letter body, and control characters.
func SanitizeCompletion(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			continue
		}
		if strings.HasPrefix(trimmed, "--- LETTER") || strings.HasPrefix(trimmed, "--- TEMPLATE") {
			continue
		}
		lines = append(lines, stripControl(line))
	}
	out := strings.Join(lines, "\n")

	// The letter always opens with its date line; anything before it is
	// commentary from the model.
	if idx := strings.Index(out, "Date:"); idx > 0 {
		out = out[idx:]
	}
	return strings.TrimSpace(out)
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
