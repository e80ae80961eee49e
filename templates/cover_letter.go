package templates

import (
	"math/rand"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/pkg/layout"
)

// CoverLetterPDF renders the assembled visa cover letter text as a
// plain wrapped document.
type CoverLetterPDF struct{}

// NewCoverLetterPDF creates a new cover letter PDF renderer
func NewCoverLetterPDF() *CoverLetterPDF {
	return &CoverLetterPDF{}
}

// Target identifies the kind/format pair this renderer produces
func (t *CoverLetterPDF) Target() entity.RenderTarget {
	return entity.RenderTarget{Kind: entity.KindCoverLetter, Format: entity.FormatPDF}
}

// Render produces the cover letter PDF
func (t *CoverLetterPDF) Render(record *entity.NormalizedRecord, _ *rand.Rand) ([]byte, error) {
	doc := layout.NewDoc()
	doc.Font("", 12)
	doc.MultiCell(0, 7, record.CoverLetter, "", "")
	return doc.Output()
}
