package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/domain/repository"
	"traveldocs-service/internal/usecase"
	"traveldocs-service/pkg/logger"
	"traveldocs-service/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("traveldocs_test")

type fakeRenderer struct {
	target entity.RenderTarget
	data   []byte
	err    error
}

func (f *fakeRenderer) Target() entity.RenderTarget { return f.target }

func (f *fakeRenderer) Render(_ *entity.NormalizedRecord, _ *rand.Rand) ([]byte, error) {
	return f.data, f.err
}

type fakeRegistry struct {
	renderers map[entity.RenderTarget]usecase.DocumentRenderer
}

func newFakeRegistry(renderers ...usecase.DocumentRenderer) *fakeRegistry {
	reg := &fakeRegistry{renderers: make(map[entity.RenderTarget]usecase.DocumentRenderer)}
	for _, r := range renderers {
		reg.Register(r)
	}
	return reg
}

func (f *fakeRegistry) Register(r usecase.DocumentRenderer) { f.renderers[r.Target()] = r }

func (f *fakeRegistry) Get(target entity.RenderTarget) usecase.DocumentRenderer {
	return f.renderers[target]
}

type fakeStorage struct {
	uploads map[string][]byte
	failOn  string
}

func (f *fakeStorage) Upload(_ context.Context, path string, data []byte, _ string) (string, error) {
	if path == f.failOn {
		return "", errors.New("storage unavailable")
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[path] = data
	return "https://storage.example/" + path, nil
}

type fakeRecordRepo struct {
	inserted *entity.DocumentRecord
	err      error
}

func (f *fakeRecordRepo) Insert(_ context.Context, record *entity.DocumentRecord) error {
	f.inserted = record
	return f.err
}

func (f *fakeRecordRepo) ListRecent(_ context.Context, _ int) ([]*entity.DocumentRecord, error) {
	return nil, nil
}

type fakeArchive struct {
	saved *entity.Submission
	err   error
}

func (f *fakeArchive) Save(_ context.Context, sub *entity.Submission) error {
	f.saved = sub
	return f.err
}

func (f *fakeArchive) FindByID(_ context.Context, _ string) (*entity.Submission, error) {
	return nil, nil
}

type fakeMail struct {
	to   string
	sent *entity.DocumentRecord
	err  error
}

func (f *fakeMail) SendDocumentLinks(_ context.Context, to string, record *entity.DocumentRecord) error {
	f.to = to
	f.sent = record
	return f.err
}

func pdfTarget(kind entity.DocumentKind) entity.RenderTarget {
	return entity.RenderTarget{Kind: kind, Format: entity.FormatPDF}
}

func newGenerator(registry usecase.RendererRegistry, storage *fakeStorage, records *fakeRecordRepo, archive *fakeArchive, mail *fakeMail) *usecase.DocumentGenerator {
	log := logger.NewNopLogger()
	assembler := usecase.NewCoverLetterAssembler(nil, log)

	var archiveRepo repository.SubmissionArchiveRepository
	if archive != nil {
		archiveRepo = archive
	}
	var mailRepo repository.MailRepository
	if mail != nil {
		mailRepo = mail
	}

	gen := usecase.NewDocumentGenerator(registry, storage, records, archiveRepo, mailRepo, assembler, log, testMetrics, 0)
	gen.SetRandFactory(func() *rand.Rand { return rand.New(rand.NewSource(1)) })
	return gen
}

func submissionWithTargets(targets ...entity.RenderTarget) *entity.Submission {
	sub := baseSubmission()
	sub.Targets = targets
	return sub
}

func TestDocumentGeneratorValidation(t *testing.T) {
	registry := newFakeRegistry(&fakeRenderer{target: pdfTarget(entity.KindItinerary), data: []byte("pdf")})

	tests := []struct {
		name   string
		mutate func(*entity.Submission)
	}{
		{"missing passenger name", func(s *entity.Submission) { s.Applicant.Name = " " }},
		{"missing hometown", func(s *entity.Submission) { s.Applicant.Hometown = "" }},
		{"non-positive age", func(s *entity.Submission) { s.Applicant.Age = 0 }},
		{"no documents requested", func(s *entity.Submission) { s.Targets = nil }},
		{"no usable trips", func(s *entity.Submission) { s.Legs = []entity.TripLeg{{Destination: "  "}} }},
	}

	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			storage := &fakeStorage{}
			archive := &fakeArchive{}
			sub := submissionWithTargets(pdfTarget(entity.KindItinerary))
			tt.mutate(sub)

			gen := newGenerator(registry, storage, &fakeRecordRepo{}, archive, nil)
			_, _, err := gen.Process(context.Background(), sub)

			assert.ErrorIs(t, err, usecase.ErrValidation)
			assert.Nil(t, archive.saved, "no side effects before validation")
			assert.Empty(t, storage.uploads)
		})
	}
}

func TestDocumentGeneratorProcess(t *testing.T) {
	t.Run("should render, upload and record all requested documents", func(t *testing.T) {
		registry := newFakeRegistry(
			&fakeRenderer{target: pdfTarget(entity.KindFlightTicket), data: []byte("ticket")},
			&fakeRenderer{target: pdfTarget(entity.KindItinerary), data: []byte("itinerary")},
		)
		storage := &fakeStorage{}
		records := &fakeRecordRepo{}
		sub := submissionWithTargets(pdfTarget(entity.KindFlightTicket), pdfTarget(entity.KindItinerary))

		gen := newGenerator(registry, storage, records, nil, nil)
		record, failures, err := gen.Process(context.Background(), sub)

		require.NoError(t, err)
		assert.Empty(t, failures)
		require.NotNil(t, records.inserted)
		assert.Len(t, record.DocumentURLs, 2)
		assert.Equal(t,
			"https://storage.example/"+sub.ID+"/flight_ticket.pdf",
			record.DocumentURLs["pdf_flight_ticket_url"])
	})

	t.Run("should isolate a failing document from the others", func(t *testing.T) {
		sub := submissionWithTargets(pdfTarget(entity.KindFlightTicket), pdfTarget(entity.KindItinerary))
		registry := newFakeRegistry(
			&fakeRenderer{target: pdfTarget(entity.KindFlightTicket), err: errors.New("bad barcode")},
			&fakeRenderer{target: pdfTarget(entity.KindItinerary), data: []byte("itinerary")},
		)
		records := &fakeRecordRepo{}

		gen := newGenerator(registry, &fakeStorage{}, records, nil, nil)
		record, failures, err := gen.Process(context.Background(), sub)

		require.NoError(t, err)
		assert.Len(t, failures, 1)
		assert.Contains(t, failures["pdf_flight_ticket_url"], "bad barcode")
		assert.Len(t, record.DocumentURLs, 1)
		assert.Contains(t, record.DocumentURLs, "pdf_itinerary_url")
	})

	t.Run("should isolate an upload failure", func(t *testing.T) {
		sub := submissionWithTargets(pdfTarget(entity.KindFlightTicket), pdfTarget(entity.KindItinerary))
		registry := newFakeRegistry(
			&fakeRenderer{target: pdfTarget(entity.KindFlightTicket), data: []byte("ticket")},
			&fakeRenderer{target: pdfTarget(entity.KindItinerary), data: []byte("itinerary")},
		)
		storage := &fakeStorage{failOn: sub.ID + "/flight_ticket.pdf"}

		gen := newGenerator(registry, storage, &fakeRecordRepo{}, nil, nil)
		record, failures, err := gen.Process(context.Background(), sub)

		require.NoError(t, err)
		assert.Len(t, failures, 1)
		assert.Len(t, record.DocumentURLs, 1)
	})

	t.Run("should fail when no document could be generated", func(t *testing.T) {
		sub := submissionWithTargets(pdfTarget(entity.KindFlightTicket))
		registry := newFakeRegistry()
		records := &fakeRecordRepo{}

		gen := newGenerator(registry, &fakeStorage{}, records, nil, nil)
		_, failures, err := gen.Process(context.Background(), sub)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, usecase.ErrValidation)
		assert.Len(t, failures, 1)
		assert.Nil(t, records.inserted)
	})

	t.Run("should continue when archiving fails", func(t *testing.T) {
		sub := submissionWithTargets(pdfTarget(entity.KindItinerary))
		registry := newFakeRegistry(&fakeRenderer{target: pdfTarget(entity.KindItinerary), data: []byte("pdf")})
		archive := &fakeArchive{err: errors.New("mongo down")}

		gen := newGenerator(registry, &fakeStorage{}, &fakeRecordRepo{}, archive, nil)
		_, failures, err := gen.Process(context.Background(), sub)

		require.NoError(t, err)
		assert.Empty(t, failures)
	})

	t.Run("should fail when the record insert fails", func(t *testing.T) {
		sub := submissionWithTargets(pdfTarget(entity.KindItinerary))
		registry := newFakeRegistry(&fakeRenderer{target: pdfTarget(entity.KindItinerary), data: []byte("pdf")})
		records := &fakeRecordRepo{err: errors.New("pg down")}

		gen := newGenerator(registry, &fakeStorage{}, records, nil, nil)
		_, _, err := gen.Process(context.Background(), sub)
		assert.Error(t, err)
	})

	t.Run("should mail the links when an address is present", func(t *testing.T) {
		sub := submissionWithTargets(pdfTarget(entity.KindItinerary))
		sub.Applicant.Email = "jane@example.com"
		registry := newFakeRegistry(&fakeRenderer{target: pdfTarget(entity.KindItinerary), data: []byte("pdf")})
		mail := &fakeMail{}

		gen := newGenerator(registry, &fakeStorage{}, &fakeRecordRepo{}, nil, mail)
		record, _, err := gen.Process(context.Background(), sub)

		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", mail.to)
		assert.Equal(t, record, mail.sent)
	})

	t.Run("should not fail the submission when mailing fails", func(t *testing.T) {
		sub := submissionWithTargets(pdfTarget(entity.KindItinerary))
		sub.Applicant.Email = "jane@example.com"
		registry := newFakeRegistry(&fakeRenderer{target: pdfTarget(entity.KindItinerary), data: []byte("pdf")})
		mail := &fakeMail{err: errors.New("smtp")}

		gen := newGenerator(registry, &fakeStorage{}, &fakeRecordRepo{}, nil, mail)
		_, _, err := gen.Process(context.Background(), sub)
		assert.NoError(t, err)
	})

	t.Run("should assemble the cover letter only when requested", func(t *testing.T) {
		var seen string
		renderer := &captureRenderer{target: pdfTarget(entity.KindCoverLetter), capture: &seen}
		registry := newFakeRegistry(renderer)
		sub := submissionWithTargets(pdfTarget(entity.KindCoverLetter))

		gen := newGenerator(registry, &fakeStorage{}, &fakeRecordRepo{}, nil, nil)
		_, _, err := gen.Process(context.Background(), sub)

		require.NoError(t, err)
		assert.Contains(t, seen, "Embassy of France")
	})
}

type captureRenderer struct {
	target  entity.RenderTarget
	capture *string
}

func (c *captureRenderer) Target() entity.RenderTarget { return c.target }

func (c *captureRenderer) Render(record *entity.NormalizedRecord, _ *rand.Rand) ([]byte, error) {
	*c.capture = record.CoverLetter
	return []byte(fmt.Sprintf("letter %d chars", len(record.CoverLetter))), nil
}
