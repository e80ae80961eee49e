package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/domain/repository"
	"traveldocs-service/pkg/logger"
	"traveldocs-service/pkg/metrics"
)

// ErrValidation marks a submission rejected before any side effects ran.
var ErrValidation = errors.New("invalid submission")

// DocumentGenerator orchestrates one submission end to end: validate,
// archive, normalize, render each requested target, upload, record, and
// optionally mail the links.
type DocumentGenerator struct {
	registry    RendererRegistry
	storageRepo repository.StorageRepository
	recordRepo  repository.DocumentRecordRepository
	archiveRepo repository.SubmissionArchiveRepository
	mailRepo    repository.MailRepository
	assembler   *CoverLetterAssembler
	logger      logger.Logger
	metrics     *metrics.Metrics
	timeout     time.Duration
	newRand     func() *rand.Rand
}

// NewDocumentGenerator creates a new document generator. archiveRepo and
// mailRepo may be nil; those steps are then skipped.
func NewDocumentGenerator(
	registry RendererRegistry,
	storageRepo repository.StorageRepository,
	recordRepo repository.DocumentRecordRepository,
	archiveRepo repository.SubmissionArchiveRepository,
	mailRepo repository.MailRepository,
	assembler *CoverLetterAssembler,
	logger logger.Logger,
	m *metrics.Metrics,
	timeout time.Duration,
) *DocumentGenerator {
	return &DocumentGenerator{
		registry:    registry,
		storageRepo: storageRepo,
		recordRepo:  recordRepo,
		archiveRepo: archiveRepo,
		mailRepo:    mailRepo,
		assembler:   assembler,
		logger:      logger,
		metrics:     m,
		timeout:     timeout,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// SetRandFactory overrides the decorative randomness source. Tests use
// this to make seats and aircraft assignments reproducible.
func (g *DocumentGenerator) SetRandFactory(f func() *rand.Rand) {
	g.newRand = f
}

// Process runs the full generation pipeline for one submission. It
// returns the persisted record and a map of URL key to error message
// for any targets that failed. One failing target never aborts the
// others; only a wholesale failure (validation, no renderable targets,
// record insert) returns a non-nil error.
func (g *DocumentGenerator) Process(ctx context.Context, sub *entity.Submission) (*entity.DocumentRecord, map[string]string, error) {
	start := time.Now()
	defer func() {
		g.metrics.SubmissionTime.Observe(time.Since(start).Seconds())
	}()

	if err := validate(sub); err != nil {
		g.metrics.ErrorsCount.WithLabelValues("validate").Inc()
		return nil, nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	g.logger.Info("Processing submission", "submissionID", sub.ID, "targets", len(sub.Targets))

	if g.archiveRepo != nil {
		if err := g.archiveRepo.Save(ctx, sub); err != nil {
			g.metrics.ErrorsCount.WithLabelValues("archive").Inc()
			g.logger.Warn("Failed to archive submission", "submissionID", sub.ID, "error", err)
		}
	}

	record := Normalize(sub)
	if wantsCoverLetter(sub.Targets) {
		g.metrics.CompletionCalls.Inc()
		record.CoverLetter = g.assembler.Assemble(ctx, record)
	}

	rnd := g.newRand()
	urls := make(map[string]string)
	failures := make(map[string]string)

	for _, target := range sub.Targets {
		url, err := g.generateOne(ctx, target, record, rnd)
		if err != nil {
			g.logger.Error("Failed to generate document", "submissionID", sub.ID, "kind", target.Kind, "format", target.Format, "error", err)
			failures[target.URLKey()] = err.Error()
			continue
		}
		urls[target.URLKey()] = url
	}

	if len(urls) == 0 {
		return nil, failures, fmt.Errorf("no documents generated for submission %s", sub.ID)
	}

	docRecord := buildRecord(sub, record, urls)
	if err := g.recordRepo.Insert(ctx, docRecord); err != nil {
		g.metrics.ErrorsCount.WithLabelValues("record_insert").Inc()
		return nil, failures, fmt.Errorf("failed to record generation for %s: %w", sub.ID, err)
	}

	g.metrics.SubmissionsProcessed.Inc()

	if g.mailRepo != nil && sub.Applicant.Email != "" {
		if err := g.mailRepo.SendDocumentLinks(ctx, sub.Applicant.Email, docRecord); err != nil {
			g.metrics.ErrorsCount.WithLabelValues("mail").Inc()
			g.logger.Warn("Failed to mail document links", "submissionID", sub.ID, "error", err)
		}
	}

	g.logger.Info("Submission processed", "submissionID", sub.ID, "documents", len(urls), "failures", len(failures))
	return docRecord, failures, nil
}

func (g *DocumentGenerator) generateOne(ctx context.Context, target entity.RenderTarget, record *entity.NormalizedRecord, rnd *rand.Rand) (string, error) {
	renderer := g.registry.Get(target)
	if renderer == nil {
		g.metrics.ErrorsCount.WithLabelValues("render").Inc()
		return "", fmt.Errorf("no renderer for %s/%s", target.Kind, target.Format)
	}

	renderStart := time.Now()
	data, err := renderer.Render(record, rnd)
	g.metrics.RenderTime.Observe(time.Since(renderStart).Seconds())
	if err != nil {
		g.metrics.ErrorsCount.WithLabelValues("render").Inc()
		return "", fmt.Errorf("rendering %s/%s: %w", target.Kind, target.Format, err)
	}
	g.metrics.DocumentsRendered.WithLabelValues(string(target.Kind), string(target.Format)).Inc()

	url, err := g.storageRepo.Upload(ctx, target.ObjectPath(record.SubmissionID), data, target.Format.ContentType())
	if err != nil {
		g.metrics.ErrorsCount.WithLabelValues("upload").Inc()
		return "", fmt.Errorf("uploading %s/%s: %w", target.Kind, target.Format, err)
	}
	g.metrics.ArtifactsUploaded.Inc()
	return url, nil
}

func validate(sub *entity.Submission) error {
	if strings.TrimSpace(sub.Applicant.Name) == "" {
		return fmt.Errorf("%w: passenger name is required", ErrValidation)
	}
	if strings.TrimSpace(sub.Applicant.Hometown) == "" {
		return fmt.Errorf("%w: hometown is required", ErrValidation)
	}
	if sub.Applicant.Age < 1 {
		return fmt.Errorf("%w: applicant age must be positive", ErrValidation)
	}
	if len(sub.Targets) == 0 {
		return fmt.Errorf("%w: at least one document must be requested", ErrValidation)
	}
	for _, leg := range sub.Legs {
		if strings.TrimSpace(leg.Destination) != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: at least one trip with a destination is required", ErrValidation)
}

func wantsCoverLetter(targets []entity.RenderTarget) bool {
	for _, t := range targets {
		if t.Kind == entity.KindCoverLetter {
			return true
		}
	}
	return false
}

func buildRecord(sub *entity.Submission, record *entity.NormalizedRecord, urls map[string]string) *entity.DocumentRecord {
	return &entity.DocumentRecord{
		ID:             sub.ID,
		PassengerName:  sub.Applicant.Name,
		Hometown:       sub.Applicant.Hometown,
		Age:            sub.Applicant.Age,
		Gender:         sub.Applicant.Gender,
		JobTitle:       sub.Applicant.JobTitle,
		CompanyName:    sub.Applicant.CompanyName,
		JoiningDate:    sub.Applicant.JoiningDate,
		PassportNumber: sub.Applicant.PassportNumber,
		PhoneNumber:    sub.Applicant.PhoneNumber,
		FlightCost:     sub.FlightCost,
		Trips:          record.Legs,
		Guests:         record.Guests,
		SelectedHotels: record.HotelNames,
		Targets:        sub.Targets,
		DocumentURLs:   urls,
		CreatedAt:      time.Now().UTC(),
	}
}
