package usecase

import (
	"math/rand"

	"traveldocs-service/internal/domain/entity"
)

// DocumentRenderer renders one (document kind, output format) pair. A
// renderer is a pure function of the normalized record: it must only
// read the record and return the document bytes. Decorative randomness
// (seats, aircraft) comes from the injected source.
type DocumentRenderer interface {
	// Target identifies the kind/format pair this renderer produces.
	Target() entity.RenderTarget

	// Render produces the document bytes for the record.
	Render(record *entity.NormalizedRecord, rnd *rand.Rand) ([]byte, error)
}

// RendererRegistry resolves renderers by target
type RendererRegistry interface {
	// Register registers a renderer for its target
	Register(renderer DocumentRenderer)

	// Get returns the renderer for a target, or nil if none is registered
	Get(target entity.RenderTarget) DocumentRenderer
}
