package router

import (
	"traveldocs-service/internal/domain/entity"
	"traveldocs-service/internal/usecase"
	"traveldocs-service/pkg/logger"
)

// RendererRegistry routes render targets to registered document renderers
type RendererRegistry struct {
	renderers map[entity.RenderTarget]usecase.DocumentRenderer
	logger    logger.Logger
}

// NewRendererRegistry creates a new renderer registry
func NewRendererRegistry(logger logger.Logger) *RendererRegistry {
	return &RendererRegistry{
		renderers: make(map[entity.RenderTarget]usecase.DocumentRenderer),
		logger:    logger,
	}
}

// Register registers a renderer for its target
func (r *RendererRegistry) Register(renderer usecase.DocumentRenderer) {
	target := renderer.Target()
	r.renderers[target] = renderer
	r.logger.Info("Registered renderer", "kind", target.Kind, "format", target.Format)
}

// Get returns the renderer for a target, or nil if none is registered
func (r *RendererRegistry) Get(target entity.RenderTarget) usecase.DocumentRenderer {
	return r.renderers[target]
}
