// Package images serves the image generation endpoint.
package images

import (
	"context"

	"github.com/mandalnilabja/artgen/internal/generation"
	"github.com/mandalnilabja/artgen/internal/types"
	"go.uber.org/zap"
)

// Pipeline runs one generation request.
type Pipeline interface {
	Run(ctx context.Context, req *types.GenerationRequest) (*generation.Outcome, error)
}

// Handlers holds the dependencies for image HTTP handlers.
type Handlers struct {
	Pipeline Pipeline
	Logger   *zap.Logger
}

// New creates a new instance of image handlers.
func New(pipeline Pipeline, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		Pipeline: pipeline,
		Logger:   logger,
	}
}
