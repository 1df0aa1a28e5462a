package handler

import (
	"time"

	"github.com/mandalnilabja/artgen/internal/transport/http/handler/images"
	"github.com/mandalnilabja/artgen/internal/transport/http/handler/infra"
	"go.uber.org/zap"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "artgen (Clipdrop API)"

// Repo composes all domain-specific handlers.
type Repo struct {
	Images *images.Handlers
	Infra  *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(pipeline images.Pipeline, logger *zap.Logger) *Repo {
	return &Repo{
		Images: images.New(pipeline, logger),
		Infra:  infra.New(ServiceName, time.Now()),
	}
}
