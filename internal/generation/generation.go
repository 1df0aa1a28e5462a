// Package generation runs the generate, publish and record pipeline for a
// single image request.
package generation

import (
	"context"
	"time"

	"github.com/mandalnilabja/artgen/internal/pinning"
	"github.com/mandalnilabja/artgen/internal/provider"
	"github.com/mandalnilabja/artgen/internal/storage"
	"github.com/mandalnilabja/artgen/internal/storage/models"
	"github.com/mandalnilabja/artgen/internal/types"
	"go.uber.org/zap"
)

// StepStatus is the result of an optional pipeline step.
type StepStatus string

const (
	StepSkipped   StepStatus = "skipped"
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
)

// StepResult describes what happened to an optional step. Err is set only
// when Status is StepFailed.
type StepResult struct {
	Status StepStatus
	Reason string
	Err    error
}

func skipped(reason string) StepResult {
	return StepResult{Status: StepSkipped, Reason: reason}
}

func failed(err error) StepResult {
	return StepResult{Status: StepFailed, Reason: err.Error(), Err: err}
}

// Outcome is the result of a successful generation.
type Outcome struct {
	Image *provider.GeneratedImage

	// Artifact is nil unless publishing succeeded.
	Artifact *pinning.Artifact

	Publish StepResult
	Record  StepResult
}

// Best-effort step deadlines used when Options leaves them unset.
const (
	DefaultPublishTimeout = 60 * time.Second
	DefaultRecordTimeout  = 10 * time.Second
)

// Options configures a Service.
type Options struct {
	Generator     provider.Generator
	Publisher     pinning.Publisher
	Recorder      storage.Recorder
	ExcerptLength int

	// PublishTimeout and RecordTimeout bound the optional steps so a slow
	// store or pinning service cannot hold the response.
	PublishTimeout time.Duration
	RecordTimeout  time.Duration

	Logger *zap.Logger
}

// Service orchestrates one generation per call. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	generator     provider.Generator
	publisher     pinning.Publisher
	recorder      storage.Recorder
	excerptLength int
	publishWait   time.Duration
	recordWait    time.Duration
	log           *zap.Logger
	now           func() time.Time
}

// New creates a Service. Publisher and Recorder may be nil.
func New(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	excerpt := opts.ExcerptLength
	if excerpt <= 0 {
		excerpt = pinning.DefaultExcerptLength
	}
	publishWait := opts.PublishTimeout
	if publishWait <= 0 {
		publishWait = DefaultPublishTimeout
	}
	recordWait := opts.RecordTimeout
	if recordWait <= 0 {
		recordWait = DefaultRecordTimeout
	}
	return &Service{
		generator:     opts.Generator,
		publisher:     opts.Publisher,
		recorder:      opts.Recorder,
		excerptLength: excerpt,
		publishWait:   publishWait,
		recordWait:    recordWait,
		log:           log.Named("pipeline"),
		now:           time.Now,
	}
}

// Run generates an image for req, then publishes and records it when
// possible. Only generation failures are returned as errors.
func (s *Service) Run(ctx context.Context, req *types.GenerationRequest) (*Outcome, error) {
	if s.generator == nil || !s.generator.Configured() {
		return nil, provider.ErrNotConfigured
	}

	log := s.log.With(zap.String("token_id", req.TokenID.String()), zap.Bool("anonymous", req.Anonymous()))

	data, err := s.generator.Generate(ctx, req.Prompt)
	if err != nil {
		log.Warn("generation failed", zap.Error(err))
		return nil, err
	}

	out := &Outcome{Image: provider.NewGeneratedImage(data, req.TokenID)}
	log.Info("generation complete", zap.Int("bytes", len(data)), zap.String("filename", out.Image.Filename))

	out.Artifact, out.Publish = s.publish(ctx, req, out.Image, log)
	out.Record = s.record(ctx, req, out.Artifact, log)

	return out, nil
}

func (s *Service) publish(ctx context.Context, req *types.GenerationRequest, img *provider.GeneratedImage, log *zap.Logger) (*pinning.Artifact, StepResult) {
	if s.publisher == nil || !s.publisher.Configured() {
		return nil, skipped("publishing not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.publishWait)
	defer cancel()

	meta := pinning.NewMetadata(req.TokenID.String(), req.UserID, req.Prompt, s.excerptLength)
	addr, err := s.publisher.Publish(ctx, img.Data, img.Filename, meta)
	if err != nil {
		log.Warn("publish failed", zap.Error(err))
		return nil, failed(err)
	}
	if addr == "" {
		return nil, skipped("no content address returned")
	}

	log.Info("image published", zap.String("ipfs_hash", addr))
	return &pinning.Artifact{
		ContentAddress: addr,
		GatewayURL:     s.publisher.GatewayURL(addr),
	}, StepResult{Status: StepSucceeded}
}

func (s *Service) record(ctx context.Context, req *types.GenerationRequest, art *pinning.Artifact, log *zap.Logger) StepResult {
	switch {
	case req.Anonymous():
		return skipped("no owner")
	case art == nil:
		return skipped("no content address")
	case s.recorder == nil:
		return skipped("no store configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.recordWait)
	defer cancel()

	if err := s.recorder.UpsertImage(ctx, s.buildRecord(req, art)); err != nil {
		log.Warn("record failed", zap.Error(err))
		return failed(err)
	}

	log.Debug("image recorded")
	return StepResult{Status: StepSucceeded}
}

func (s *Service) buildRecord(req *types.GenerationRequest, art *pinning.Artifact) *models.ImageRecord {
	return &models.ImageRecord{
		UserID:   req.UserID,
		TokenID:  req.TokenID.Value(),
		IPFSHash: art.ContentAddress,
		Prompt:   req.Prompt,
		Parameters: models.Parameters{
			Steps:    req.Steps,
			CfgScale: req.CfgScale,
			Seed:     req.Seed,
			Width:    req.Width,
			Height:   req.Height,
			API:      models.APIClipdrop,
		},
		CreatedAt: s.now().UTC(),
		Status:    models.StatusCompleted,
	}
}
