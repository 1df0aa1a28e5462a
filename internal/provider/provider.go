// Package provider defines the text-to-image generation contract.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mandalnilabja/artgen/internal/types"
)

// ImageMIMEType is the content type of every generated image.
const ImageMIMEType = "image/png"

var (
	// ErrNotConfigured is returned when no API key is configured for the upstream.
	ErrNotConfigured = errors.New("generation API key not configured")

	// ErrTimeout is returned when the upstream does not answer within the timeout.
	ErrTimeout = errors.New("image generation timed out")
)

// UpstreamError reports a non-success status from the generation API.
type UpstreamError struct {
	Provider   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.Provider, e.StatusCode)
}

// Generator turns a prompt into image bytes with a single upstream call.
type Generator interface {
	// Name returns the provider identifier
	Name() string

	// Configured reports whether credentials are present
	Configured() bool

	// Generate returns raw PNG bytes for prompt
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// GeneratedImage is a request-scoped image ready for publishing.
type GeneratedImage struct {
	Data     []byte
	Filename string
	MIMEType string
}

// NewGeneratedImage names the image after the token with a random suffix.
func NewGeneratedImage(data []byte, tokenID types.TokenID) *GeneratedImage {
	return &GeneratedImage{
		Data:     data,
		Filename: ImageFilename(tokenID),
		MIMEType: ImageMIMEType,
	}
}

// ImageFilename returns art_token_<id>_<8 hex chars>.png.
func ImageFilename(tokenID types.TokenID) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("art_token_%s_%s.png", tokenID.String(), suffix)
}
