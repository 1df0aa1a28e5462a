// Package clipdrop implements the Clipdrop text-to-image provider.
package clipdrop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"time"

	"github.com/mandalnilabja/artgen/internal/provider"
	"go.uber.org/zap"
)

const (
	// DefaultURL is the Clipdrop text-to-image endpoint.
	DefaultURL = "https://clipdrop-api.co/text-to-image/v1"

	// DefaultTimeout bounds a single generation call.
	DefaultTimeout = 60 * time.Second

	// maxBodyLogBytes caps how much of an error body is logged.
	maxBodyLogBytes = 2048
)

// Options configures a Provider.
type Options struct {
	APIKey     string
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Provider implements provider.Generator for Clipdrop.
type Provider struct {
	apiKey  string
	url     string
	timeout time.Duration
	client  *http.Client
	logger  *zap.Logger
}

// New creates a Clipdrop provider, filling unset options with defaults.
func New(opts Options) *Provider {
	p := &Provider{
		apiKey:  opts.APIKey,
		url:     opts.URL,
		timeout: opts.Timeout,
		client:  opts.HTTPClient,
		logger:  opts.Logger,
	}
	if p.url == "" {
		p.url = DefaultURL
	}
	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}
	if p.client == nil {
		p.client = &http.Client{}
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	p.logger = p.logger.Named("clipdrop")
	return p
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "Clipdrop"
}

// BaseURL returns the Clipdrop API endpoint
func (p *Provider) BaseURL() string {
	return p.url
}

// Configured reports whether an API key is set.
func (p *Provider) Configured() bool {
	return p.apiKey != ""
}

// Generate sends prompt as the only form field and returns the image bytes.
// A single attempt is made; there are no retries.
func (p *Provider) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if !p.Configured() {
		return nil, provider.ErrNotConfigured
	}

	body, contentType, err := encodePrompt(prompt)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-api-key", p.apiKey)

	p.logger.Debug("sending generation request", zap.Int("prompt_len", len(prompt)))

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			p.logger.Warn("generation timed out", zap.Duration("timeout", p.timeout))
			return nil, provider.ErrTimeout
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyLogBytes))
		p.logger.Warn("generation API error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(errBody)),
		)
		return nil, &provider.UpstreamError{Provider: p.Name(), StatusCode: resp.StatusCode}
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, provider.ErrTimeout
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	p.logger.Info("image generated",
		zap.Int("bytes", len(image)),
		zap.Duration("duration", time.Since(start)),
	)
	return image, nil
}

// encodePrompt builds the multipart body carrying the prompt field.
func encodePrompt(prompt string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, "", fmt.Errorf("failed to write prompt: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

// isTimeout reports whether err was caused by the per-call deadline rather
// than by the caller cancelling.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
