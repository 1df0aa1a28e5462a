package provider

import (
	"errors"
	"regexp"
	"testing"

	"github.com/mandalnilabja/artgen/internal/types"
)

func TestImageFilename(t *testing.T) {
	pattern := regexp.MustCompile(`^art_token_42_[0-9a-f]{8}\.png$`)

	first := ImageFilename(types.NewTokenID("42"))
	second := ImageFilename(types.NewTokenID("42"))

	if !pattern.MatchString(first) {
		t.Errorf("unexpected filename %q", first)
	}
	if first == second {
		t.Errorf("expected unique filenames, got %q twice", first)
	}
}

func TestNewGeneratedImage(t *testing.T) {
	img := NewGeneratedImage([]byte{1, 2, 3}, types.NewTokenID("unknown"))

	if img.MIMEType != "image/png" {
		t.Errorf("expected image/png, got %q", img.MIMEType)
	}
	if len(img.Data) != 3 {
		t.Errorf("expected 3 bytes, got %d", len(img.Data))
	}
}

func TestUpstreamError(t *testing.T) {
	var err error = &UpstreamError{Provider: "Clipdrop", StatusCode: 402}

	if err.Error() != "Clipdrop API error: 402" {
		t.Errorf("unexpected message %q", err.Error())
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != 402 {
		t.Error("expected errors.As to find the status code")
	}
}
