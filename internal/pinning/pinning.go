// Package pinning defines the contract for publishing images to IPFS.
package pinning

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// AnonymousUser tags uploads made without an owner.
const AnonymousUser = "anonymous"

// DefaultExcerptLength is the prompt excerpt length stored with each pin.
const DefaultExcerptLength = 50

// Metadata is attached to every pinned file as key/value tags.
type Metadata struct {
	TokenID string `json:"tokenId"`
	UserID  string `json:"userId"`
	Prompt  string `json:"prompt"`
}

// NewMetadata builds the tag set for an upload, substituting AnonymousUser
// for an empty owner and truncating the prompt to excerptLen characters.
func NewMetadata(tokenID, userID, prompt string, excerptLen int) Metadata {
	if userID == "" {
		userID = AnonymousUser
	}
	return Metadata{
		TokenID: tokenID,
		UserID:  userID,
		Prompt:  Excerpt(prompt, excerptLen),
	}
}

// Excerpt returns the first limit characters of s followed by "..." when s is
// longer than limit. A non-positive limit uses DefaultExcerptLength.
func Excerpt(s string, limit int) string {
	if limit <= 0 {
		limit = DefaultExcerptLength
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n == limit {
			break
		}
		b.WriteRune(r)
		n++
	}
	b.WriteString("...")
	return b.String()
}

// Artifact is a successfully pinned file.
type Artifact struct {
	ContentAddress string
	GatewayURL     string
}

// StatusError reports a non-200 answer from the pinning service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pinning service returned status %d", e.StatusCode)
}

// Publisher uploads image bytes and returns their content address.
type Publisher interface {
	// Configured reports whether credentials are present
	Configured() bool

	// Publish uploads image under filename with meta attached
	Publish(ctx context.Context, image []byte, filename string, meta Metadata) (string, error)

	// GatewayURL returns the public URL for a content address
	GatewayURL(contentAddress string) string
}
