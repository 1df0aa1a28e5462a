// Package storage provides the metadata recorder interface and its drivers.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mandalnilabja/artgen/internal/storage/models"
	"github.com/mandalnilabja/artgen/internal/storage/mongo"
	"github.com/mandalnilabja/artgen/internal/storage/sqlite"
	"go.uber.org/zap"
)

// Re-export types from models package for convenience
type (
	ImageRecord = models.ImageRecord
	Parameters  = models.Parameters
)

// Re-export errors from sqlite package
var (
	ErrInvalidInput  = sqlite.ErrInvalidInput
	ErrStorageClosed = sqlite.ErrStorageClosed
)

// ErrUnsupportedURI is returned by Open for an unknown connection scheme.
var ErrUnsupportedURI = errors.New("unsupported store URI")

// Recorder persists image metadata. Writes are upserts keyed on
// (UserID, TokenID); the last write wins.
type Recorder interface {
	UpsertImage(ctx context.Context, rec *models.ImageRecord) error
	Close() error
}

// Options configures Open.
type Options struct {
	// Database is the MongoDB database name; ignored by SQLite.
	Database string

	Logger *zap.Logger
}

// Open connects to the store named by uri. The scheme selects the driver:
// mongodb:// and mongodb+srv:// use MongoDB, sqlite:// and file: use an
// embedded SQLite database. An empty uri returns a nil Recorder.
func Open(ctx context.Context, uri string, opts Options) (Recorder, error) {
	switch {
	case uri == "":
		return nil, nil
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		store, err := mongo.New(ctx, uri, opts.Database, opts.Logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case strings.HasPrefix(uri, "sqlite://"), strings.HasPrefix(uri, "file:"):
		path := strings.TrimPrefix(strings.TrimPrefix(uri, "sqlite://"), "file:")
		store, err := sqlite.New(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURI, RedactURI(uri))
	}
}

// RedactURI drops the userinfo part of a connection string so credentials
// never reach logs.
func RedactURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	return scheme + "://" + rest
}
