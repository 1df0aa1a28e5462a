// Package mongo provides a MongoDB metadata recorder.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mandalnilabja/artgen/internal/storage/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

const (
	// DefaultDatabase is used when no database name is configured.
	DefaultDatabase = "aleart"

	// ImagesCollection holds one document per (userId, tokenId).
	ImagesCollection = "userImages"

	connectTimeout = 10 * time.Second
)

// Store records image metadata in a MongoDB collection.
type Store struct {
	client *driver.Client
	images *driver.Collection
}

// New creates a client for uri. Only a malformed URI is an error: the
// client connects lazily, so a server that is down at startup is logged
// and later upserts reach it once it is back.
func New(ctx context.Context, uri, database string, logger *zap.Logger) (*Store, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := driver.Connect(options.Client().SetConnectTimeout(connectTimeout).ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Warn("mongodb not reachable yet; upserts will retry per request", zap.Error(err))
	}

	return &Store{
		client: client,
		images: client.Database(database).Collection(ImagesCollection),
	}, nil
}

// UpsertImage replaces every field of the (UserID, TokenID) document,
// inserting it when absent.
func (s *Store) UpsertImage(ctx context.Context, rec *models.ImageRecord) error {
	if rec == nil || rec.UserID == "" {
		return errors.New("record requires a user id")
	}

	_, err := s.images.UpdateOne(ctx, upsertFilter(rec), upsertUpdate(rec), options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert image: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func upsertFilter(rec *models.ImageRecord) bson.D {
	return bson.D{
		{Key: "userId", Value: rec.UserID},
		{Key: "tokenId", Value: rec.TokenID},
	}
}

func upsertUpdate(rec *models.ImageRecord) bson.D {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	doc := *rec
	doc.CreatedAt = createdAt

	return bson.D{{Key: "$set", Value: doc}}
}
