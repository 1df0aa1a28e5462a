package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mandalnilabja/artgen/internal/storage/models"
)

// UpsertImage overwrites the row for (UserID, TokenID) or inserts one.
// Update and insert run in one transaction so the pair stays unique.
func (s *Storage) UpsertImage(ctx context.Context, rec *models.ImageRecord) error {
	if rec == nil || rec.UserID == "" {
		return fmt.Errorf("%w: record requires a user id", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	params, err := json.Marshal(rec.Parameters)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	tokenID := tokenText(rec.TokenID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE user_images
		SET ipfs_hash = ?, prompt = ?, parameters = ?, status = ?, created_at = ?
		WHERE user_id = ? AND token_id = ?
	`, rec.IPFSHash, rec.Prompt, string(params), rec.Status, createdAt, rec.UserID, tokenID)
	if err != nil {
		return fmt.Errorf("failed to update image: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_images (user_id, token_id, ipfs_hash, prompt, parameters, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, rec.UserID, tokenID, rec.IPFSHash, rec.Prompt, string(params), rec.Status, createdAt)
		if err != nil {
			return fmt.Errorf("failed to insert image: %w", err)
		}
	}

	return tx.Commit()
}

// tokenText renders a token id for the TEXT column.
func tokenText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
