package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/versions/domain"
)

const (
	versionListPrefix = "latex:versions:"    // List of snapshot JSON, newest first: latex:versions:{doc_id}
	documentSetKey    = "latex:version-docs" // Set of document IDs with history, for the retention worker
)

// VersionRepository handles Redis operations for document version history.
type VersionRepository struct {
	client *redis.Client
}

// NewVersionRepository creates a new VersionRepository.
func NewVersionRepository(client *redis.Client) *VersionRepository {
	return &VersionRepository{client: client}
}

// Push prepends a snapshot to the document's history and trims the list to
// the retention cap, evicting the oldest entries.
func (r *VersionRepository) Push(ctx context.Context, docID string, rec *domain.VersionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal version record: %w", err)
	}

	key := r.listKey(docID)
	pipe := r.client.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, domain.MaxVersionsPerDocument-1)
	pipe.SAdd(ctx, documentSetKey, docID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push version: %w", err)
	}
	return nil
}

// List returns all snapshots for a document, newest first.
func (r *VersionRepository) List(ctx context.Context, docID string) ([]domain.VersionRecord, error) {
	raw, err := r.client.LRange(ctx, r.listKey(docID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	out := make([]domain.VersionRecord, 0, len(raw))
	for _, item := range raw {
		var rec domain.VersionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal version record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Latest returns the newest snapshot, or ErrNoVersions.
func (r *VersionRepository) Latest(ctx context.Context, docID string) (*domain.VersionRecord, error) {
	data, err := r.client.LIndex(ctx, r.listKey(docID), 0).Result()
	if err == redis.Nil {
		return nil, domain.ErrNoVersions
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest version: %w", err)
	}
	var rec domain.VersionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal version record: %w", err)
	}
	return &rec, nil
}

// Get returns the snapshot carrying the given label.
func (r *VersionRepository) Get(ctx context.Context, docID, label string) (*domain.VersionRecord, error) {
	recs, err := r.List(ctx, docID)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].Label == label {
			return &recs[i], nil
		}
	}
	return nil, domain.ErrVersionNotFound
}

// ReplaceAll atomically rewrites a document's history, newest first. Used
// only by the retention worker; normal saves go through Push.
func (r *VersionRepository) ReplaceAll(ctx context.Context, docID string, recs []domain.VersionRecord) error {
	key := r.listKey(docID)
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal version record: %w", err)
		}
		pipe.RPush(ctx, key, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to rewrite versions: %w", err)
	}
	return nil
}

// TrackedDocuments lists every document ID that has version history.
func (r *VersionRepository) TrackedDocuments(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, documentSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked documents: %w", err)
	}
	return ids, nil
}

func (r *VersionRepository) listKey(docID string) string {
	return fmt.Sprintf("%s%s", versionListPrefix, docID)
}
