// Package store is the Postgres-backed object store the pipeline reads
// transcripts from and writes summaries to.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/scribe/internal/summarizer"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// GetTranscript fetches a raw transcript payload by its storage key.
func (s *Store) GetTranscript(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM transcripts WHERE key = $1`, key,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transcript %s not found", key)
	}
	if err != nil {
		return nil, fmt.Errorf("get transcript %s: %w", key, err)
	}
	return payload, nil
}

// PutSummary stores the summary record under its key. The upsert is a
// whole-record overwrite keyed by contact, so reprocessing the same contact
// leaves exactly one live record (last write wins).
func (s *Store) PutSummary(ctx context.Context, key string, rec *summarizer.Record) error {
	record, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal summary record: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO summaries (contact_id, storage_key, record, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (contact_id) DO UPDATE
		SET storage_key = EXCLUDED.storage_key, record = EXCLUDED.record, updated_at = now()`,
		rec.ContactID, key, record,
	)
	if err != nil {
		return fmt.Errorf("put summary %s: %w", key, err)
	}
	return nil
}

// GetSummary fetches a persisted summary record by its storage key.
func (s *Store) GetSummary(ctx context.Context, key string) (*summarizer.Record, error) {
	var record []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM summaries WHERE storage_key = $1`, key,
	).Scan(&record)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("summary %s not found", key)
	}
	if err != nil {
		return nil, fmt.Errorf("get summary %s: %w", key, err)
	}

	var rec summarizer.Record
	if err := json.Unmarshal(record, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal summary %s: %w", key, err)
	}
	return &rec, nil
}
