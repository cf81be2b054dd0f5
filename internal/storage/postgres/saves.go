package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSaveNotFound is returned when a save slot lookup yields no results.
var ErrSaveNotFound = errors.New("save not found")

// SaveRecord is one persisted save slot.
type SaveRecord struct {
	Slot      string
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveRepository persists encoded game snapshots keyed by slot name, one
// row per slot, as JSONB.
type SaveRepository struct {
	db *pgxpool.Pool
}

// NewSaveRepository creates a SaveRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSaveRepository(db *pgxpool.Pool) *SaveRepository {
	return &SaveRepository{db: db}
}

// Put upserts the snapshot for a slot.
//
// Precondition: slot must be non-empty; data must be valid JSON.
// Postcondition: the slot holds data and its updated_at moved forward.
func (r *SaveRepository) Put(ctx context.Context, slot string, data []byte) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO save_slots (slot, data)
		VALUES ($1, $2)
		ON CONFLICT (slot) DO UPDATE
			SET data = EXCLUDED.data, updated_at = NOW()`,
		slot, data,
	)
	if err != nil {
		return fmt.Errorf("upserting save slot %q: %w", slot, err)
	}
	return nil
}

// Get retrieves the snapshot stored under a slot.
//
// Postcondition: Returns the record or ErrSaveNotFound.
func (r *SaveRepository) Get(ctx context.Context, slot string) (*SaveRecord, error) {
	var rec SaveRecord
	err := r.db.QueryRow(ctx, `
		SELECT slot, data, created_at, updated_at
		FROM save_slots WHERE slot = $1`,
		slot,
	).Scan(&rec.Slot, &rec.Data, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaveNotFound
		}
		return nil, fmt.Errorf("fetching save slot %q: %w", slot, err)
	}
	return &rec, nil
}

// List returns every save slot ordered by most recently updated.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *SaveRepository) List(ctx context.Context) ([]*SaveRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT slot, data, created_at, updated_at
		FROM save_slots ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing save slots: %w", err)
	}
	defer rows.Close()

	recs := make([]*SaveRecord, 0)
	for rows.Next() {
		var rec SaveRecord
		if err := rows.Scan(&rec.Slot, &rec.Data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning save slot row: %w", err)
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

// Delete removes a slot.
//
// Postcondition: Returns ErrSaveNotFound if the slot did not exist.
func (r *SaveRepository) Delete(ctx context.Context, slot string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM save_slots WHERE slot = $1`, slot)
	if err != nil {
		return fmt.Errorf("deleting save slot %q: %w", slot, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSaveNotFound
	}
	return nil
}
