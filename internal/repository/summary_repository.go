package repository

import (
	"context"

	"genai-summarizer/internal/domain/entity"
)

// SummaryRepository stores summary records and the per-owner history index.
// Implementations return copies; callers never hold references into the store.
type SummaryRepository interface {
	// Put inserts r and appends its ID to the owner's history as one unit.
	// It fails only when a record with the same ID already exists.
	Put(ctx context.Context, r *entity.SummaryRecord) error
	// Get returns NotFound for an unknown id and Forbidden when
	// requesterID is not the owner.
	Get(ctx context.Context, id, requesterID string) (*entity.SummaryRecord, error)
	// Delete applies the same checks as Get, then removes the record and
	// its history entry together.
	Delete(ctx context.Context, id, requesterID string) error
	// History returns the owner's records in insertion order. An owner
	// with no records gets an empty slice, never an error.
	History(ctx context.Context, ownerID string) ([]*entity.SummaryRecord, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
