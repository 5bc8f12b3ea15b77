// Package memory provides a process-lifetime implementation of
// repository.SummaryRepository. Contents are lost on restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/observability/metrics"
	"genai-summarizer/internal/repository"
)

// SummaryRepo keeps records and the owner history index behind one lock,
// so every mutation updates both or neither.
type SummaryRepo struct {
	mu      sync.RWMutex
	records map[string]*entity.SummaryRecord
	history map[string][]string
}

// NewSummaryRepo returns an empty store.
func NewSummaryRepo() *SummaryRepo {
	return &SummaryRepo{
		records: make(map[string]*entity.SummaryRecord),
		history: make(map[string][]string),
	}
}

var _ repository.SummaryRepository = (*SummaryRepo)(nil)

// Put implements repository.SummaryRepository.
func (repo *SummaryRepo) Put(_ context.Context, r *entity.SummaryRecord) error {
	if r == nil {
		return fmt.Errorf("Put: nil record")
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("Put: %w", err)
	}
	stored := *r

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.records[stored.ID]; exists {
		return fmt.Errorf("Put: record %q already exists", stored.ID)
	}
	repo.records[stored.ID] = &stored
	repo.history[stored.OwnerID] = append(repo.history[stored.OwnerID], stored.ID)
	metrics.SetStoreRecords(len(repo.records))
	return nil
}

// Get implements repository.SummaryRepository.
func (repo *SummaryRepo) Get(_ context.Context, id, requesterID string) (*entity.SummaryRecord, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	r, err := repo.lookup(id, requesterID)
	if err != nil {
		return nil, err
	}
	out := *r
	return &out, nil
}

// Delete implements repository.SummaryRepository.
func (repo *SummaryRepo) Delete(_ context.Context, id, requesterID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	r, err := repo.lookup(id, requesterID)
	if err != nil {
		return err
	}

	ids := repo.history[r.OwnerID]
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	}
	if len(ids) == 0 {
		delete(repo.history, r.OwnerID)
	} else {
		repo.history[r.OwnerID] = ids
	}
	delete(repo.records, id)
	metrics.SetStoreRecords(len(repo.records))
	return nil
}

// History implements repository.SummaryRepository.
func (repo *SummaryRepo) History(_ context.Context, ownerID string) ([]*entity.SummaryRecord, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	ids := repo.history[ownerID]
	out := make([]*entity.SummaryRecord, 0, len(ids))
	for _, id := range ids {
		if r, ok := repo.records[id]; ok {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Count implements repository.SummaryRepository.
func (repo *SummaryRepo) Count(_ context.Context) (int, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return len(repo.records), nil
}

// lookup must be called with mu held.
func (repo *SummaryRepo) lookup(id, requesterID string) (*entity.SummaryRecord, error) {
	r, ok := repo.records[id]
	if !ok {
		return nil, entity.NotFoundError("Summary")
	}
	if r.OwnerID != requesterID {
		return nil, entity.ForbiddenError()
	}
	return r, nil
}
