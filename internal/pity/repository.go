package pity

import (
	"context"
	"sync"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// Record is the stored pity row of one player
type Record struct {
	Counter   int
	Objective domain.PityObjective
}

// Repository persists pity counters and objectives
type Repository interface {
	Get(ctx context.Context, playerID string) (Record, error)
	Increment(ctx context.Context, playerID string) (int, error)
	Reset(ctx context.Context, playerID string) error
	SetObjective(ctx context.Context, playerID string, objective domain.PityObjective) error
}

// memoryRepository keeps pity rows in process memory
type memoryRepository struct {
	mu   sync.Mutex
	rows map[string]Record
}

// NewMemoryRepository creates an in-memory pity repository
func NewMemoryRepository() Repository {
	return &memoryRepository{rows: make(map[string]Record)}
}

func (r *memoryRepository) Get(_ context.Context, playerID string) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[playerID], nil
}

func (r *memoryRepository) Increment(_ context.Context, playerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.rows[playerID]
	rec.Counter++
	r.rows[playerID] = rec
	return rec.Counter, nil
}

func (r *memoryRepository) Reset(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.rows[playerID]; ok {
		rec.Counter = 0
		r.rows[playerID] = rec
	}
	return nil
}

func (r *memoryRepository) SetObjective(_ context.Context, playerID string, objective domain.PityObjective) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.rows[playerID]
	rec.Objective = objective
	r.rows[playerID] = rec
	return nil
}
