package progress

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// Store persists the per-player dig counters that outlive a session
type Store interface {
	// Load returns the player's counters; unknown players read as zero
	Load(ctx context.Context, playerID string) (domain.DigProgress, error)
	Save(ctx context.Context, p domain.DigProgress) error
	// IncrementDiscovery records one more find of itemID and returns the new count
	IncrementDiscovery(ctx context.Context, playerID, itemID string) (int, error)
	// Discoveries returns a copy of the player's per-item find counts
	Discoveries(ctx context.Context, playerID string) (map[string]int, error)
}

func validate(p domain.DigProgress) error {
	if p.PlayerID == "" {
		return fmt.Errorf("%w: player id is required", domain.ErrInvalidInput)
	}
	if p.Streak < 0 || p.LifetimeDigs < 0 || p.DigsSinceMutation < 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNegativeProgressCounter)
	}
	return nil
}

// memoryStore keeps progress in process memory
type memoryStore struct {
	mu          sync.RWMutex
	progress    map[string]domain.DigProgress
	discoveries map[string]map[string]int
}

// NewMemoryStore creates an in-memory progress store
func NewMemoryStore() Store {
	return &memoryStore{
		progress:    make(map[string]domain.DigProgress),
		discoveries: make(map[string]map[string]int),
	}
}

func (s *memoryStore) Load(_ context.Context, playerID string) (domain.DigProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[playerID]
	if !ok {
		return domain.DigProgress{PlayerID: playerID}, nil
	}
	return p, nil
}

func (s *memoryStore) Save(_ context.Context, p domain.DigProgress) error {
	if err := validate(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[p.PlayerID] = p
	return nil
}

func (s *memoryStore) IncrementDiscovery(_ context.Context, playerID, itemID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts, ok := s.discoveries[playerID]
	if !ok {
		counts = make(map[string]int)
		s.discoveries[playerID] = counts
	}
	counts[itemID]++
	return counts[itemID], nil
}

func (s *memoryStore) Discoveries(_ context.Context, playerID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.discoveries[playerID]))
	maps.Copy(out, s.discoveries[playerID])
	return out, nil
}
