// Package mound manages the shared pool of visual dig mound slots.
package mound

import (
	"fmt"
	"sync"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// Pool is a bounded set of mound slots shared by every player in a world
type Pool struct {
	mu     sync.Mutex
	free   []int
	owners map[int]string
	size   int
}

// NewPool creates a pool with size slots numbered 0..size-1
func NewPool(size int) *Pool {
	if size < 0 {
		size = 0
	}
	free := make([]int, 0, size)
	for i := size - 1; i >= 0; i-- {
		free = append(free, i)
	}
	return &Pool{free: free, owners: make(map[int]string, size), size: size}
}

// Reserve assigns a free slot to playerID
func (p *Pool) Reserve(playerID string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) == 0 {
		return 0, fmt.Errorf("%w: %d of %d slots in use", domain.ErrNoMoundAvailable, len(p.owners), p.size)
	}
	slot := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.owners[slot] = playerID
	return slot, nil
}

// Release returns a slot to the pool. It reports false when playerID does not
// hold the slot, which makes double release harmless.
func (p *Pool) Release(slot int, playerID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if owner, ok := p.owners[slot]; !ok || owner != playerID {
		return false
	}
	delete(p.owners, slot)
	p.free = append(p.free, slot)
	return true
}

// InUse returns the number of reserved slots
func (p *Pool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.owners)
}

// Size returns the total number of slots
func (p *Pool) Size() int {
	return p.size
}
