// Package shiny locates the shiny spot a player is standing on and checks
// whether their tool may dig it.
package shiny

import (
	"fmt"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// Registry holds the world's shiny spots. It is read-only after construction.
type Registry struct {
	spots []*domain.ShinySpot
}

// NewRegistry builds a registry over spots
func NewRegistry(spots []*domain.ShinySpot) *Registry {
	return &Registry{spots: spots}
}

// Closest returns the nearest spot whose trigger volume contains pos
func (r *Registry) Closest(pos domain.Position) (*domain.ShinySpot, bool) {
	var (
		best     *domain.ShinySpot
		bestDist float64
	)
	for _, s := range r.spots {
		if !s.Contains(pos) {
			continue
		}
		d := s.Position.DistanceTo(pos)
		if best == nil || d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, best != nil
}

// Spot returns the spot with the given id
func (r *Registry) Spot(id string) (*domain.ShinySpot, bool) {
	for _, s := range r.spots {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Len returns the number of registered spots
func (r *Registry) Len() int {
	return len(r.spots)
}

// Gate checks the spot's tool and star requirements
func Gate(spot *domain.ShinySpot, tool *domain.ToolDefinition) error {
	if !spot.AllowsTool(tool.ID) {
		return fmt.Errorf("%w: spot %s, tool %s", domain.ErrShinyToolMismatch, spot.ID, tool.ID)
	}
	if tool.Star < spot.StarRequirement {
		return fmt.Errorf("%w: spot %s needs %d, tool has %d",
			domain.ErrShinyStarTooLow, spot.ID, spot.StarRequirement, tool.Star)
	}
	return nil
}
