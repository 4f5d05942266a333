package dig

import (
	"fmt"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// MutationInputs are the player's counters before this dig
type MutationInputs struct {
	LifetimeDigs      int
	DigsSinceMutation int
	ForcedMutation    string
}

// MutationRoll is the outcome of the mutation roller
type MutationRoll struct {
	MutationID string
	// DigsSinceMutation is the counter value after this dig
	DigsSinceMutation int
	Onboarding        bool
}

// Mutated reports whether the roll produced a mutation
func (r MutationRoll) Mutated() bool {
	return r.MutationID != ""
}

type mutationRoller struct {
	cfg     MutationConfig
	weights []float64
}

func newMutationRoller(cfg MutationConfig) (*mutationRoller, error) {
	switch cfg.Strategy {
	case MutationPeriodic:
		if cfg.Every < 1 {
			return nil, fmt.Errorf("%w: periodic mutation needs every >= 1", domain.ErrInvalidInput)
		}
	case MutationChance, MutationChanceWithCooldown:
	default:
		return nil, fmt.Errorf("%w: unknown mutation strategy %q", domain.ErrInvalidInput, cfg.Strategy)
	}
	if len(cfg.Table) == 0 {
		return nil, fmt.Errorf("%w: mutation table is empty", domain.ErrInvalidInput)
	}
	weights := make([]float64, len(cfg.Table))
	for i, e := range cfg.Table {
		weights[i] = e.Weight
	}
	return &mutationRoller{cfg: cfg, weights: weights}, nil
}

// Roll decides whether this dig mutates. Onboarding and forced overrides run
// ahead of the configured strategy.
func (m *mutationRoller) Roll(in MutationInputs, rnd func() float64) MutationRoll {
	if in.ForcedMutation != "" {
		return MutationRoll{MutationID: in.ForcedMutation}
	}

	// lifetime digs are counted before this one, so dig N sees N-1
	ob := m.cfg.Onboarding
	if ob.ForcedMutationDig > 0 && in.LifetimeDigs+1 == ob.ForcedMutationDig {
		id := ob.ForcedMutationID
		if id == "" {
			id = m.pick(rnd())
		}
		return MutationRoll{MutationID: id, Onboarding: true}
	}

	if !m.triggers(in.DigsSinceMutation, rnd) {
		return MutationRoll{DigsSinceMutation: in.DigsSinceMutation + 1}
	}
	return MutationRoll{MutationID: m.pick(rnd())}
}

func (m *mutationRoller) triggers(since int, rnd func() float64) bool {
	switch m.cfg.Strategy {
	case MutationPeriodic:
		return since+1 >= m.cfg.Every
	case MutationChance:
		return rnd() < m.cfg.Chance
	default:
		if since < m.cfg.Cooldown {
			return false
		}
		chance := m.cfg.Chance + m.cfg.ChanceGrowth*float64(since-m.cfg.Cooldown)
		return rnd() < chance
	}
}

func (m *mutationRoller) pick(roll float64) string {
	idx := selectWeightedIndex(m.weights, roll)
	if idx < 0 {
		return m.cfg.Table[0].ID
	}
	return m.cfg.Table[idx].ID
}
