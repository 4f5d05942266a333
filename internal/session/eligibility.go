package session

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/logger"
	"github.com/osse101/DigSite_Go/internal/shiny"
)

// eligibility is the outcome of the gating checks before it is committed
type eligibility struct {
	result  domain.CanDigResult
	binding *domain.ShinySpotBinding
	err     error
}

// checkEligibility runs inventory and shiny-spot gating for a position.
// It never mutates state.
func (s *service) checkEligibility(profile domain.PlayerProfile, pos domain.Position) eligibility {
	var el eligibility
	el.result.SuggestedBuffID = s.suggestBuff(profile)

	tool, ok := s.catalog.Tool(profile.ToolID)
	if !ok {
		el.result.Reason = domain.CanDigReasonUnknownTool
		el.err = fmt.Errorf("%w: %s", domain.ErrToolNotFound, profile.ToolID)
		return el
	}

	if profile.InventoryFree <= 0 {
		el.result.Reason = domain.CanDigReasonInventoryFull
		el.err = domain.ErrInventoryFull
		return el
	}

	if spot, found := s.spots.Closest(pos); found {
		el.result.ShinySpotID = spot.ID
		el.result.StarRequirement = spot.StarRequirement
		el.result.BaseChance = spot.BaseChance
		if err := shiny.Gate(spot, tool); err != nil {
			el.err = err
			if errors.Is(err, domain.ErrShinyToolMismatch) {
				el.result.Reason = domain.CanDigReasonShinyWrongTool
			} else {
				el.result.Reason = domain.CanDigReasonShinyStarLow
			}
			return el
		}
		el.binding = domain.NewShinySpotBinding(spot)
	}

	el.result.CanDig = true
	return el
}

// suggestBuff picks the strongest owned luck buff that is not already active
func (s *service) suggestBuff(profile domain.PlayerProfile) string {
	type candidate struct {
		id   string
		luck float64
	}
	var cands []candidate
	for _, id := range profile.OwnedBuffs {
		if profile.HasActiveBuff(id) {
			continue
		}
		b, ok := s.catalog.Buff(id)
		if !ok || b.LuckBonus <= 0 {
			continue
		}
		cands = append(cands, candidate{id: id, luck: b.LuckBonus})
	}
	if len(cands) == 0 {
		return ""
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].luck != cands[j].luck {
			return cands[i].luck > cands[j].luck
		}
		return cands[i].id < cands[j].id
	})
	return cands[0].id
}

func (s *service) QueryCanDig(ctx context.Context, playerID string, pos domain.Position) (*domain.CanDigResult, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", domain.ErrInvalidInput)
	}
	log := logger.FromContext(ctx)

	defer s.lockPlayer(playerID)()
	st, existed := s.table.get(playerID)
	if !existed {
		st = s.table.getOrCreate(playerID)
		// a state this query created only stays if it ends Eligible
		defer func() {
			if st.State == domain.DigStateIdle && st.Record == nil {
				s.table.remove(playerID)
			}
		}()
	}

	if st.Record != nil {
		return &domain.CanDigResult{Reason: domain.CanDigReasonDigInProgress}, nil
	}

	profile, err := s.players.Profile(ctx, playerID)
	if err != nil {
		return nil, err
	}

	el := s.checkEligibility(profile, pos)
	if el.result.CanDig {
		st.State = domain.DigStateEligible
		st.Binding = el.binding
	} else {
		st.State = domain.DigStateIdle
		st.Binding = nil
	}
	st.UpdatedAt = s.now()

	log.Debug(LogMsgEligibilityChecked,
		LogFieldPlayerID, playerID,
		LogFieldCanDig, el.result.CanDig,
		LogFieldReason, el.result.Reason)
	return &el.result, nil
}
