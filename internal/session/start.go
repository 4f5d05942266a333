package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DigSite_Go/internal/dig"
	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/logger"
	"github.com/osse101/DigSite_Go/internal/metrics"
	"github.com/osse101/DigSite_Go/internal/sequencer"
	"github.com/osse101/DigSite_Go/internal/shiny"
)

// StartDig resolves a dig and opens the player's session record.
// From Idle the eligibility checks run first. Every failure leaves the
// player's state exactly as it was.
func (s *service) StartDig(ctx context.Context, req StartRequest) (*domain.DigResult, error) {
	if req.PlayerID == "" {
		return nil, fmt.Errorf("%w: player id is required", domain.ErrInvalidInput)
	}
	if math.IsNaN(req.Luck) || math.IsInf(req.Luck, 0) || req.Luck < 0 {
		return nil, fmt.Errorf("%w: luck must be a non-negative number", domain.ErrInvalidInput)
	}
	log := logger.FromContext(ctx).With(LogFieldPlayerID, req.PlayerID)

	defer s.lockPlayer(req.PlayerID)()
	st := s.table.getOrCreate(req.PlayerID)

	if st.Record != nil {
		log.Warn(LogMsgDigRejected, LogFieldReason, domain.ErrMsgDigInProgress)
		return nil, domain.ErrDigInProgress
	}

	profile, err := s.players.Profile(ctx, req.PlayerID)
	if err != nil {
		return nil, err
	}

	binding, err := s.startEligibility(st, profile, req.Position)
	if err != nil {
		metrics.ResolutionFailures.WithLabelValues(failureReason(err)).Inc()
		log.Info(LogMsgDigRejected, LogFieldError, err)
		return nil, err
	}

	if err := s.loadProgress(ctx, st); err != nil {
		return nil, err
	}

	slot, err := s.mounds.Reserve(req.PlayerID)
	if err != nil {
		metrics.ResolutionFailures.WithLabelValues(FailureReasonNoMound).Inc()
		log.Error(LogMsgNoMound, LogFieldError, err)
		return nil, err
	}

	res, next, err := s.resolve(ctx, st, profile, req, binding)
	if err != nil {
		s.mounds.Release(slot, req.PlayerID)
		metrics.ResolutionFailures.WithLabelValues(failureReason(err)).Inc()
		log.Error(LogMsgResolveFailed, LogFieldError, err)
		return nil, err
	}

	// Attempts count toward onboarding and the mutation cooldown even if the
	// minigame later fails, so counters are persisted before the record opens.
	if err := s.progress.Save(ctx, next); err != nil {
		s.mounds.Release(slot, req.PlayerID)
		log.Error(LogMsgProgressSaveFailed, LogFieldError, err)
		return nil, err
	}
	st.Progress = next

	st.Generation = s.table.nextGeneration()
	rec := &domain.DigSessionRecord{
		SessionID:             uuid.New(),
		PlayerID:              req.PlayerID,
		Item:                  res.Item,
		Location:              req.Position,
		Modifiers:             res.Modifiers,
		DiscoverCount:         res.DiscoverCount,
		GemReward:             res.GemReward,
		XPReward:              res.XPReward,
		Weight:                res.Weight,
		MutationID:            res.MutationID,
		MutationStreakCounter: res.DigsSinceMutation,
		PityForced:            res.Flags.PityForced,
		ShinyHit:              res.Flags.ShinySpot,
		UsedBuffs:             res.UsedBuffs,
		Difficulty:            res.Difficulty,
		DifficultyInputs:      res.DifficultyInputs,
		Generation:            st.Generation,
		SlotID:                slot,
		StartedAt:             s.now(),
	}
	st.Record = rec
	st.Binding = nil
	st.State = domain.DigStateAwaitingMinigame
	st.UpdatedAt = rec.StartedAt

	metrics.DigsStarted.Inc()
	metrics.ActiveSessions.Inc()
	metrics.MoundSlotsInUse.Set(float64(s.mounds.InUse()))

	result := digResult(rec, res.Flags)
	s.publishStart(ctx, rec, result)
	st.riseTask = s.scheduleMound(rec, event.DigMoundRaised, s.cfg.MoundRiseDelay)

	log.Info(LogMsgDigStarted,
		LogFieldSessionID, rec.SessionID,
		LogFieldItemID, rec.Item.ID,
		LogFieldRarity, rec.Item.Rarity.String(),
		LogFieldSlotID, slot,
		LogFieldGeneration, rec.Generation)
	return result, nil
}

// startEligibility returns the shiny binding to resolve with. An Eligible
// player keeps the binding from their query unless they left the spot, but
// the bound spot is gated again against the tool equipped now. An Idle
// player is checked at the start position.
func (s *service) startEligibility(st *PlayerDigState, profile domain.PlayerProfile, pos domain.Position) (*domain.ShinySpotBinding, error) {
	if st.State == domain.DigStateEligible {
		if profile.InventoryFree <= 0 {
			return nil, fmt.Errorf(ErrFmtNotEligible, domain.ErrNotEligible, domain.ErrInventoryFull)
		}
		if err := s.regateBinding(st.Binding, profile.ToolID); err != nil {
			return nil, fmt.Errorf(ErrFmtNotEligible, domain.ErrNotEligible, err)
		}
		return st.Binding, nil
	}
	el := s.checkEligibility(profile, pos)
	if !el.result.CanDig {
		return nil, fmt.Errorf(ErrFmtNotEligible, domain.ErrNotEligible, el.err)
	}
	return el.binding, nil
}

// regateBinding checks a stored binding against the player's current tool
func (s *service) regateBinding(binding *domain.ShinySpotBinding, toolID string) error {
	tool, ok := s.catalog.Tool(toolID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrToolNotFound, toolID)
	}
	if binding == nil {
		return nil
	}
	spot, ok := s.spots.Spot(binding.SpotID)
	if !ok {
		return fmt.Errorf("%w: spot %s", domain.ErrShinyToolMismatch, binding.SpotID)
	}
	return shiny.Gate(spot, tool)
}

// resolve runs the engine and returns the counters as they stand after this attempt
func (s *service) resolve(ctx context.Context, st *PlayerDigState, profile domain.PlayerProfile, req StartRequest, binding *domain.ShinySpotBinding) (*dig.Resolution, domain.DigProgress, error) {
	pityState, err := s.pity.State(ctx, req.PlayerID)
	if err != nil {
		return nil, domain.DigProgress{}, err
	}
	discoveries, err := s.progress.Discoveries(ctx, req.PlayerID)
	if err != nil {
		return nil, domain.DigProgress{}, err
	}

	start := time.Now()
	res, err := s.engine.Resolve(ctx, dig.ResolveRequest{
		Profile:           profile,
		Location:          req.Position,
		Luck:              req.Luck,
		Pity:              pityState,
		Shiny:             binding,
		LifetimeDigs:      st.Progress.LifetimeDigs,
		DigsSinceMutation: st.Progress.DigsSinceMutation,
		DiscoverCounts:    discoveries,
		Overrides:         req.Overrides,
	})
	metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, domain.DigProgress{}, err
	}

	next := st.Progress
	next.PlayerID = req.PlayerID
	next.LifetimeDigs++
	next.DigsSinceMutation = res.DigsSinceMutation
	return res, next, nil
}

func digResult(rec *domain.DigSessionRecord, flags domain.ItemFlags) *domain.DigResult {
	return &domain.DigResult{
		SessionID:        rec.SessionID,
		PlayerID:         rec.PlayerID,
		ItemID:           rec.Item.ID,
		Rarity:           rec.Item.Rarity,
		Location:         rec.Location,
		Weight:           rec.Weight,
		WeightBonus:      rec.Modifiers.WeightBonus,
		XP:               rec.XPReward,
		XPBonus:          rec.Modifiers.XPBonus,
		Gems:             rec.GemReward,
		GemBonus:         rec.Modifiers.GemBonus,
		MutationID:       rec.MutationID,
		ItemFlags:        flags,
		DiscoverCount:    rec.DiscoverCount,
		Difficulty:       rec.Difficulty,
		DifficultyInputs: rec.DifficultyInputs,
	}
}

// publishStart sends the chosen item privately and hands the difficulty to the minigame
func (s *service) publishStart(ctx context.Context, rec *domain.DigSessionRecord, result *domain.DigResult) {
	s.publisher.PublishWithRetry(ctx, event.NewPrivateEvent(event.DigItemChosen, rec.PlayerID,
		domain.DigItemChosenPayload{Recipient: rec.PlayerID, Result: *result}))
	s.publisher.PublishWithRetry(ctx, event.NewPrivateEvent(event.DigMinigameStarted, rec.PlayerID,
		domain.MinigameStartedPayload{
			PlayerID:   rec.PlayerID,
			SessionID:  rec.SessionID.String(),
			ItemID:     rec.Item.ID,
			Difficulty: rec.Difficulty,
			Inputs:     rec.DifficultyInputs,
		}))
}

// scheduleMound publishes a mound lifecycle event after delay, unless the
// player's generation has moved on by then
func (s *service) scheduleMound(rec *domain.DigSessionRecord, eventType event.Type, delay time.Duration) uuid.UUID {
	payload := domain.MoundPayload{
		PlayerID:  rec.PlayerID,
		SessionID: rec.SessionID.String(),
		SlotID:    rec.SlotID,
		Location:  rec.Location,
	}
	tok := sequencer.Token{PlayerID: rec.PlayerID, Generation: rec.Generation}
	return s.seq.After(delay, tok, func(ctx context.Context) error {
		s.publisher.PublishWithRetry(ctx, event.NewPlayerEvent(eventType, payload.PlayerID, payload))
		return nil
	})
}
