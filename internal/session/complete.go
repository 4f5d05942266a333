package session

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/logger"
	"github.com/osse101/DigSite_Go/internal/metrics"
)

// activeRecord returns the player's open record after checking the reported item
func activeRecord(st *PlayerDigState, ok bool, itemID string) (*domain.DigSessionRecord, error) {
	if !ok || st.Record == nil {
		return nil, domain.ErrNoActiveDig
	}
	if itemID != st.Record.Item.ID {
		return nil, fmt.Errorf(ErrFmtItemMismatch, domain.ErrItemMismatch, st.Record.Item.ID, itemID)
	}
	return st.Record, nil
}

// ReportProgress records minigame progress. Progress only moves forward.
func (s *service) ReportProgress(ctx context.Context, playerID string, progress float64, itemID string) error {
	if math.IsNaN(progress) || progress < 0 || progress > 1 {
		return fmt.Errorf("%w: progress must be within [0, 1]", domain.ErrInvalidInput)
	}

	defer s.lockPlayer(playerID)()
	st, ok := s.table.get(playerID)
	rec, err := activeRecord(st, ok, itemID)
	if err != nil {
		return err
	}
	rec.Progress = math.Max(rec.Progress, progress)
	st.UpdatedAt = s.now()
	return nil
}

// ReportComplete finalizes the player's dig. Success grants the stored rewards
// and advances the streak; failure resets the streak and grants nothing.
// The record is discarded either way.
func (s *service) ReportComplete(ctx context.Context, playerID string, success bool, itemID string) (*domain.DigOutcome, error) {
	log := logger.FromContext(ctx).With(LogFieldPlayerID, playerID)

	defer s.lockPlayer(playerID)()
	st, ok := s.table.get(playerID)
	rec, err := activeRecord(st, ok, itemID)
	if err != nil {
		return nil, err
	}
	st.State = domain.DigStateCompleted

	outcome := &domain.DigOutcome{PlayerID: playerID, ItemID: rec.Item.ID, Success: success}

	next := st.Progress
	var streakBonus int
	if success {
		next.Streak++
		if next.Streak%s.cfg.StreakBonusEvery == 0 {
			streakBonus = s.streakBonusGems(rec.Modifiers)
		}
	} else {
		next.Streak = 0
	}
	if err := s.progress.Save(ctx, next); err != nil {
		st.State = domain.DigStateAwaitingMinigame
		log.Error(LogMsgProgressSaveFailed, LogFieldError, err)
		return nil, err
	}
	st.Progress = next
	outcome.Streak = next.Streak

	var obtained *domain.ItemDefinition
	if success {
		obtained = rec.Item
		s.grantRewards(ctx, rec, outcome)
		if streakBonus > 0 {
			outcome.StreakBonusGems = streakBonus
			s.publisher.PublishWithRetry(ctx, event.NewPlayerEvent(event.CurrencyDelta, playerID,
				domain.CurrencyDeltaPayload{PlayerID: playerID, Gems: streakBonus, Source: SourceDigStreak}))
			s.publisher.PublishWithRetry(ctx, event.NewPlayerEvent(event.DigStreakBonus, playerID,
				domain.StreakBonusPayload{
					PlayerID: playerID,
					Streak:   next.Streak,
					Gems:     streakBonus,
					Boosted:  rec.Modifiers.StreakTriggered,
				}))
		}
	}

	consumed, err := s.pity.RecordDig(ctx, playerID, obtained, rec.PityForced)
	if err != nil {
		log.Error(LogMsgPityRecordFailed, LogFieldError, err)
	}
	if consumed {
		outcome.PityConsumed = true
		ps, err := s.pity.State(ctx, playerID)
		if err != nil {
			log.Error(LogMsgPityStateFailed, LogFieldError, err)
		}
		s.publisher.PublishWithRetry(ctx, event.NewPlayerEvent(event.PityConsumed, playerID,
			domain.PityConsumedPayload{PlayerID: playerID, ItemID: rec.Item.ID, Objective: ps.Objective}))
	}

	s.endSession(st, rec)
	s.scheduleMound(rec, event.DigMoundLowered, s.cfg.MoundLowerDelay)

	s.publisher.PublishWithRetry(ctx, event.NewPlayerEvent(event.DigCompleted, playerID,
		domain.DigCompletedPayload{Outcome: *outcome, Rarity: rec.Item.Rarity}))

	log.Info(LogMsgDigCompleted,
		LogFieldSessionID, rec.SessionID,
		LogFieldItemID, rec.Item.ID,
		LogFieldSuccess, success,
		LogFieldStreak, outcome.Streak)
	return outcome, nil
}

// grantRewards publishes the stored rewards of a successful dig
func (s *service) grantRewards(ctx context.Context, rec *domain.DigSessionRecord, outcome *domain.DigOutcome) {
	log := logger.FromContext(ctx)
	playerID := rec.PlayerID

	if err := s.players.ConsumeBuffs(ctx, playerID, rec.UsedBuffs); err != nil {
		log.Warn(LogMsgBuffConsumeFailed, LogFieldPlayerID, playerID, LogFieldError, err)
	}

	s.publisher.PublishWithRetry(ctx, event.NewPlayerEvent(event.InventoryGrant, playerID,
		domain.InventoryGrantPayload{
			PlayerID:   playerID,
			ItemID:     rec.Item.ID,
			MutationID: rec.MutationID,
			Weight:     rec.Weight,
		}))

	if rec.GemReward > 0 {
		outcome.GemsAwarded = rec.GemReward
		s.publisher.PublishWithRetry(ctx, event.NewPlayerEvent(event.CurrencyDelta, playerID,
			domain.CurrencyDeltaPayload{PlayerID: playerID, Gems: rec.GemReward, Source: SourceDig}))
	}
	if rec.XPReward > 0 {
		outcome.XPAwarded = rec.XPReward
		s.publisher.PublishWithRetry(ctx, event.NewPlayerEvent(event.ExperienceDelta, playerID,
			domain.ExperienceDeltaPayload{PlayerID: playerID, XP: rec.XPReward, Source: SourceDig}))
	}

	if rec.Item.Rarity >= s.cfg.AnnounceThreshold {
		outcome.Announced = true
		s.publisher.PublishWithRetry(ctx, event.NewWorldEvent(event.DigRareFindAnnounce,
			domain.RareFindPayload{
				PlayerID:    playerID,
				ItemID:      rec.Item.ID,
				DisplayName: rec.Item.DisplayName,
				Rarity:      rec.Item.Rarity,
				RarityName:  rec.Item.Rarity.String(),
				MutationID:  rec.MutationID,
			}))
	}
}

// streakBonusGems applies the tool's streak ability to the configured bonus
func (s *service) streakBonusGems(mods domain.ToolModifiers) int {
	gems := float64(s.cfg.StreakBonusGems)
	if mods.StreakTriggered {
		gems *= 1 + mods.StreakBonus
	}
	return int(math.Round(gems))
}

// endSession discards the record, frees its slot and returns the player to Idle.
// The generation is left alone so the mound-lowered callback still runs.
func (s *service) endSession(st *PlayerDigState, rec *domain.DigSessionRecord) {
	s.seq.Cancel(st.riseTask)
	s.mounds.Release(rec.SlotID, rec.PlayerID)
	st.Record = nil
	st.Binding = nil
	st.State = domain.DigStateIdle
	st.UpdatedAt = s.now()

	metrics.ActiveSessions.Dec()
	metrics.MoundSlotsInUse.Set(float64(s.mounds.InUse()))
}
