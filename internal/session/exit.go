package session

import (
	"context"
	"time"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// PlayerExit drops everything the session machine holds for a departing
// player. A pending dig is discarded without reward and its slot released.
func (s *service) PlayerExit(ctx context.Context, playerID string) error {
	defer s.lockPlayer(playerID)()
	st, ok := s.table.get(playerID)
	if !ok {
		return nil
	}
	if st.Record != nil {
		s.abandon(ctx, st, AbandonReasonExit)
	}
	// bump so any callback still in flight sees a stale token
	st.Generation = s.table.nextGeneration()
	s.table.remove(playerID)
	return nil
}

// abandon discards the open record without reward
func (s *service) abandon(ctx context.Context, st *PlayerDigState, reason string) {
	rec := st.Record
	s.endSession(st, rec)
	st.Generation = s.table.nextGeneration()

	s.publisher.PublishWithRetry(ctx, event.NewPlayerEvent(event.DigAbandoned, rec.PlayerID,
		domain.DigAbandonedPayload{PlayerID: rec.PlayerID, ItemID: rec.Item.ID, Reason: reason}))

	logger.FromContext(ctx).Info(LogMsgDigAbandoned,
		LogFieldPlayerID, rec.PlayerID,
		LogFieldSessionID, rec.SessionID,
		LogFieldReason, reason)
}

// LeaveShinySpot clears the shiny binding of an Eligible player.
// An open dig already captured its binding and is unaffected.
func (s *service) LeaveShinySpot(ctx context.Context, playerID string) error {
	defer s.lockPlayer(playerID)()
	st, ok := s.table.get(playerID)
	if !ok || st.Record != nil || st.Binding == nil {
		return nil
	}
	logger.FromContext(ctx).Debug(LogMsgShinyBindingClear,
		LogFieldPlayerID, playerID, LogFieldSpotID, st.Binding.SpotID)
	st.Binding = nil
	return nil
}

// ReapExpired abandons digs that have waited longer than the session
// timeout for their minigame. It returns how many were abandoned.
func (s *service) ReapExpired(ctx context.Context) (int, error) {
	if s.cfg.SessionTimeout <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.cfg.SessionTimeout)

	reaped, evicted := 0, 0
	for _, id := range s.table.playerIDs() {
		switch s.reapOne(ctx, id, cutoff) {
		case reapAbandoned:
			reaped++
		case reapEvicted:
			evicted++
		}
	}
	log := logger.FromContext(ctx)
	if reaped > 0 {
		log.Info(LogMsgSessionsReaped, LogFieldCount, reaped)
	}
	if evicted > 0 {
		log.Debug(LogMsgIdleStatesEvicted, LogFieldCount, evicted)
	}
	return reaped, nil
}

type reapOutcome int

const (
	reapKept reapOutcome = iota
	reapAbandoned
	reapEvicted
)

// reapOne abandons an expired dig, or drops an Idle state nobody has
// touched since cutoff. Persisted counters reload on next use.
func (s *service) reapOne(ctx context.Context, playerID string, cutoff time.Time) reapOutcome {
	defer s.lockPlayer(playerID)()
	st, ok := s.table.get(playerID)
	switch {
	case !ok:
		return reapKept
	case st.Record != nil:
		if st.Record.StartedAt.After(cutoff) {
			return reapKept
		}
		s.abandon(ctx, st, AbandonReasonTimeout)
		return reapAbandoned
	case st.State == domain.DigStateIdle && !st.UpdatedAt.After(cutoff):
		s.table.remove(playerID)
		return reapEvicted
	}
	return reapKept
}

// Shutdown stops scheduled callbacks. Open records are left for the process to drop.
func (s *service) Shutdown(ctx context.Context) error {
	active := 0
	for _, id := range s.table.playerIDs() {
		unlock := s.lockPlayer(id)
		if st, ok := s.table.get(id); ok && st.Record != nil {
			active++
		}
		unlock()
	}
	logger.FromContext(ctx).Info(LogMsgShuttingDown, LogFieldCount, active)
	return s.seq.Shutdown(ctx)
}
