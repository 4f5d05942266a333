package pity

import (
	"context"
	"fmt"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// Config tunes pity saturation
type Config struct {
	Threshold int `yaml:"threshold" validate:"gte=1"`
}

// Service tracks unlucky digs per player and reports when pity is owed
type Service interface {
	// State returns the player's pity state; Saturated once the counter reaches the threshold
	State(ctx context.Context, playerID string) (domain.PityState, error)
	// RecordDig updates the counter after a finalized dig. obtained is nil when
	// the dig failed. It reports whether a pity-forced drop was consumed.
	RecordDig(ctx context.Context, playerID string, obtained *domain.ItemDefinition, forced bool) (bool, error)
	SetObjective(ctx context.Context, playerID string, objective domain.PityObjective) error
	// HandleQuestStateChanged applies quest objective updates from the event bus
	HandleQuestStateChanged(ctx context.Context, evt event.Event) error
}

type service struct {
	repo      Repository
	threshold int
}

// NewService creates a pity service
func NewService(repo Repository, cfg Config) Service {
	threshold := cfg.Threshold
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	return &service{repo: repo, threshold: threshold}
}

// Register subscribes the service to quest objective updates
func Register(bus event.Bus, svc Service) {
	bus.Subscribe(event.QuestStateChange, svc.HandleQuestStateChanged)
}

func (s *service) State(ctx context.Context, playerID string) (domain.PityState, error) {
	rec, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return domain.PityState{}, err
	}
	return domain.PityState{
		Counter:   rec.Counter,
		Saturated: !rec.Objective.IsZero() && rec.Counter >= s.threshold,
		Objective: rec.Objective,
	}, nil
}

func (s *service) RecordDig(ctx context.Context, playerID string, obtained *domain.ItemDefinition, forced bool) (bool, error) {
	log := logger.FromContext(ctx)

	rec, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return false, err
	}
	if rec.Objective.IsZero() {
		return false, nil
	}

	if rec.Objective.SatisfiedBy(obtained) {
		if err := s.repo.Reset(ctx, playerID); err != nil {
			return false, err
		}
		if forced {
			log.Info(LogMsgPityConsumed, LogFieldPlayerID, playerID, LogFieldItemID, obtained.ID)
			return true, nil
		}
		log.Debug(LogMsgPityReset, LogFieldPlayerID, playerID, LogFieldItemID, obtained.ID)
		return false, nil
	}

	counter, err := s.repo.Increment(ctx, playerID)
	if err != nil {
		return false, err
	}
	log.Debug(LogMsgCounterAdvanced, LogFieldPlayerID, playerID, LogFieldCounter, counter)
	return false, nil
}

func (s *service) SetObjective(ctx context.Context, playerID string, objective domain.PityObjective) error {
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", domain.ErrInvalidInput)
	}
	if err := s.repo.SetObjective(ctx, playerID, objective); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgObjectiveUpdated,
		LogFieldPlayerID, playerID,
		LogFieldItemID, objective.ItemID,
		LogFieldCategory, objective.Category)
	return nil
}

func (s *service) HandleQuestStateChanged(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.QuestStateChangedPayload](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgDecodeQuestEvent, err)
	}
	return s.SetObjective(ctx, payload.PlayerID, payload.Objective)
}
