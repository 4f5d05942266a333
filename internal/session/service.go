// Package session runs the per-player dig state machine:
// Idle, Eligible, Resolving, AwaitingMinigame, Completed and back to Idle.
// It is the only writer of a player's DigSessionRecord.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/DigSite_Go/internal/concurrency"
	"github.com/osse101/DigSite_Go/internal/dig"
	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/mound"
	"github.com/osse101/DigSite_Go/internal/pity"
	"github.com/osse101/DigSite_Go/internal/progress"
	"github.com/osse101/DigSite_Go/internal/sequencer"
	"github.com/osse101/DigSite_Go/internal/worker"
)

// Service defines the dig session operations
type Service interface {
	QueryCanDig(ctx context.Context, playerID string, pos domain.Position) (*domain.CanDigResult, error)
	StartDig(ctx context.Context, req StartRequest) (*domain.DigResult, error)
	ReportProgress(ctx context.Context, playerID string, progress float64, itemID string) error
	ReportComplete(ctx context.Context, playerID string, success bool, itemID string) (*domain.DigOutcome, error)
	PlayerExit(ctx context.Context, playerID string) error
	LeaveShinySpot(ctx context.Context, playerID string) error
	State(ctx context.Context, playerID string) (Snapshot, error)
	ReapExpired(ctx context.Context) (int, error)
	Shutdown(ctx context.Context) error
}

// StartRequest is a start-dig message from the client
type StartRequest struct {
	PlayerID  string
	Position  domain.Position
	Luck      float64
	Overrides domain.DebugOverrides
}

// Resolver resolves one dig attempt
type Resolver interface {
	Resolve(ctx context.Context, req dig.ResolveRequest) (*dig.Resolution, error)
}

// Catalog is the catalog view the session needs for eligibility checks
type Catalog interface {
	Tool(id string) (*domain.ToolDefinition, bool)
	Buff(id string) (*domain.BuffDefinition, bool)
}

// Players supplies profile snapshots and consumes buffs
type Players interface {
	Profile(ctx context.Context, playerID string) (domain.PlayerProfile, error)
	ConsumeBuffs(ctx context.Context, playerID string, buffIDs []string) error
}

// SpotLocator finds shiny spots by position or id
type SpotLocator interface {
	Closest(pos domain.Position) (*domain.ShinySpot, bool)
	Spot(id string) (*domain.ShinySpot, bool)
}

// Publisher sends outbound events; *event.ResilientPublisher satisfies it
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Deps are the collaborators of the session service
type Deps struct {
	Engine    Resolver
	Catalog   Catalog
	Players   Players
	Pity      pity.Service
	Progress  progress.Store
	Spots     SpotLocator
	Mounds    *mound.Pool
	Workers   *worker.Pool
	Publisher Publisher
}

type service struct {
	cfg       Config
	engine    Resolver
	catalog   Catalog
	players   Players
	pity      pity.Service
	progress  progress.Store
	spots     SpotLocator
	mounds    *mound.Pool
	publisher Publisher
	seq       *sequencer.Sequencer

	table *stateTable
	locks *concurrency.KeyedMutex
	now   func() time.Time
}

// NewService creates the session service. One instance serves a whole world.
func NewService(cfg Config, deps Deps) (Service, error) {
	return newService(cfg, deps)
}

func newService(cfg Config, deps Deps) (*service, error) {
	if deps.Engine == nil || deps.Catalog == nil || deps.Players == nil || deps.Pity == nil ||
		deps.Progress == nil || deps.Spots == nil || deps.Mounds == nil || deps.Workers == nil ||
		deps.Publisher == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingDep)
	}
	if cfg.StreakBonusEvery < 1 {
		cfg.StreakBonusEvery = DefaultStreakBonusEvery
	}

	s := &service{
		cfg:       cfg,
		engine:    deps.Engine,
		catalog:   deps.Catalog,
		players:   deps.Players,
		pity:      deps.Pity,
		progress:  deps.Progress,
		spots:     deps.Spots,
		mounds:    deps.Mounds,
		publisher: deps.Publisher,
		table:     newStateTable(),
		locks:     concurrency.NewKeyedMutex(),
		now:       time.Now,
	}
	s.seq = sequencer.New(deps.Workers, s.isCurrent)
	return s, nil
}

// lockPlayer serializes every operation on one player and returns the unlock func
func (s *service) lockPlayer(playerID string) func() {
	return s.locks.Lock(playerID)
}

// isCurrent is the sequencer guard: a callback is live while the player's
// generation has not moved on
func (s *service) isCurrent(tok sequencer.Token) bool {
	defer s.lockPlayer(tok.PlayerID)()
	st, ok := s.table.get(tok.PlayerID)
	return ok && st.Generation == tok.Generation
}

// loadProgress reads persisted counters the first time a player is seen
func (s *service) loadProgress(ctx context.Context, st *PlayerDigState) error {
	if st.loaded {
		return nil
	}
	p, err := s.progress.Load(ctx, st.PlayerID)
	if err != nil {
		return err
	}
	st.Progress = p
	st.loaded = true
	return nil
}

func (s *service) State(ctx context.Context, playerID string) (Snapshot, error) {
	if playerID == "" {
		return Snapshot{}, fmt.Errorf("%w: player id is required", domain.ErrInvalidInput)
	}
	defer s.lockPlayer(playerID)()
	st, ok := s.table.get(playerID)
	if !ok {
		return Snapshot{PlayerID: playerID, State: domain.DigStateIdle}, nil
	}
	if err := s.loadProgress(ctx, st); err != nil {
		return Snapshot{}, err
	}
	return st.snapshot(), nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoMoundAvailable):
		return FailureReasonNoMound
	case errors.Is(err, domain.ErrEmptyCandidatePool):
		return FailureReasonEmptyPool
	case errors.Is(err, domain.ErrDegenerateWeights):
		return FailureReasonDegenerate
	case errors.Is(err, domain.ErrNotEligible):
		return FailureReasonNotEligible
	case errors.Is(err, domain.ErrInvalidInput):
		return FailureReasonInvalid
	default:
		return FailureReasonOther
	}
}
