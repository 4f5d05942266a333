package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DigSite_Go/internal/catalog"
	"github.com/osse101/DigSite_Go/internal/dig"
	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/event"
	"github.com/osse101/DigSite_Go/internal/mound"
	"github.com/osse101/DigSite_Go/internal/pity"
	"github.com/osse101/DigSite_Go/internal/player"
	"github.com/osse101/DigSite_Go/internal/progress"
	"github.com/osse101/DigSite_Go/internal/sequencer"
	"github.com/osse101/DigSite_Go/internal/shiny"
	"github.com/osse101/DigSite_Go/internal/worker"
)

// MockResolver is a testify mock of Resolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, req dig.ResolveRequest) (*dig.Resolution, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dig.Resolution), args.Error(1)
}

// recordingPublisher captures published events and forwards them to a bus
type recordingPublisher struct {
	mu     sync.Mutex
	bus    event.Bus
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.mu.Lock()
	p.events = append(p.events, evt)
	p.mu.Unlock()
	if p.bus != nil {
		_ = p.bus.Publish(ctx, evt)
	}
}

func (p *recordingPublisher) ofType(t event.Type) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []event.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

func testCatalogConfig() *catalog.Config {
	return &catalog.Config{
		Items: []domain.ItemDefinition{
			{ID: "pebble", Rarity: domain.RarityCommon, Category: "rock", Toughness: 1, BaseWeight: 0.2},
			{ID: "old_boot", Rarity: domain.RarityCommon, Category: "junk", Toughness: 1, BaseWeight: 0.8, BaseGems: 1},
			{ID: "amber", Rarity: domain.RarityRare, Category: "gem", Toughness: 3, BaseWeight: 0.1, BaseGems: 5},
			{ID: "trilobite", Rarity: domain.RarityEpic, Category: "fossil", Toughness: 5, BaseWeight: 1.5, BaseGems: 12},
			{ID: "dino_bone", Rarity: domain.RarityLegendary, Category: "fossil", Toughness: 7, RequiredTools: []string{"iron_shovel"}, BaseWeight: 12, BaseGems: 25},
		},
		Tools: []domain.ToolDefinition{
			{ID: "wood_shovel", Star: 0},
			{ID: "iron_shovel", Star: 3, Abilities: []domain.ToolAbility{
				{Kind: domain.AbilityStreakBonus, Chance: 1, Magnitude: 1},
			}},
		},
		Buffs: []domain.BuffDefinition{
			{ID: "lucky_tea", LuckBonus: 0.5},
			{ID: "lucky_stew", LuckBonus: 1.5},
			{ID: "fossil_oil", Category: "fossil", CategoryMultiplier: 3},
		},
		ShinySpots: []domain.ShinySpot{
			{ID: "creek", ItemID: "amber", Position: domain.Position{X: 100}, Radius: 3, BaseChance: 0.5, LuckExponent: 1, MaxChance: 1},
			{ID: "quarry", ItemID: "dino_bone", Position: domain.Position{X: 200}, Radius: 3, RequiredTools: []string{"iron_shovel"}, StarRequirement: 3, BaseChance: 0.2},
		},
	}
}

type harness struct {
	svc      *service
	engine   *MockResolver
	catalog  *catalog.Catalog
	players  *player.Directory
	pity     pity.Service
	progress progress.Store
	mounds   *mound.Pool
	pub      *recordingPublisher
	clock    *fakeClock
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MoundRiseDelay = 0
	cfg.MoundLowerDelay = 0
	return cfg
}

func newHarness(t *testing.T, cfg Config, slots int) *harness {
	t.Helper()
	return newHarnessWithResolver(t, cfg, slots, nil)
}

// newHarnessWithResolver builds a service; a nil resolver installs a MockResolver
func newHarnessWithResolver(t *testing.T, cfg Config, slots int, resolver Resolver) *harness {
	t.Helper()
	cat, err := catalog.New(testCatalogConfig())
	require.NoError(t, err)

	workers := worker.NewPool(2, 64)
	workers.Start()
	t.Cleanup(workers.Stop)

	bus := event.NewMemoryBus()
	h := &harness{
		catalog:  cat,
		players:  player.NewDirectory(),
		pity:     pity.NewService(pity.NewMemoryRepository(), pity.Config{Threshold: 2}),
		progress: progress.NewMemoryStore(),
		mounds:   mound.NewPool(slots),
		pub:      &recordingPublisher{bus: bus},
		clock:    &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
	}
	player.Register(bus, h.players, player.NewCollectionLedger(h.progress))

	if resolver == nil {
		h.engine = new(MockResolver)
		resolver = h.engine
	}

	svc, err := newService(cfg, Deps{
		Engine:    resolver,
		Catalog:   cat,
		Players:   h.players,
		Pity:      h.pity,
		Progress:  h.progress,
		Spots:     shiny.NewRegistry(cat.Spots()),
		Mounds:    h.mounds,
		Workers:   workers,
		Publisher: h.pub,
	})
	require.NoError(t, err)
	svc.now = h.clock.Now
	h.svc = svc
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = svc.Shutdown(ctx)
	})
	return h
}

func (h *harness) addPlayer(t *testing.T, p domain.PlayerProfile) {
	t.Helper()
	if p.ToolID == "" {
		p.ToolID = "wood_shovel"
	}
	if p.InventoryFree == 0 {
		p.InventoryFree = 10
	}
	require.NoError(t, h.players.Upsert(context.Background(), p))
}

func (h *harness) item(t *testing.T, id string) *domain.ItemDefinition {
	t.Helper()
	it, ok := h.catalog.Item(id)
	require.True(t, ok, "item %s", id)
	return it
}

// resolveTo makes the mock engine return item for the next call
func (h *harness) resolveTo(item *domain.ItemDefinition, edit ...func(*dig.Resolution)) *mock.Call {
	res := &dig.Resolution{
		Item:              item,
		GemReward:         5,
		XPReward:          20,
		Weight:            1.25,
		DigsSinceMutation: 1,
		Difficulty:        2,
		DifficultyInputs:  domain.DifficultyInputs{Toughness: item.Toughness, Rarity: item.Rarity},
	}
	for _, e := range edit {
		e(res)
	}
	return h.engine.On("Resolve", mock.Anything, mock.Anything).Return(res, nil).Once()
}

func tokenFor(playerID string, gen uint64) sequencer.Token {
	return sequencer.Token{PlayerID: playerID, Generation: gen}
}
