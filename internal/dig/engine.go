package dig

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// ItemSource is the catalog view the engine resolves against
type ItemSource interface {
	CandidatePool(toolID string) []*domain.ItemDefinition
	Item(id string) (*domain.ItemDefinition, bool)
	Tool(id string) (*domain.ToolDefinition, bool)
	Buff(id string) (*domain.BuffDefinition, bool)
}

// ResolveRequest is a snapshot of everything one dig attempt depends on.
// The engine reads it and never writes back to player state.
type ResolveRequest struct {
	Profile           domain.PlayerProfile
	Location          domain.Position
	Luck              float64
	Pity              domain.PityState
	Shiny             *domain.ShinySpotBinding
	LifetimeDigs      int
	DigsSinceMutation int
	DiscoverCounts    map[string]int
	Overrides         domain.DebugOverrides
}

// Resolution is the engine's answer for one dig attempt
type Resolution struct {
	Item              *domain.ItemDefinition
	Tool              *domain.ToolDefinition
	RarityWeights     domain.RarityWeightVector
	Luck              float64
	Modifiers         domain.ToolModifiers
	MutationID        string
	DigsSinceMutation int
	Flags             domain.ItemFlags
	CategoryHit       bool
	UsedBuffs         []string
	DiscoverCount     int
	GemReward         int
	XPReward          int
	Weight            float64
	Difficulty        float64
	DifficultyInputs  domain.DifficultyInputs
}

// Engine runs the resolution chain: rarity, category, pity, shiny, selection
// and mutation. One engine is built per world and shared by every session.
type Engine struct {
	cfg       Config
	items     ItemSource
	mutations *mutationRoller

	mu  sync.Mutex
	rnd func() float64
}

// NewEngine builds an engine. rnd must return values in [0, 1); it is
// serialized internally so a non-concurrent seeded source is fine.
func NewEngine(cfg Config, items ItemSource, rnd func() float64) (*Engine, error) {
	if items == nil {
		return nil, fmt.Errorf("%w: item source is required", domain.ErrInvalidInput)
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: random source is required", domain.ErrInvalidInput)
	}
	if len(cfg.Rarity.BaseWeights) != domain.RarityCount {
		return nil, fmt.Errorf("%w: rarity base weights need %d entries", domain.ErrInvalidInput, domain.RarityCount)
	}
	m, err := newMutationRoller(cfg.Mutation)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, items: items, mutations: m, rnd: rnd}, nil
}

// Config returns the engine's tuning
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) roll() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rnd()
}

// Resolve turns a dig request into a chosen item with all of its rolls.
func (e *Engine) Resolve(ctx context.Context, req ResolveRequest) (*Resolution, error) {
	log := logger.FromContext(ctx)

	if req.Profile.PlayerID == "" {
		return nil, fmt.Errorf("%w: player id is required", domain.ErrInvalidInput)
	}
	tool, ok := e.items.Tool(req.Profile.ToolID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrToolNotFound, req.Profile.ToolID)
	}

	buffs, used := e.activeBuffs(ctx, req.Profile.ActiveBuffs)
	luck := req.Luck
	for _, b := range buffs {
		luck += b.LuckBonus
	}
	if math.IsNaN(luck) || math.IsInf(luck, 0) || luck < 0 {
		return nil, fmt.Errorf("%w: luck must be a non-negative number", domain.ErrInvalidInput)
	}

	overrides := e.effectiveOverrides(ctx, req.Overrides)

	pool := e.items.CandidatePool(tool.ID)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: tool %s", domain.ErrEmptyCandidatePool, tool.ID)
	}

	res := &Resolution{Tool: tool, Luck: luck, UsedBuffs: used}
	item, err := e.chooseItem(ctx, req, tool, pool, buffs, luck, overrides, res)
	if err != nil {
		return nil, err
	}
	res.Item = item

	res.Modifiers = RollAbilities(tool, e.roll)

	mut := e.mutations.Roll(MutationInputs{
		LifetimeDigs:      req.LifetimeDigs,
		DigsSinceMutation: req.DigsSinceMutation,
		ForcedMutation:    overrides.ForcedMutation,
	}, e.roll)
	res.MutationID = mut.MutationID
	res.DigsSinceMutation = mut.DigsSinceMutation

	res.DiscoverCount = req.DiscoverCounts[item.ID]
	res.GemReward = GemReward(item, res.DiscoverCount, e.cfg.Rewards.GemDiscoverInterval, res.Modifiers.GemBonus)
	res.XPReward = XPReward(e.cfg.Rewards, item.Rarity, res.Modifiers.XPBonus)
	res.Weight = DugWeight(item, e.cfg.Rewards.WeightSpread, res.Modifiers.WeightBonus, e.roll())

	res.DifficultyInputs = domain.DifficultyInputs{
		Toughness: item.Toughness,
		ToolStar:  tool.Star,
		ZoneLevel: req.Profile.ZoneLevel,
		Rarity:    item.Rarity,
	}
	res.Difficulty = Difficulty(e.cfg.Difficulty, res.DifficultyInputs)

	res.Flags.FirstDiscovery = res.DiscoverCount == 0
	res.Flags.Mutated = mut.Mutated()

	log.Debug(LogMsgResolved,
		LogFieldPlayerID, req.Profile.PlayerID,
		LogFieldItemID, item.ID,
		LogFieldRarity, item.Rarity.String(),
		LogFieldMutationID, res.MutationID,
		LogFieldLuck, luck)

	return res, nil
}

func (e *Engine) chooseItem(ctx context.Context, req ResolveRequest, tool *domain.ToolDefinition, pool []*domain.ItemDefinition,
	buffs []*domain.BuffDefinition, luck float64, overrides domain.DebugOverrides, res *Resolution) (*domain.ItemDefinition, error) {
	log := logger.FromContext(ctx)

	if overrides.ForcedItemID != "" {
		item, ok := e.items.Item(overrides.ForcedItemID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, overrides.ForcedItemID)
		}
		if !item.AllowsTool(tool.ID) {
			return nil, fmt.Errorf("%w: forced item %s cannot be dug with %s", domain.ErrInvalidInput, item.ID, tool.ID)
		}
		return item, nil
	}

	if starter := e.cfg.Mutation.Onboarding.StarterItemID; starter != "" && req.LifetimeDigs == 0 {
		if item, ok := e.items.Item(starter); ok && item.AllowsTool(tool.ID) {
			res.Flags.Starter = true
			return item, nil
		}
		log.Warn(LogMsgStarterMissing, LogFieldItemID, starter, LogFieldToolID, tool.ID)
	}

	weights := CalculateRarityWeights(e.cfg.Rarity, RarityInputs{
		ToolStar:     tool.Star,
		ZoneLevel:    req.Profile.ZoneLevel,
		Luck:         luck,
		Buffs:        buffs,
		ForcedRarity: overrides.ForcedRarity,
	})
	res.RarityWeights = weights
	if weights.Sum() <= 0 {
		return nil, domain.ErrDegenerateWeights
	}
	multipliers := categoryMultipliers(buffs)

	if forced := overrides.Rarity(); forced.Valid() {
		var restricted []*domain.ItemDefinition
		for _, it := range pool {
			if it.Rarity == forced {
				restricted = append(restricted, it)
			}
		}
		if len(restricted) == 0 {
			return nil, fmt.Errorf("%w: no %s items for tool %s", domain.ErrEmptyCandidatePool, forced, tool.ID)
		}
		return SelectItem(restricted, ItemWeights(restricted, weights, multipliers), e.roll())
	}

	if bias := ToolCategoryBias(tool); !bias.IsZero() {
		pool, res.CategoryHit = ApplyCategoryBias(pool, ItemWeights(pool, weights, multipliers), bias, e.roll())
	}

	pool, res.Flags.PityForced = ApplyPity(pool, req.Pity)

	if !res.Flags.PityForced && req.Shiny != nil {
		target, ok := e.items.Item(req.Shiny.ItemID)
		if !ok {
			log.Error(LogMsgShinyTargetMissing, LogFieldSpotID, req.Shiny.SpotID, LogFieldItemID, req.Shiny.ItemID)
			target = nil
		}
		pool, res.Flags.ShinySpot = ApplyShiny(pool, req.Shiny, target, tool.ID, luck, e.roll())
	}

	if len(pool) == 1 && (res.Flags.PityForced || res.Flags.ShinySpot) {
		return pool[0], nil
	}

	itemWeights := ItemWeights(pool, weights, multipliers)
	item, err := SelectItem(pool, itemWeights, e.roll())
	if err != nil && res.Flags.PityForced && len(pool) > 0 {
		log.Warn(LogMsgPityUniform, LogFieldPlayerID, req.Profile.PlayerID)
		idx := int(e.roll() * float64(len(pool)))
		if idx >= len(pool) {
			idx = len(pool) - 1
		}
		return pool[idx], nil
	}
	return item, err
}

// activeBuffs resolves active buff ids; unknown buffs are logged and skipped
func (e *Engine) activeBuffs(ctx context.Context, ids []string) ([]*domain.BuffDefinition, []string) {
	if len(ids) == 0 {
		return nil, nil
	}
	buffs := make([]*domain.BuffDefinition, 0, len(ids))
	used := make([]string, 0, len(ids))
	for _, id := range ids {
		b, ok := e.items.Buff(id)
		if !ok {
			logger.FromContext(ctx).Error(LogMsgBuffMissing, LogFieldBuffID, id)
			continue
		}
		buffs = append(buffs, b)
		used = append(used, id)
	}
	return buffs, used
}

func (e *Engine) effectiveOverrides(ctx context.Context, o domain.DebugOverrides) domain.DebugOverrides {
	if o.IsZero() {
		return domain.DebugOverrides{}
	}
	log := logger.FromContext(ctx)
	if !e.cfg.AllowDebugOverrides {
		log.Warn(LogMsgOverridesIgnored,
			"forced_rarity", int(o.Rarity()),
			"forced_mutation", o.ForcedMutation,
			"forced_item_id", o.ForcedItemID)
		return domain.DebugOverrides{}
	}
	log.Info(LogMsgOverridesApplied,
		"forced_rarity", int(o.Rarity()),
		"forced_mutation", o.ForcedMutation,
		"forced_item_id", o.ForcedItemID)
	return o
}

func categoryMultipliers(buffs []*domain.BuffDefinition) map[string]float64 {
	var out map[string]float64
	for _, b := range buffs {
		if b.Category == "" || b.CategoryMultiplier <= 0 {
			continue
		}
		if out == nil {
			out = make(map[string]float64)
		}
		if cur, ok := out[b.Category]; ok {
			out[b.Category] = cur * b.CategoryMultiplier
		} else {
			out[b.Category] = b.CategoryMultiplier
		}
	}
	return out
}
