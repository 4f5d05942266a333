package dig

// MutationStrategy selects how the mutation roller decides to fire
type MutationStrategy string

const (
	MutationPeriodic           MutationStrategy = "periodic"
	MutationChance             MutationStrategy = "chance"
	MutationChanceWithCooldown MutationStrategy = "chance_with_cooldown"
)

// Config is the static tuning of the resolution engine. It is loaded once and
// never changed while the engine is running.
type Config struct {
	Rarity     RarityConfig     `yaml:"rarity" validate:"required"`
	Mutation   MutationConfig   `yaml:"mutation" validate:"required"`
	Rewards    RewardsConfig    `yaml:"rewards" validate:"required"`
	Difficulty DifficultyConfig `yaml:"difficulty" validate:"required"`

	// AllowDebugOverrides comes from the process environment, not the tuning file
	AllowDebugOverrides bool `yaml:"-"`
}

// RarityConfig shapes the progression curve of the rarity weight vector
type RarityConfig struct {
	BaseWeights []float64 `yaml:"base_weights" validate:"len=6,dive,gte=0"`
	StarFactor  float64   `yaml:"star_factor" validate:"gte=0"`
	ZoneFactor  float64   `yaml:"zone_factor" validate:"gte=0"`
	Steepness   float64   `yaml:"steepness" validate:"gte=0"`
}

// MutationEntry is one weighted row of the mutation table
type MutationEntry struct {
	ID     string  `yaml:"id" validate:"required"`
	Weight float64 `yaml:"weight" validate:"gt=0"`
}

// OnboardingConfig holds the first-digs guarantees
type OnboardingConfig struct {
	StarterItemID     string `yaml:"starter_item_id"`
	ForcedMutationDig int    `yaml:"forced_mutation_dig" validate:"gte=0"`
	ForcedMutationID  string `yaml:"forced_mutation_id"`
}

// MutationConfig configures the mutation roller
type MutationConfig struct {
	Strategy     MutationStrategy `yaml:"strategy" validate:"required,oneof=periodic chance chance_with_cooldown"`
	Every        int              `yaml:"every" validate:"gte=0"`
	Chance       float64          `yaml:"chance" validate:"gte=0,lte=1"`
	Cooldown     int              `yaml:"cooldown" validate:"gte=0"`
	ChanceGrowth float64          `yaml:"chance_growth" validate:"gte=0"`
	Table        []MutationEntry  `yaml:"table" validate:"required,min=1,dive"`
	Onboarding   OnboardingConfig `yaml:"onboarding"`
}

// RewardsConfig configures gem, xp and dug weight rewards
type RewardsConfig struct {
	GemDiscoverInterval int     `yaml:"gem_discover_interval" validate:"gte=1"`
	XPByRarity          []int   `yaml:"xp_by_rarity" validate:"len=6,dive,gte=0"`
	WeightSpread        float64 `yaml:"weight_spread" validate:"gte=0,lt=1"`
}

// DifficultyConfig maps item and player progression to the minigame difficulty
type DifficultyConfig struct {
	RarityFactor float64 `yaml:"rarity_factor" validate:"gte=0"`
	ZoneFactor   float64 `yaml:"zone_factor" validate:"gte=0"`
	StarFactor   float64 `yaml:"star_factor" validate:"gte=0"`
	Min          float64 `yaml:"min" validate:"gte=0"`
	Max          float64 `yaml:"max" validate:"gtefield=Min"`
}

// DefaultConfig returns tuning that works without a tuning file
func DefaultConfig() Config {
	return Config{
		Rarity: RarityConfig{
			BaseWeights: []float64{60, 25, 10, 4, 0.9, 0.1},
			StarFactor:  0.15,
			ZoneFactor:  0.1,
			Steepness:   0.5,
		},
		Mutation: MutationConfig{
			Strategy:     MutationChanceWithCooldown,
			Every:        20,
			Chance:       0.05,
			Cooldown:     10,
			ChanceGrowth: 0.01,
			Table: []MutationEntry{
				{ID: "golden", Weight: 1},
				{ID: "crystal", Weight: 2},
				{ID: "rusty", Weight: 4},
			},
			Onboarding: OnboardingConfig{
				StarterItemID:     "",
				ForcedMutationDig: 0,
			},
		},
		Rewards: RewardsConfig{
			GemDiscoverInterval: 5,
			XPByRarity:          []int{5, 10, 20, 40, 80, 160},
			WeightSpread:        0.25,
		},
		Difficulty: DifficultyConfig{
			RarityFactor: 0.2,
			ZoneFactor:   0.05,
			StarFactor:   0.1,
			Min:          0.5,
			Max:          10,
		},
	}
}
