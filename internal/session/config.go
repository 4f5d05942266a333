package session

import (
	"time"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// Config tunes session side effects
type Config struct {
	// AnnounceThreshold is the lowest rarity announced to the whole world
	AnnounceThreshold domain.RarityClass `yaml:"announce_threshold" validate:"gte=0,lte=5"`
	// StreakBonusEvery grants a bonus every Nth consecutive successful dig
	StreakBonusEvery int `yaml:"streak_bonus_every" validate:"gte=1"`
	StreakBonusGems  int `yaml:"streak_bonus_gems" validate:"gte=0"`

	MoundRiseDelay  time.Duration `yaml:"mound_rise_delay" validate:"gte=0"`
	MoundLowerDelay time.Duration `yaml:"mound_lower_delay" validate:"gte=0"`
	// SessionTimeout abandons digs whose minigame never reports back and
	// evicts Idle states left untouched that long
	SessionTimeout time.Duration `yaml:"session_timeout" validate:"gte=0"`
}

// DefaultConfig returns the shipped session tuning
func DefaultConfig() Config {
	return Config{
		AnnounceThreshold: DefaultAnnounceThreshold,
		StreakBonusEvery:  DefaultStreakBonusEvery,
		StreakBonusGems:   DefaultStreakBonusGems,
		MoundRiseDelay:    DefaultMoundRiseDelay,
		MoundLowerDelay:   DefaultMoundLowerDelay,
		SessionTimeout:    DefaultSessionTimeout,
	}
}
