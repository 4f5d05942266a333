package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// Sentinel errors for catalog loading
var (
	ErrDuplicateID   = errors.New("duplicate id")
	ErrInvalidConfig = errors.New("invalid catalog configuration")
)

// Config is the on-disk layout of the dig catalog
type Config struct {
	Version     string                  `json:"version"`
	Description string                  `json:"description"`
	Items       []domain.ItemDefinition `json:"items"`
	Tools       []domain.ToolDefinition `json:"tools"`
	Buffs       []domain.BuffDefinition `json:"buffs"`
	ShinySpots  []domain.ShinySpot      `json:"shiny_spots"`
}

// LoadConfig reads and parses a dig catalog JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFailed, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFailed, err)
	}
	return &cfg, nil
}

// Validate checks every entry with struct tags and cross references between entries.
// Missing display names are filled in from the id.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgCatalogNil)
	}
	if len(cfg.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}
	if len(cfg.Tools) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoToolsDefined)
	}

	v := validator.New()
	title := cases.Title(language.English)

	tools := make(map[string]bool, len(cfg.Tools))
	for i := range cfg.Tools {
		t := &cfg.Tools[i]
		if err := v.Struct(t); err != nil {
			return fmt.Errorf(ErrFmtInvalidEntry, ErrInvalidConfig, "tool", t.ID, err)
		}
		if tools[t.ID] {
			return fmt.Errorf(ErrFmtDuplicateID, ErrDuplicateID, "tool", t.ID)
		}
		tools[t.ID] = true
		if a, ok := t.Ability(domain.AbilityCategoryBias); ok {
			if a.Category == "" || a.Magnitude < 0 || a.Magnitude > 1 {
				return fmt.Errorf(ErrFmtCategoryBias, ErrInvalidConfig, t.ID, a.Category, a.Magnitude)
			}
		}
	}

	items := make(map[string]bool, len(cfg.Items))
	for i := range cfg.Items {
		it := &cfg.Items[i]
		if !it.Rarity.Valid() {
			return fmt.Errorf(ErrFmtUnknownRarity, ErrInvalidConfig, it.ID, it.Rarity)
		}
		if err := v.Struct(it); err != nil {
			return fmt.Errorf(ErrFmtInvalidEntry, ErrInvalidConfig, "item", it.ID, err)
		}
		if items[it.ID] {
			return fmt.Errorf(ErrFmtDuplicateID, ErrDuplicateID, "item", it.ID)
		}
		items[it.ID] = true
		for _, req := range it.RequiredTools {
			if !tools[req] {
				return fmt.Errorf(ErrFmtUnknownRequiredTo, ErrInvalidConfig, it.ID, req)
			}
		}
		if it.DisplayName == "" {
			it.DisplayName = displayNameFromID(title, it.ID)
		}
	}

	buffs := make(map[string]bool, len(cfg.Buffs))
	for i := range cfg.Buffs {
		b := &cfg.Buffs[i]
		if err := v.Struct(b); err != nil {
			return fmt.Errorf(ErrFmtInvalidEntry, ErrInvalidConfig, "buff", b.ID, err)
		}
		if buffs[b.ID] {
			return fmt.Errorf(ErrFmtDuplicateID, ErrDuplicateID, "buff", b.ID)
		}
		buffs[b.ID] = true
	}

	spots := make(map[string]bool, len(cfg.ShinySpots))
	for i := range cfg.ShinySpots {
		s := &cfg.ShinySpots[i]
		if err := v.Struct(s); err != nil {
			return fmt.Errorf(ErrFmtInvalidEntry, ErrInvalidConfig, "shiny spot", s.ID, err)
		}
		if spots[s.ID] {
			return fmt.Errorf(ErrFmtDuplicateID, ErrDuplicateID, "shiny spot", s.ID)
		}
		spots[s.ID] = true
		if !items[s.ItemID] {
			return fmt.Errorf(ErrFmtUnknownSpotItem, ErrInvalidConfig, s.ID, s.ItemID)
		}
		for _, req := range s.RequiredTools {
			if !tools[req] {
				return fmt.Errorf(ErrFmtUnknownSpotTool, ErrInvalidConfig, s.ID, req)
			}
		}
	}

	return nil
}

// displayNameFromID turns "ancient_coin" into "Ancient Coin"
func displayNameFromID(title cases.Caser, id string) string {
	runes := []rune(id)
	for i, r := range runes {
		if r == '_' || r == '-' {
			runes[i] = ' '
		}
	}
	return title.String(string(runes))
}
