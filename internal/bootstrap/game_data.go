package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/DigSite_Go/internal/catalog"
	"github.com/osse101/DigSite_Go/internal/config"
)

// LoadGameData loads and validates the dig catalog and the balance tuning.
// The tuning's debug override switch is taken from the process config.
func LoadGameData(cfg *config.Config) (*catalog.Catalog, *config.Tuning, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadTuning, err)
	}
	tuning.Dig.AllowDebugOverrides = cfg.AllowDebugOverrides

	slog.Info(LogMsgGameDataLoaded,
		"catalog", cfg.CatalogPath,
		"tuning", cfg.TuningPath,
		"items", len(cat.Items()),
		"spots", len(cat.Spots()),
		"debug_overrides", cfg.AllowDebugOverrides)

	return cat, tuning, nil
}
