package catalog

import "time"

// ==================== Configuration ====================

const (
	// DefaultCatalogPath is the dig catalog location relative to the project root
	DefaultCatalogPath = "configs/items/dig_catalog.json"

	// PoolCacheSize bounds the number of per-tool candidate pools kept in memory
	PoolCacheSize = 64

	// PoolCacheTTL is how long a cached candidate pool stays valid
	PoolCacheTTL = 30 * time.Minute

	// PoolCacheSchemaVersion invalidates cached pools when the entry layout changes
	PoolCacheSchemaVersion = "1.0"
)

// ==================== Error Messages ====================

const (
	ErrMsgReadCatalogFailed  = "failed to read dig catalog: %w"
	ErrMsgParseCatalogFailed = "failed to parse dig catalog: %w"
	ErrMsgCatalogNil         = "catalog config is nil"
	ErrMsgNoItemsDefined     = "no items defined"
	ErrMsgNoToolsDefined     = "no tools defined"
)

const (
	ErrFmtDuplicateID       = "%w: duplicate %s id '%s'"
	ErrFmtInvalidEntry      = "%w: %s '%s': %v"
	ErrFmtUnknownRarity     = "%w: item '%s' has unknown rarity %d"
	ErrFmtUnknownSpotItem   = "%w: shiny spot '%s' targets unknown item '%s'"
	ErrFmtUnknownSpotTool   = "%w: shiny spot '%s' requires unknown tool '%s'"
	ErrFmtUnknownRequiredTo = "%w: item '%s' requires unknown tool '%s'"
	ErrFmtCategoryBias      = "%w: tool '%s' category bias needs a category and a magnitude in [0,1], got %q %v"
)

// ==================== Log Messages ====================

const (
	LogMsgCatalogLoaded = "Dig catalog loaded"
	LogMsgItemMissing   = "Referenced item missing from catalog"
	LogMsgToolMissing   = "Referenced tool missing from catalog"
	LogMsgBuffMissing   = "Referenced buff missing from catalog"
	LogMsgEmptyToolPool = "Tool has no diggable items"
)

const (
	LogFieldItemID = "item_id"
	LogFieldToolID = "tool_id"
	LogFieldBuffID = "buff_id"
	LogFieldPath   = "path"
)
