package logger

// Accepted level names
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarn    = "warn"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Accepted output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

const (
	DefaultServiceName = "digsite"
	DefaultVersion     = "dev"
	EnvDevelopment     = "dev"
)

// Attribute keys attached by this package
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyPlayerID    = "player_id"
)
