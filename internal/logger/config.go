package logger

import (
	"log/slog"
	"strings"
)

// Config controls the process-wide slog handler
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// DefaultConfig is used when nothing was configured: text output at info
func DefaultConfig() Config {
	return Config{
		Level:       LevelInfo,
		Format:      FormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: EnvDevelopment,
	}
}

// ParseLevel maps a level name to a slog.Level. Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn, LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON reports whether the JSON handler should be used
func (c Config) IsJSON() bool {
	return strings.EqualFold(strings.TrimSpace(c.Format), FormatJSON)
}

func (c Config) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:     ParseLevel(c.Level),
		AddSource: c.AddSource,
	}
}

// baseAttrs are stamped on every record. Empty values are skipped.
func (c Config) baseAttrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	for _, kv := range [][2]string{
		{AttrKeyService, c.ServiceName},
		{AttrKeyVersion, c.Version},
		{AttrKeyEnvironment, c.Environment},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
