package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/osse101/DigSite_Go/internal/config"
	"github.com/osse101/DigSite_Go/internal/event"
)

// publisherSettings are the retry knobs after defaults are filled in
type publisherSettings struct {
	maxRetries     int
	retryDelay     time.Duration
	deadLetterPath string
}

func resolvePublisherSettings(cfg *config.Config) publisherSettings {
	s := publisherSettings{
		maxRetries:     cfg.EventMaxRetries,
		retryDelay:     cfg.EventRetryDelay,
		deadLetterPath: cfg.EventDeadLetterPath,
	}
	if s.maxRetries <= 0 {
		s.maxRetries = EventDefaultMaxRetries
	}
	if s.retryDelay <= 0 {
		s.retryDelay = EventDefaultRetryDelay
	}
	if s.deadLetterPath == "" {
		s.deadLetterPath = EventDefaultDeadLetterPath
	}
	return s
}

// InitializeEventSystem builds the in-process bus that dig events travel on
// and the retrying publisher the session service writes through. Events that
// exhaust their retries land in the dead-letter file.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	s := resolvePublisherSettings(cfg)

	if err := os.MkdirAll(filepath.Dir(s.deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, s.maxRetries, s.retryDelay, s.deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", s.maxRetries,
		"retry_delay", s.retryDelay,
		"deadletter_path", s.deadLetterPath)
	return bus, publisher, nil
}
