package config

import "time"

const (
	// Configuration file paths
	ConfigPathCatalog = "configs/items/dig_catalog.json"
	ConfigPathTuning  = "configs/dig_tuning.yaml"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Defaults
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	EnvProduction      = "prod"
	DefaultServiceName = "digsite"
	DefaultVersion     = "dev"

	DefaultDBMaxConns = 20
	DefaultDBMaxIdle  = 5 * time.Minute
	DefaultDBMaxLife  = 30 * time.Minute

	DefaultMoundSlots  = 64
	DefaultWorkerCount = 4
	DefaultQueueSize   = 256

	DefaultReapInterval = time.Minute
)

// Tuning errors
const (
	ErrMsgReadTuningFailed  = "failed to read tuning file: %w"
	ErrMsgParseTuningFailed = "failed to parse tuning file: %w"
	ErrMsgInvalidTuning     = "invalid %s tuning: %w"
)
