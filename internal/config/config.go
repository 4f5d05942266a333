package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	// Storage selects the persistence backend for dig progress and pity counters
	Storage    string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int
	DBMaxIdle  time.Duration
	DBMaxLife  time.Duration

	CatalogPath string
	TuningPath  string

	// MoundSlots is the number of shared mound visuals available to the world
	MoundSlots  int
	WorkerCount int
	QueueSize   int

	// AllowDebugOverrides enables forced rarity/mutation/item on dig start
	AllowDebugOverrides bool

	// Event publisher retry settings
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// ReapInterval is how often expired dig sessions are abandoned
	ReapInterval time.Duration

	// TrustedProxies are IPs or CIDRs whose X-Forwarded-For is believed
	TrustedProxies []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables win either way
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		Storage:    strings.ToLower(getEnv("STORAGE", StorageMemory)),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "digsite"),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxIdle:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxIdle),
		DBMaxLife:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxLife),

		CatalogPath: getEnv("CATALOG_PATH", ConfigPathCatalog),
		TuningPath:  getEnv("TUNING_PATH", ConfigPathTuning),

		MoundSlots:  getEnvAsInt("MOUND_SLOTS", DefaultMoundSlots),
		WorkerCount: getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		QueueSize:   getEnvAsInt("WORKER_QUEUE_SIZE", DefaultQueueSize),

		AllowDebugOverrides: getEnvAsBool("ALLOW_DEBUG_OVERRIDES", false),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", 0),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", 0),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),

		ReapInterval: getEnvAsDuration("REAP_INTERVAL", DefaultReapInterval),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
	}

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY environment variable must be set for security"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.Storage != StorageMemory && c.Storage != StoragePostgres {
		errs = append(errs, fmt.Errorf("invalid STORAGE value %q: expected %s or %s", c.Storage, StorageMemory, StoragePostgres))
	}
	if c.MoundSlots <= 0 {
		errs = append(errs, fmt.Errorf("MOUND_SLOTS must be positive, got %d", c.MoundSlots))
	}
	if c.WorkerCount <= 0 || c.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT and WORKER_QUEUE_SIZE must be positive, got %d and %d", c.WorkerCount, c.QueueSize))
	}
	if c.ReapInterval <= 0 {
		errs = append(errs, fmt.Errorf("REAP_INTERVAL must be positive, got %s", c.ReapInterval))
	}
	// Debug overrides bypass every resolution filter
	if c.IsProduction() && c.AllowDebugOverrides {
		errs = append(errs, errors.New("ALLOW_DEBUG_OVERRIDES cannot be enabled in production"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case EnvProduction, "production":
		return true
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
