package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion guards against stale .env files
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must always be present
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
}

// PostgresEnvVars are required when STORAGE=postgres
var PostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// envWarning flags a variable whose value is legal but suspicious
type envWarning struct {
	key     string
	matches func(string) bool
	message string
}

var envWarnings = []envWarning{
	{
		key:     "DB_PASSWORD",
		matches: func(v string) bool { return v == "change_this_secure_password" },
		message: "DB_PASSWORD still holds the example value; set a real password",
	},
	{
		key:     "API_KEY",
		matches: func(v string) bool { return v == "generate_with_openssl_rand_hex_32" },
		message: "API_KEY still holds the example value; generate one with: openssl rand -hex 32",
	},
	{
		key:     "ALLOW_DEBUG_OVERRIDES",
		matches: func(v string) bool { return strings.EqualFold(v, "true") || v == "1" },
		message: "ALLOW_DEBUG_OVERRIDES is enabled; forced rarity, mutation and item requests skip dig resolution",
	},
	{
		key:     "TRUSTED_PROXIES",
		matches: func(v string) bool { return strings.Contains(v, "0.0.0.0/0") || strings.Contains(v, "::/0") },
		message: "TRUSTED_PROXIES trusts every address; clients can spoof X-Forwarded-For",
	},
}

func requiredVars() []string {
	if !strings.EqualFold(os.Getenv("STORAGE"), StoragePostgres) {
		return RequiredEnvVars
	}
	return append(append([]string{}, RequiredEnvVars...), PostgresEnvVars...)
}

// ValidateEnv checks the schema version and that every required variable is set
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); {
	case v == "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set; add it to your .env (expected %s)", ExpectedEnvSchemaVersion)
	case v != ExpectedEnvSchemaVersion:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s; your .env may be outdated", ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, key := range requiredVars() {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then lists suspicious values
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, w := range envWarnings {
		if w.matches(os.Getenv(w.key)) {
			warnings = append(warnings, w.message)
		}
	}
	return warnings, nil
}
