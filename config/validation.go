package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requirement is a single check applied to a loaded Config.
type requirement struct {
	field string
	ok    func(*Config) bool
	msg   string
}

var (
	commonRequirements = []requirement{
		{"DB_DRIVER", func(c *Config) bool { return c.DBDriver == "postgres" || c.DBDriver == "sqlite" }, "must be postgres or sqlite"},
		{"SERVER_PORT", func(c *Config) bool { return c.ServerPort != "" }, "is required"},
		{"PARSE_RATE_LIMIT", func(c *Config) bool { return c.ParseRateLimit > 0 }, "must be positive"},
		{"MAX_TEXT_BYTES", func(c *Config) bool { return c.MaxTextBytes > 0 }, "must be positive"},
		{"MAX_BATCH_SIZE", func(c *Config) bool { return c.MaxBatchSize > 0 }, "must be positive"},
		{"PARSE_CACHE_TTL", func(c *Config) bool { return c.ParseCacheTTL >= 0 }, "must not be negative"},
		{"LOG_FORMAT", func(c *Config) bool { return c.LogFormat == "json" || c.LogFormat == "console" }, "must be json or console"},
	}

	postgresPassword = requirement{"DB_PASSWORD", func(c *Config) bool { return c.DBDriver != "postgres" || c.DBPassword != "" }, "is required for postgres"}
	jwtSecret        = requirement{"JWT_SECRET", func(c *Config) bool { return c.JWTSecret != "" }, "is required"}

	// Environment-specific requirements
	requirements = map[Environment][]requirement{
		Development: commonRequirements,
		Test:        commonRequirements,
		CI:          append(append([]requirement{}, commonRequirements...), postgresPassword, jwtSecret),
		Production:  append(append([]requirement{}, commonRequirements...), postgresPassword, jwtSecret),
	}
)

// ValidateConfig checks the configuration against the requirements of its
// environment and reports every violation.
func ValidateConfig(cfg *Config) error {
	var errs []error
	for _, req := range requirements[cfg.Environment] {
		if !req.ok(cfg) {
			errs = append(errs, ValidationError{Field: req.field, Message: req.msg})
		}
	}
	return errors.Join(errs...)
}
