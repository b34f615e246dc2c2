package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultSecretsDir = "/run/secrets"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost  string
	ServerPort  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. An empty RedisURL and RedisHost disables the
	// parse cache and rate limiting.
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Step image storage. An empty bucket disables uploads.
	S3Bucket        string
	S3Region        string
	S3PublicBaseURL string

	// Parsing limits
	ParseCacheTTL  time.Duration
	ParseRateLimit int
	MaxTextBytes   int
	MaxBatchSize   int

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig builds a Config from environment variables and Docker secrets.
// In CI only environment variables are consulted.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	src := source{env: env, secretsDir: os.Getenv("SECRETS_DIR")}
	if src.secretsDir == "" {
		src.secretsDir = defaultSecretsDir
	}

	cfg := &Config{
		Environment:     env,
		ServerHost:      src.get("SERVER_HOST", "server_host", "0.0.0.0"),
		ServerPort:      src.get("SERVER_PORT", "server_port", "8080"),
		CORSOrigins:     splitList(src.get("CORS_ORIGINS", "cors_origins", "http://localhost:5173")),
		DBDriver:        strings.ToLower(src.get("DB_DRIVER", "db_driver", "postgres")),
		DBHost:          src.get("DB_HOST", "db_host", "localhost"),
		DBPort:          src.get("DB_PORT", "db_port", "5432"),
		DBUser:          src.get("DB_USER", "db_user", "postgres"),
		DBPassword:      src.get("DB_PASSWORD", "db_password", ""),
		DBName:          src.get("DB_NAME", "db_name", "recipes"),
		DBSSLMode:       src.get("DB_SSL_MODE", "db_ssl_mode", "disable"),
		SQLitePath:      src.get("SQLITE_PATH", "sqlite_path", "recipes.db"),
		RedisURL:        src.get("REDIS_URL", "redis_url", ""),
		RedisHost:       src.get("REDIS_HOST", "redis_host", ""),
		RedisPort:       src.get("REDIS_PORT", "redis_port", "6379"),
		RedisPassword:   src.get("REDIS_PASSWORD", "redis_password", ""),
		JWTSecret:       src.get("JWT_SECRET", "jwt_secret", ""),
		S3Bucket:        src.get("S3_BUCKET_NAME", "s3_bucket_name", ""),
		S3Region:        src.get("AWS_REGION", "aws_region", "eu-central-1"),
		S3PublicBaseURL: strings.TrimSuffix(src.get("S3_PUBLIC_BASE_URL", "s3_public_base_url", ""), "/"),
		LogLevel:        src.get("LOG_LEVEL", "log_level", "info"),
		LogFormat:       src.get("LOG_FORMAT", "log_format", ""),
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
		if env == Production {
			cfg.LogFormat = "json"
		}
	}

	var err error
	if cfg.RedisDB, err = src.getInt("REDIS_DB", "redis_db", 0); err != nil {
		return nil, err
	}
	if cfg.ParseCacheTTL, err = src.getDuration("PARSE_CACHE_TTL", "parse_cache_ttl", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ParseRateLimit, err = src.getInt("PARSE_RATE_LIMIT", "parse_rate_limit", 60); err != nil {
		return nil, err
	}
	if cfg.MaxTextBytes, err = src.getInt("MAX_TEXT_BYTES", "max_text_bytes", 64*1024); err != nil {
		return nil, err
	}
	if cfg.MaxBatchSize, err = src.getInt("MAX_BATCH_SIZE", "max_batch_size", 50); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a redis server is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

type source struct {
	env        Environment
	secretsDir string
}

// get returns the environment variable, then the Docker secret, then def.
func (s source) get(envVar, secret, def string) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	if s.env.UsesSecrets() {
		if v := readSecret(s.secretsDir, secret); v != "" {
			return v
		}
	}
	return def
}

func (s source) getInt(envVar, secret string, def int) (int, error) {
	raw := s.get(envVar, secret, "")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ValidationError{Field: envVar, Message: fmt.Sprintf("invalid integer %q", raw)}
	}
	return n, nil
}

func (s source) getDuration(envVar, secret string, def time.Duration) (time.Duration, error) {
	raw := s.get(envVar, secret, "")
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, ValidationError{Field: envVar, Message: fmt.Sprintf("invalid duration %q", raw)}
	}
	return d, nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
