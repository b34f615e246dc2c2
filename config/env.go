package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment selects which settings are required and where they are read
// from.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads the environment from CI and ENV. A truthy CI wins
// over ENV; anything unrecognised is Development.
func GetEnvironment() Environment {
	if ci, err := strconv.ParseBool(os.Getenv("CI")); err == nil && ci {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps an ENV value, including the short forms prod and
// dev, to an Environment.
func ParseEnvironment(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	case "ci":
		return CI
	default:
		return Development
	}
}

// UsesSecrets reports whether Docker secrets are consulted. CI runners only
// provide environment variables.
func (e Environment) UsesSecrets() bool {
	return e != CI
}
