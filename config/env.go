package config

import (
	"os"
	"strings"
)

// Environment is the runtime environment selected by ENV (or CI).
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads the environment from CI and ENV. Unknown values fall
// back to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch env := Environment(strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))); env {
	case Production, Test, CI:
		return env
	default:
		return Development
	}
}

// IsLocal is true for environments that run on a developer machine.
func (e Environment) IsLocal() bool {
	return e == Development || e == Test
}

// DefaultHost is the bind address used when HOST is unset.
func (e Environment) DefaultHost() string {
	if e.IsLocal() {
		return "127.0.0.1"
	}
	return "0.0.0.0"
}

// ReleaseMode reports whether gin should run in release mode.
func (e Environment) ReleaseMode() bool {
	return e == Production
}
