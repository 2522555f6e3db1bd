package cmd

import (
	"fmt"

	"db-verify/internal/engine"

	"github.com/spf13/viper"
)

// Endpoint is one configured database side.
type Endpoint struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
}

// GetEndpoints returns the configured source and target endpoints.
func GetEndpoints() (*Endpoint, *Endpoint, error) {
	var source, target Endpoint
	if err := viper.UnmarshalKey("endpoints.source", &source); err != nil {
		return nil, nil, fmt.Errorf("failed to parse source endpoint: %w", err)
	}
	if err := viper.UnmarshalKey("endpoints.target", &target); err != nil {
		return nil, nil, fmt.Errorf("failed to parse target endpoint: %w", err)
	}
	if source.DSN == "" || target.DSN == "" {
		return nil, nil, fmt.Errorf("both endpoints.source.dsn and endpoints.target.dsn are required")
	}
	if source.Driver == "" {
		source.Driver = "mysql"
	}
	if target.Driver == "" {
		target.Driver = "mysql"
	}
	return &source, &target, nil
}

// LoadSuite returns the configured test cases.
func LoadSuite() ([]engine.TestCase, error) {
	var cases []engine.TestCase
	if err := viper.UnmarshalKey("tests", &cases); err != nil {
		return nil, fmt.Errorf("failed to parse tests config: %w", err)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("no test cases found in config (define a tests: list)")
	}
	return cases, nil
}
