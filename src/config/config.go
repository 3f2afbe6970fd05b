// Package config holds the remote API settings. Values come from explicit
// assignment, the process environment, or an optional .env file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the Câmara dos Deputados open-data API.
const (
	DefaultBaseURL = "https://dadosabertos.camara.leg.br/api/v2"
	DefaultTimeout = 30 * time.Second
)

// Environment variables consulted by FromEnv.
const (
	EnvBaseURL = "CAMARA_BASE_URL"
	EnvSpecURL = "CAMARA_SPEC_URL"
	EnvTimeout = "CAMARA_TIMEOUT"
)

// VariableNotFoundError is returned when a requested variable is absent from
// a variables source.
type VariableNotFoundError struct {
	VariableName string
}

func (e *VariableNotFoundError) Error() string {
	return fmt.Sprintf("variable %q not found; add it to the environment or to your .env file", e.VariableName)
}

// DotEnv loads variables from a .env file.
type DotEnv struct {
	Path string
}

// Load reads the file and returns its key/value pairs.
func (d *DotEnv) Load() (map[string]string, error) {
	return godotenv.Read(d.Path)
}

// Get looks up a single key.
func (d *DotEnv) Get(key string) (string, error) {
	vars, err := d.Load()
	if err != nil {
		return "", err
	}
	if v, ok := vars[key]; ok {
		return v, nil
	}
	return "", &VariableNotFoundError{VariableName: key}
}

// Config is the resolved adapter configuration.
type Config struct {
	// BaseURL is the root of the remote API.
	BaseURL string
	// SpecURL is where the OpenAPI document lives. Empty means
	// BaseURL + "/api-docs".
	SpecURL string
	// Timeout bounds every outbound call.
	Timeout time.Duration
}

// Default returns the stock configuration for the public API.
func Default() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		SpecURL: DefaultBaseURL + "/api-docs",
		Timeout: DefaultTimeout,
	}
}

// FromEnv starts from Default and applies any overrides present in the
// environment. If envFile is non-empty its variables are loaded into the
// process environment first, without clobbering existing values.
func FromEnv(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
		cfg.SpecURL = v + "/api-docs"
	}
	if v := os.Getenv(EnvSpecURL); v != "" {
		cfg.SpecURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
