// Package config provides configuration types, loading and validation for
// dnsveil. Configuration comes from a JSON file (or defaults) and can be
// persisted as named profiles through internal/database.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"dnsveil/internal/helpers"
	"dnsveil/internal/steg"
)

// EnvConfigPath is consulted when no path is passed on the command line.
const EnvConfigPath = "DNSVEIL_CONFIG"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Encoder: EncoderConfig{
			Strategy:       steg.StrategyMultiRecord.String(),
			MaxTXTLength:   200,
			MaxFragments:   10,
			UseCompression: true,
			RandomizeOrder: true,
			NoiseRatio:     0.1,
		},
		Channel: ChannelConfig{BaseDomain: "example.com"},
		Logging: LoggingConfig{Level: "INFO"},
		API:     APIConfig{Host: "127.0.0.1", Port: 8853},
	}
}

// ResolveConfigPath picks the config file path: the explicit flag value if
// set, otherwise the DNSVEIL_CONFIG environment variable.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvConfigPath)
}

// Load reads and validates a configuration file. An empty path yields the
// validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if cfg.Encoder.Strategy == "" {
		cfg.Encoder.Strategy = steg.StrategyMultiRecord.String()
	}
	if _, err := steg.ParseStrategy(cfg.Encoder.Strategy); err != nil {
		return err
	}

	if cfg.Encoder.MaxTXTLength == 0 {
		cfg.Encoder.MaxTXTLength = 200
	}
	if cfg.Encoder.MaxTXTLength < 1 || cfg.Encoder.MaxTXTLength > 255 {
		return errors.New("encoder.max_txt_length must be 1..255")
	}

	if cfg.Encoder.MaxFragments == 0 {
		cfg.Encoder.MaxFragments = 10
	}
	if cfg.Encoder.MaxFragments < 1 {
		return errors.New("encoder.max_fragments must be positive")
	}

	cfg.Encoder.NoiseRatio = helpers.ClampFloat(cfg.Encoder.NoiseRatio, 0, 1)

	if cfg.Channel.BaseDomain == "" {
		cfg.Channel.BaseDomain = "example.com"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	return nil
}

// EncoderSettings converts the validated file form into the engine's config.
// Call Validate first; an invalid strategy falls back to multi-record here.
func (cfg *Config) EncoderSettings() steg.Config {
	strategy, err := steg.ParseStrategy(cfg.Encoder.Strategy)
	if err != nil {
		strategy = steg.StrategyMultiRecord
	}
	return steg.Config{
		Strategy:       strategy,
		MaxTXTLength:   cfg.Encoder.MaxTXTLength,
		MaxFragments:   cfg.Encoder.MaxFragments,
		UseCompression: cfg.Encoder.UseCompression,
		RandomizeOrder: cfg.Encoder.RandomizeOrder,
		NoiseRatio:     cfg.Encoder.NoiseRatio,
	}
}

// NewEncoder builds a fragment engine from the configuration. A nil rng gets
// a time-seeded generator (see steg.NewEncoder).
func (cfg *Config) NewEncoder(rng *rand.Rand) *steg.Encoder {
	return steg.NewEncoder(cfg.EncoderSettings(), rng)
}
