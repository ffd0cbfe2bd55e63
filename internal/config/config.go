// Package config loads widget service configuration from an optional YAML
// file with environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lutherj1178-hash/printscreations-designer/internal/product"
)

// Environment variables recognized by FromEnv. DESIGNCRAFT_PORT is preferred
// over the platform PORT (Cloud Run convention).
const (
	EnvConfigPath = "DESIGNCRAFT_CONFIG"
	EnvAddr       = "DESIGNCRAFT_ADDR"
	EnvPort       = "DESIGNCRAFT_PORT"
	EnvStoreURL   = "DESIGNCRAFT_STORE_URL"
	EnvCloseDelay = "DESIGNCRAFT_CLOSE_DELAY_MS"
	EnvDev        = "DESIGNCRAFT_DEV"
)

// Config drives the designcraft server.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// StoreURL overrides the canonical storefront origin used when the
	// launch parameters carry none.
	StoreURL string `yaml:"store_url"`
	// CloseDelayMs is how long a popup lingers after posting its result.
	CloseDelayMs int `yaml:"close_delay_ms"`
	// Dev reparses templates per request.
	Dev bool `yaml:"dev"`
}

// Defaults returns the baked-in configuration.
func Defaults() Config {
	return Config{
		Addr:         ":8080",
		StoreURL:     product.DefaultOrigin,
		CloseDelayMs: 500,
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields
// defaults; a missing file is an error so typos do not silently fall back.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

// FromEnv loads the file named by DESIGNCRAFT_CONFIG (if any) and applies
// environment overrides on top.
func FromEnv() (Config, error) {
	cfg, err := Load(os.Getenv(EnvConfigPath))
	if err != nil {
		return Config{}, err
	}
	return cfg.ApplyEnv(os.Getenv), nil
}

// ApplyEnv overlays environment values using the supplied getter, which
// keeps the override order testable.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		c.Addr = v
	} else if port := firstNonEmpty(getenv(EnvPort), getenv("PORT")); port != "" {
		c.Addr = ":" + port
	}
	if v := strings.TrimSpace(getenv(EnvStoreURL)); v != "" {
		c.StoreURL = v
	}
	if v := strings.TrimSpace(getenv(EnvCloseDelay)); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.CloseDelayMs = ms
		}
	}
	if getenv(EnvDev) != "" {
		c.Dev = true
	}
	return c.normalized()
}

func (c Config) normalized() Config {
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = Defaults().Addr
	}
	c.StoreURL = strings.TrimRight(strings.TrimSpace(c.StoreURL), "/")
	if c.StoreURL == "" {
		c.StoreURL = product.DefaultOrigin
	}
	if c.CloseDelayMs <= 0 {
		c.CloseDelayMs = Defaults().CloseDelayMs
	}
	return c
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
