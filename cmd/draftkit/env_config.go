package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-draftkit/internal/config"
)

// envPrefix marks the variables read by loadEnvConfig.
const envPrefix = "DRAFTKIT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string // DRAFTKIT_CONFIG: config file name or path
	Timeout      string // DRAFTKIT_TIMEOUT: print path timeout
	OutputDir    string // DRAFTKIT_OUTPUT_DIR: default output directory
	ShareBaseURL string // DRAFTKIT_SHARE_BASE_URL: base of share links
	Addr         string // DRAFTKIT_ADDR: server listen address
	Workers      int    // DRAFTKIT_WORKERS: exporter pool size
	Layout       string // DRAFTKIT_LAYOUT: layout format
	AssetPath    string // DRAFTKIT_ASSET_PATH: custom asset directory

	// invalid collects variables whose values could not be parsed.
	invalid []string
}

// knownEnvVars lists valid DRAFTKIT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DRAFTKIT_CONFIG":         true,
	"DRAFTKIT_TIMEOUT":        true,
	"DRAFTKIT_OUTPUT_DIR":     true,
	"DRAFTKIT_SHARE_BASE_URL": true,
	"DRAFTKIT_ADDR":           true,
	"DRAFTKIT_WORKERS":        true,
	"DRAFTKIT_LAYOUT":         true,
	"DRAFTKIT_ASSET_PATH":     true,
	"DRAFTKIT_CONTAINER":      true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("DRAFTKIT_CONFIG"),
		OutputDir:    os.Getenv("DRAFTKIT_OUTPUT_DIR"),
		ShareBaseURL: os.Getenv("DRAFTKIT_SHARE_BASE_URL"),
		Addr:         os.Getenv("DRAFTKIT_ADDR"),
		Layout:       os.Getenv("DRAFTKIT_LAYOUT"),
		AssetPath:    os.Getenv("DRAFTKIT_ASSET_PATH"),
	}

	if timeout := os.Getenv("DRAFTKIT_TIMEOUT"); timeout != "" {
		if d, err := config.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = timeout
		} else {
			cfg.invalid = append(cfg.invalid, "DRAFTKIT_TIMEOUT")
		}
	}

	if workers := os.Getenv("DRAFTKIT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		} else {
			cfg.invalid = append(cfg.invalid, "DRAFTKIT_WORKERS")
		}
	}

	return cfg
}

// warnEnv logs unknown DRAFTKIT_* variables and values that were ignored.
func warnEnv(logger zerolog.Logger, env *envConfig) {
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn().Str("var", name).Msg("unknown environment variable (typo?)")
		}
	}
	for _, name := range env.invalid {
		logger.Warn().Str("var", name).Msg("ignoring invalid environment value")
	}
}

// applyEnvConfig copies set environment values over cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (flags are merged afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Timeout != "" {
		cfg.Print.Timeout = env.Timeout
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ShareBaseURL != "" {
		cfg.Share.BaseURL = env.ShareBaseURL
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.Workers > 0 {
		cfg.Server.Workers = env.Workers
	}
	if env.Layout != "" {
		cfg.Layout.Format = strings.ToLower(strings.TrimSpace(env.Layout))
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}

// loadConfig resolves the configuration for one command: the --config file
// (or DRAFTKIT_CONFIG), then environment overrides. The result is validated.
func loadConfig(c commonFlags, env *Environment, logger zerolog.Logger) (*config.Config, error) {
	ec := loadEnvConfig()
	warnEnv(logger, ec)

	name := c.config
	if name == "" {
		name = ec.ConfigPath
	}

	var cfg *config.Config
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		base := config.DefaultConfig()
		if env.Config != nil {
			*base = *env.Config
		}
		cfg = base
	}

	applyEnvConfig(ec, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug().Str("config", name).Str("layout", cfg.Layout.Format).Msg("configuration resolved")
	return cfg, nil
}
