// Package config loads and validates draftkit YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxTitleLength   = 120
	MaxURLLength     = 2048
	MaxPathLength    = 4096
	MaxAddrLength    = 255
	MinWrapWidth     = 20
	MaxWrapWidth     = 1000
	MinBudget        = 100
	MaxBudget        = 100000
	MaxBodyBytesCap  = 64 << 20
	DefaultBodyBytes = 4 << 20
)

// Layout formats accepted in layout.format.
var layoutFormats = []string{"zine", "book", "catalogue", "report", "custom"}

// Config holds all configuration for draftkit.
type Config struct {
	Export ExportConfig `yaml:"export"`
	Layout LayoutConfig `yaml:"layout"`
	Print  PrintConfig  `yaml:"print"`
	Share  ShareConfig  `yaml:"share"`
	Server ServerConfig `yaml:"server"`
	Output OutputConfig `yaml:"output"`
	Assets AssetsConfig `yaml:"assets"`
}

// ExportConfig holds the default export options.
type ExportConfig struct {
	Title           string `yaml:"title"`
	Quality         int    `yaml:"quality"` // 0-100
	Compression     bool   `yaml:"compression"`
	IncludeMetadata bool   `yaml:"includeMetadata"`
	Watermark       bool   `yaml:"watermark"`
	PreflightGate   bool   `yaml:"preflightGate"` // refuse exports with major issues
}

// LayoutConfig controls pagination.
type LayoutConfig struct {
	Format    string `yaml:"format"`    // zine, book, catalogue, report, custom
	Budget    int    `yaml:"budget"`    // overrides the format budget when > 0
	WrapWidth int    `yaml:"wrapWidth"` // soft wrap width, 0 = default
}

// PrintConfig controls the browser print path. Durations use Go syntax ("1.8s").
type PrintConfig struct {
	ImageTimeout string `yaml:"imageTimeout"`
	SettleDelay  string `yaml:"settleDelay"`
	Timeout      string `yaml:"timeout"`
}

// ShareConfig controls share links.
type ShareConfig struct {
	BaseURL string `yaml:"baseURL"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes"`
	Workers      int    `yaml:"workers"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = current directory
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{
			Quality:         80,
			Compression:     true,
			IncludeMetadata: true,
		},
		Layout: LayoutConfig{Format: "zine"},
		Print: PrintConfig{
			ImageTimeout: "1.8s",
			SettleDelay:  "100ms",
			Timeout:      "30s",
		},
		Share:  ShareConfig{BaseURL: "http://localhost:8080/share"},
		Server: ServerConfig{Addr: ":8080", MaxBodyBytes: DefaultBodyBytes},
	}
}

// Validate checks ranges and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("export.title", c.Export.Title, MaxTitleLength); err != nil {
		return err
	}
	if c.Export.Quality < 0 || c.Export.Quality > 100 {
		return fmt.Errorf("%w: export.quality must be between 0 and 100, got %d", ErrInvalidValue, c.Export.Quality)
	}

	if c.Layout.Format != "" && !isLayoutFormat(c.Layout.Format) {
		return fmt.Errorf("%w: layout.format %q (must be one of %s)", ErrInvalidValue, c.Layout.Format, strings.Join(layoutFormats, ", "))
	}
	if c.Layout.Budget != 0 && (c.Layout.Budget < MinBudget || c.Layout.Budget > MaxBudget) {
		return fmt.Errorf("%w: layout.budget must be between %d and %d, got %d", ErrInvalidValue, MinBudget, MaxBudget, c.Layout.Budget)
	}
	if c.Layout.WrapWidth != 0 && (c.Layout.WrapWidth < MinWrapWidth || c.Layout.WrapWidth > MaxWrapWidth) {
		return fmt.Errorf("%w: layout.wrapWidth must be between %d and %d, got %d", ErrInvalidValue, MinWrapWidth, MaxWrapWidth, c.Layout.WrapWidth)
	}

	durations := []struct{ field, value string }{
		{"print.imageTimeout", c.Print.ImageTimeout},
		{"print.settleDelay", c.Print.SettleDelay},
		{"print.timeout", c.Print.Timeout},
	}
	for _, d := range durations {
		if _, err := ParseDuration(d.value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, d.field, err)
		}
	}

	if err := validateFieldLength("share.baseURL", c.Share.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes < 0 || c.Server.MaxBodyBytes > MaxBodyBytesCap {
		return fmt.Errorf("%w: server.maxBodyBytes must be between 0 and %d", ErrInvalidValue, MaxBodyBytesCap)
	}
	if c.Server.Workers < 0 {
		return fmt.Errorf("%w: server.workers cannot be negative", ErrInvalidValue)
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	return nil
}

// ParseDuration parses a Go duration string. Empty means zero (use the
// built-in default); negative values are rejected.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

func isLayoutFormat(s string) bool {
	for _, f := range layoutFormats {
		if f == s {
			return true
		}
	}
	return false
}

// validateFieldLength checks a field against its limit, counted in characters.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if n := utf8.RuneCountInString(value); n > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, n, maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-draftkit/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-draftkit", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
