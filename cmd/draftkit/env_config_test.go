package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alnah/go-draftkit/internal/config"
)

// These tests use t.Setenv and cannot run in parallel.

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("DRAFTKIT_TIMEOUT", "45s")
	t.Setenv("DRAFTKIT_WORKERS", "3")
	t.Setenv("DRAFTKIT_LAYOUT", "catalogue")
	t.Setenv("DRAFTKIT_SHARE_BASE_URL", "https://draft.example/share")

	ec := loadEnvConfig()
	if ec.Timeout != "45s" {
		t.Errorf("Timeout = %q, want 45s", ec.Timeout)
	}
	if ec.Workers != 3 {
		t.Errorf("Workers = %d, want 3", ec.Workers)
	}
	if ec.Layout != "catalogue" {
		t.Errorf("Layout = %q, want catalogue", ec.Layout)
	}
	if ec.ShareBaseURL != "https://draft.example/share" {
		t.Errorf("ShareBaseURL = %q", ec.ShareBaseURL)
	}
	if len(ec.invalid) != 0 {
		t.Errorf("invalid = %v, want none", ec.invalid)
	}
}

func TestLoadEnvConfig_InvalidValues(t *testing.T) {
	t.Setenv("DRAFTKIT_TIMEOUT", "soon")
	t.Setenv("DRAFTKIT_WORKERS", "-2")

	ec := loadEnvConfig()
	if ec.Timeout != "" || ec.Workers != 0 {
		t.Errorf("invalid values applied: timeout %q, workers %d", ec.Timeout, ec.Workers)
	}
	want := []string{"DRAFTKIT_TIMEOUT", "DRAFTKIT_WORKERS"}
	if strings.Join(ec.invalid, ",") != strings.Join(want, ",") {
		t.Errorf("invalid = %v, want %v", ec.invalid, want)
	}
}

func TestWarnEnv(t *testing.T) {
	t.Setenv("DRAFTKIT_TIMOUT", "30s")
	t.Setenv("DRAFTKIT_WORKERS", "many")

	var logs bytes.Buffer
	warnEnv(zerolog.New(&logs), loadEnvConfig())

	out := logs.String()
	if !strings.Contains(out, "DRAFTKIT_TIMOUT") || !strings.Contains(out, "typo") {
		t.Errorf("missing unknown variable warning: %s", out)
	}
	if !strings.Contains(out, "ignoring invalid environment value") {
		t.Errorf("missing invalid value warning: %s", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	applyEnvConfig(&envConfig{
		Timeout:   "1m",
		OutputDir: "/tmp/out",
		Addr:      ":9999",
		Workers:   2,
		Layout:    " Report ",
		AssetPath: "/srv/assets",
	}, cfg)

	if cfg.Print.Timeout != "1m" {
		t.Errorf("Print.Timeout = %q", cfg.Print.Timeout)
	}
	if cfg.Output.DefaultDir != "/tmp/out" {
		t.Errorf("Output.DefaultDir = %q", cfg.Output.DefaultDir)
	}
	if cfg.Server.Addr != ":9999" || cfg.Server.Workers != 2 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Layout.Format != "report" {
		t.Errorf("Layout.Format = %q, want report", cfg.Layout.Format)
	}
	if cfg.Assets.BasePath != "/srv/assets" {
		t.Errorf("Assets.BasePath = %q", cfg.Assets.BasePath)
	}
	if cfg.Share.BaseURL != config.DefaultConfig().Share.BaseURL {
		t.Errorf("unset ShareBaseURL changed the config: %q", cfg.Share.BaseURL)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draftkit.yaml")
	if err := os.WriteFile(path, []byte("layout:\n  format: book\nexport:\n  quality: 90\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DRAFTKIT_CONFIG", path)
	t.Setenv("DRAFTKIT_LAYOUT", "catalogue")

	te := newTestEnv(t, "")
	cfg, err := loadConfig(commonFlags{}, te.Environment, zerolog.Nop())
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Layout.Format != "catalogue" {
		t.Errorf("Layout.Format = %q, want catalogue (env wins)", cfg.Layout.Format)
	}
	if cfg.Export.Quality != 90 {
		t.Errorf("Export.Quality = %d, want 90 from file", cfg.Export.Quality)
	}
}

func TestLoadConfig_DoesNotMutateBase(t *testing.T) {
	t.Setenv("DRAFTKIT_ADDR", ":7000")

	te := newTestEnv(t, "")
	cfg, err := loadConfig(commonFlags{}, te.Environment, zerolog.Nop())
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q, want :7000", cfg.Server.Addr)
	}
	if te.Config.Server.Addr != ":8080" {
		t.Errorf("base config mutated: %q", te.Config.Server.Addr)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	te := newTestEnv(t, "")

	_, err := loadConfig(commonFlags{config: filepath.Join(t.TempDir(), "absent.yaml")}, te.Environment, zerolog.Nop())
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("missing file: error = %v, want ErrConfigNotFound", err)
	}

	t.Setenv("DRAFTKIT_LAYOUT", "poster")
	_, err = loadConfig(commonFlags{}, te.Environment, zerolog.Nop())
	if !errors.Is(err, config.ErrInvalidValue) {
		t.Errorf("bad layout: error = %v, want ErrInvalidValue", err)
	}
}
