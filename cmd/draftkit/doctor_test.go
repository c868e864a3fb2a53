package main

// Doctor tests swap the package-level lookPath and set environment
// variables, so none of them run in parallel.

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-draftkit/internal/config"
)

func stubLookPath(t *testing.T, path string, found bool) {
	t.Helper()
	orig := lookPath
	lookPath = func() (string, bool) { return path, found }
	t.Cleanup(func() { lookPath = orig })
}

func TestCheckChrome_NotFound(t *testing.T) {
	stubLookPath(t, "", false)

	result := &doctorResult{}
	checkChrome(result)

	if result.Chrome.Found {
		t.Error("Chrome.Found = true")
	}
	if len(result.Errors) != 0 {
		t.Errorf("missing browser should only warn, got errors %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "ROD_BROWSER_BIN") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestCheckChrome_BrowserBinMissing(t *testing.T) {
	stubLookPath(t, "", false)

	result := &doctorResult{Env: envInfo{BrowserBin: filepath.Join(t.TempDir(), "chrome")}}
	checkChrome(result)

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Chrome not found at") {
		t.Errorf("Errors = %v", result.Errors)
	}
}

func TestCheckChrome_Found(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the browser")
	}

	bin := filepath.Join(t.TempDir(), "chromium")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\necho 'Chromium 130.0.6723.58'\n"), 0o700); err != nil { // #nosec G306 -- test executable
		t.Fatal(err)
	}
	stubLookPath(t, bin, true)

	result := &doctorResult{Env: envInfo{NoSandbox: "1"}}
	checkChrome(result)

	if !result.Chrome.Found || result.Chrome.Path != bin {
		t.Fatalf("Chrome = %+v", result.Chrome)
	}
	if result.Chrome.Version != "Chromium 130.0.6723.58" {
		t.Errorf("Version = %q", result.Chrome.Version)
	}
	if result.Chrome.Sandbox {
		t.Error("Sandbox = true with ROD_NO_SANDBOX=1")
	}
}

func TestCheckEnvironment_ContainerWithoutNoSandbox(t *testing.T) {
	t.Setenv("DRAFTKIT_CONTAINER", "1")

	result := &doctorResult{}
	checkEnvironment(result)

	if !result.Env.Container || result.Env.ContainerHint != "DRAFTKIT_CONTAINER=1" {
		t.Errorf("Env = %+v", result.Env)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "ROD_NO_SANDBOX=1") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestCheckSystem(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.DefaultDir = t.TempDir()
	cfg.Server.Workers = 3

	result := &doctorResult{}
	checkSystem(result, cfg)

	if !result.System.TempWritable || !result.System.OutputWritable {
		t.Errorf("System = %+v", result.System)
	}
	if !result.System.Serializer {
		t.Errorf("serializer check failed: %v", result.Errors)
	}
	if result.System.PoolSize != 3 {
		t.Errorf("PoolSize = %d, want 3", result.System.PoolSize)
	}
	entries, err := os.ReadDir(cfg.Output.DefaultDir)
	if err != nil || len(entries) != 0 {
		t.Errorf("temp files left behind: %v %v", entries, err)
	}
}

func TestRunDoctorCmd_JSON(t *testing.T) {
	stubLookPath(t, "", false)
	t.Setenv("ROD_BROWSER_BIN", "")

	te := newTestEnv(t, "")
	if code := te.run("doctor", "--json"); code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, te.stderr)
	}

	var got doctorResult
	if err := json.Unmarshal(te.stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, te.stdout)
	}
	if got.Status != "warnings" {
		t.Errorf("Status = %q, want warnings", got.Status)
	}
	if got.Chrome.Found || !got.System.Serializer {
		t.Errorf("result = %+v", got)
	}
}

func TestRunDoctorCmd_Errors(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", filepath.Join(t.TempDir(), "gone"))

	te := newTestEnv(t, "")
	if code := te.run("doctor"); code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(te.stdout.String(), "Status: Not ready") {
		t.Errorf("stdout = %q", te.stdout)
	}

	te = newTestEnv(t, "")
	if code := te.run("doctor", "--verbose"); code != ExitUsage {
		t.Errorf("unknown flag exit code = %d, want %d", code, ExitUsage)
	}
}

func TestRunDoctorCmd_ShowConfig(t *testing.T) {
	te := newTestEnv(t, "")
	if code := te.run("doctor", "--show-config"); code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, te.stderr)
	}

	out := te.stdout.String()
	for _, want := range []string{"export:", "layout:", "share:", "baseURL:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Status:") {
		t.Error("--show-config should skip the checks")
	}
}

func TestPrintDoctorResult(t *testing.T) {
	r := &doctorResult{
		Status: "ready",
		Chrome: chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 130", Sandbox: true},
		Env:    envInfo{OS: "linux", Arch: "amd64", CI: true},
		System: systemInfo{TempWritable: true, Serializer: true, PoolSize: 2},
	}

	var buf bytes.Buffer
	printDoctorResult(&buf, r)
	out := buf.String()

	for _, want := range []string{
		"draftkit doctor",
		"[OK] Found at /usr/bin/chromium",
		"[OK] Sandbox: enabled",
		"[OK] Platform: linux/amd64",
		"[OK] CI: detected",
		"[OK] PDF serializer: working",
		"[OK] Exporter pool: 2",
		"Status: Ready to export",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
