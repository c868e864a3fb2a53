package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/config"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results. Without a browser
// only documents without images can be exported.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable   bool   `json:"temp_writable"`
	OutputDir      string `json:"output_dir,omitempty"`
	OutputWritable bool   `json:"output_writable"`
	Serializer     bool   `json:"serializer"`
	PoolSize       int    `json:"pool_size"`
}

// lookPath finds the browser binary. Replaced in tests.
var lookPath = launcher.LookPath

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	f := &doctorFlags{}
	if _, err := parseArgs(doctorFlagSet(env.Stderr, f), args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	cfg := env.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if f.showConfig {
		out, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return ExitGeneral
		}
		_, _ = env.Stdout.Write(out)
		return ExitSuccess
	}

	result := runDoctor(cfg)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result)
	checkSystem(result, cfg)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkChrome detects Chrome/Chromium. A missing browser is a warning: the
// built-in serializer still exports documents without images.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		// Use rod's launcher to locate Chrome
		var found bool
		chromePath, found = lookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found: documents with images cannot be printed. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	// Verify it exists
	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	// Get version by running chrome --version
	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	// Sandbox status: disabled if ROD_NO_SANDBOX=1
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	// Detect CI environments
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Warn if container/CI without sandbox disabled
	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether we run in a container and which signal said so.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("DRAFTKIT_CONTAINER") == "1" {
		return true, "DRAFTKIT_CONTAINER=1"
	}
	// Docker
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp and output directories and runs the
// built-in serializer once.
func checkSystem(result *doctorResult, cfg *config.Config) {
	// Check temp directory is writable
	result.System.TempWritable = dirWritable(os.TempDir())
	if !result.System.TempWritable {
		result.Errors = append(result.Errors, fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
	}

	if dir := cfg.Output.DefaultDir; dir != "" {
		result.System.OutputDir = dir
		result.System.OutputWritable = dirWritable(dir)
		if !result.System.OutputWritable {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Output directory not writable: %s", dir))
		}
	}

	// The serializer has no external dependency; one tiny build proves it
	if _, err := draftkit.BuildPDF("doctor", "doctor"); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("PDF serializer failed: %v", err))
	} else {
		result.System.Serializer = true
	}
	result.System.PoolSize = draftkit.ResolvePoolSize(cfg.Server.Workers)
}

func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, "draftkit-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(filepath.Clean(name))
	return true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "draftkit doctor")
	fmt.Fprintln(w)

	// Chrome section
	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found (print path unavailable)")
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.System.OutputDir != "" {
		if r.System.OutputWritable {
			fmt.Fprintf(w, "  [OK] Output directory: %s\n", r.System.OutputDir)
		} else {
			fmt.Fprintf(w, "  [WARN] Output directory: %s (not writable)\n", r.System.OutputDir)
		}
	}
	if r.System.Serializer {
		fmt.Fprintln(w, "  [OK] PDF serializer: working")
	} else {
		fmt.Fprintln(w, "  [ERROR] PDF serializer: failed")
	}
	fmt.Fprintf(w, "  [OK] Exporter pool: %d\n", r.System.PoolSize)
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to export")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
