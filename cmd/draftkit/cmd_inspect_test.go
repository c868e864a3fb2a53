package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-draftkit"
)

func TestInspectPDF(t *testing.T) {
	t.Parallel()

	pdf, err := draftkit.BuildPDF(strings.Repeat("line\n", 120), "Ledger")
	if err != nil {
		t.Fatalf("BuildPDF() error = %v", err)
	}

	report, err := inspectPDF(pdf)
	if err != nil {
		t.Fatalf("inspectPDF() error = %v", err)
	}
	if report.Pages < 2 {
		t.Errorf("Pages = %d, want at least 2", report.Pages)
	}
	if report.Bytes != len(pdf) {
		t.Errorf("Bytes = %d, want %d", report.Bytes, len(pdf))
	}
}

func TestInspectPDF_Invalid(t *testing.T) {
	t.Parallel()

	_, err := inspectPDF([]byte("not a pdf"))
	if !errors.Is(err, ErrInvalidPDF) {
		t.Errorf("error = %v, want ErrInvalidPDF", err)
	}
}

func TestRunInspect(t *testing.T) {
	t.Parallel()

	pdf, err := draftkit.BuildPDF("short note", "Note")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "note.pdf")
	writeTestFile(t, path, string(pdf))

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, "")
		if code := te.run("inspect", path); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, te.stderr)
		}
		for _, want := range []string{"File:     note.pdf", "Pages:    1", "Status:   valid"} {
			if !strings.Contains(te.stdout.String(), want) {
				t.Errorf("stdout = %q, want it to contain %q", te.stdout, want)
			}
		}
	})

	t.Run("json from stdin", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, string(pdf))
		if code := te.run("inspect", "-", "--json"); code != ExitSuccess {
			t.Fatalf("exit code = %d (stderr: %s)", code, te.stderr)
		}
		var got inspectReport
		if err := json.Unmarshal(te.stdout.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Pages != 1 || got.File != stdinName {
			t.Errorf("report = %+v", got)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		bad := filepath.Join(t.TempDir(), "bad.pdf")
		writeTestFile(t, bad, "%PDF-1.4 truncated")
		te := newTestEnv(t, "")
		if code := te.run("inspect", bad); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}
