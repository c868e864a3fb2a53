package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/config"
)

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

// mockExporter records the inputs it receives and returns a fixed result.
type mockExporter struct {
	mu     sync.Mutex
	inputs []draftkit.ExportInput
	pdf    []byte
	html   []byte
	err    error
}

func (m *mockExporter) Export(_ context.Context, input draftkit.ExportInput) (*draftkit.ExportResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	res := &draftkit.ExportResult{
		Mode:      draftkit.ModeDownload,
		FileName:  draftkit.SanitizeFileName(input.Options.ResolvedTitle()),
		PDF:       m.pdf,
		HTML:      m.html,
		Preflight: draftkit.Analyze(input.Content),
	}
	if m.pdf == nil {
		res.PDF = []byte("%PDF-1.4 mock")
	}
	if m.err != nil {
		return res, m.err
	}
	return res, nil
}

func (m *mockExporter) PrintHTML(content string, opts *draftkit.ExportOptions) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "<html><title>" + opts.ResolvedTitle() + "</title>" + content + "</html>", nil
}

func (m *mockExporter) received() []draftkit.ExportInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]draftkit.ExportInput(nil), m.inputs...)
}

// mockPool hands out a single shared exporter.
type mockPool struct {
	exp     Exporter
	size    int
	initErr error
	closed  bool
	opts    int
}

func (p *mockPool) Acquire() Exporter {
	if p.exp == nil {
		return nil
	}
	return p.exp
}
func (p *mockPool) Release(Exporter) {}
func (p *mockPool) Size() int {
	if p.size == 0 {
		return 1
	}
	return p.size
}
func (p *mockPool) InitError() error { return p.initErr }
func (p *mockPool) Close() error {
	p.closed = true
	return nil
}

// testEnv returns an environment writing to buffers. newPool replaces the
// exporter pool; nil keeps a pool around a fresh mockExporter.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	logs   *bytes.Buffer
	exp    *mockExporter
	pool   *mockPool
}

func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()

	exp := &mockExporter{}
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		logs:   &bytes.Buffer{},
		exp:    exp,
		pool:   &mockPool{exp: exp},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdin:  strings.NewReader(stdin),
		Stdout: te.stdout,
		Stderr: te.stderr,
		Logger: zerolog.New(te.logs),
		Config: config.DefaultConfig(),
		NewPool: func(size int, opts ...draftkit.Option) Pool {
			te.pool.opts = len(opts)
			if te.pool.size == 0 {
				te.pool.size = size
			}
			return te.pool
		},
	}
	return te
}

// run invokes the CLI with args after the program name.
func (te *testEnv) run(args ...string) int {
	return runMain(append([]string{"draftkit"}, args...), te.Environment)
}
