package draftkit

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ExporterPool manages Exporter instances for parallel exports.
// Each exporter owns its browser, so exports on different exporters print
// concurrently. Exporters are created lazily on first acquire.
type ExporterPool struct {
	size      int
	opts      []Option
	exporters []*Exporter
	sem       chan *Exporter
	mu        sync.Mutex
	created   int
	closed    bool
	initErr   error
}

// NewExporterPool creates a pool with capacity for n exporters, each built
// with opts.
func NewExporterPool(n int, opts ...Option) *ExporterPool {
	if n < 1 {
		n = 1
	}

	return &ExporterPool{
		size:      n,
		opts:      opts,
		exporters: make([]*Exporter, 0, n),
		sem:       make(chan *Exporter, n),
	}
}

// Acquire gets an exporter from the pool, creating one if needed.
// Blocks if all exporters are in use. Returns nil if the pool is closed or
// an exporter could not be created; InitError reports the latter.
func (p *ExporterPool) Acquire() *Exporter {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil
	}

	// Try to get an existing exporter (non-blocking)
	select {
	case exp := <-p.sem:
		return exp
	default:
	}

	// Check if we can create a new exporter
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Created outside the lock: template parsing is not free.
		exp, err := NewExporter(p.opts...)

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.created--
			p.initErr = err
			return nil
		}
		p.exporters = append(p.exporters, exp)
		return exp
	}
	p.mu.Unlock()

	// All exporters created, wait for one to be released
	return <-p.sem
}

// Release returns an exporter to the pool.
func (p *ExporterPool) Release(exp *Exporter) {
	if exp == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// Sent under the lock so Close cannot close sem in between. sem holds
	// every exporter the pool creates, so the send never blocks.
	select {
	case p.sem <- exp:
	default:
	}
}

// InitError returns the last exporter creation error, if any.
func (p *ExporterPool) InitError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initErr
}

// Close releases all browser resources.
// Returns an aggregated error if multiple exporters fail to close.
func (p *ExporterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	exporters := p.exporters
	p.mu.Unlock()

	var errs []error
	for _, exp := range exporters {
		if err := exp.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ExporterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	// Explicit flag takes priority
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware once automaxprocs has run.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	// Minimum 1, maximum 8
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
