package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-draftkit"
)

// Exporter is the part of draftkit.Exporter the CLI uses.
type Exporter interface {
	Export(ctx context.Context, input draftkit.ExportInput) (*draftkit.ExportResult, error)
	PrintHTML(content string, opts *draftkit.ExportOptions) (string, error)
}

// Compile-time interface implementation check.
var _ Exporter = (*draftkit.Exporter)(nil)

// Pool abstracts exporter pool operations for testability.
type Pool interface {
	Acquire() Exporter
	Release(Exporter)
	Size() int
	InitError() error
	Close() error
}

// poolAdapter wraps draftkit.ExporterPool to satisfy Pool.
type poolAdapter struct {
	pool *draftkit.ExporterPool
}

func newExporterPool(size int, opts ...draftkit.Option) Pool {
	return &poolAdapter{pool: draftkit.NewExporterPool(size, opts...)}
}

// Acquire returns nil, not a typed nil, when no exporter is available.
func (a *poolAdapter) Acquire() Exporter {
	exp := a.pool.Acquire()
	if exp == nil {
		return nil
	}
	return exp
}

// Release panics when given an Exporter this pool did not hand out.
func (a *poolAdapter) Release(e Exporter) {
	exp, ok := e.(*draftkit.Exporter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", e))
	}
	a.pool.Release(exp)
}

func (a *poolAdapter) Size() int        { return a.pool.Size() }
func (a *poolAdapter) InitError() error { return a.pool.InitError() }
func (a *poolAdapter) Close() error     { return a.pool.Close() }
