package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidExtension   = errors.New("unsupported document extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidShareLink   = errors.New("not a valid share link")
	ErrInvalidPDF         = errors.New("not a valid PDF")
	ErrExporterInit       = errors.New("failed to initialize exporter")
)
