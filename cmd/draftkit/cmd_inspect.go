package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type inspectReport struct {
	File     string `json:"file"`
	Bytes    int    `json:"bytes"`
	Pages    int    `json:"pages"`
	Title    string `json:"title,omitempty"`
	Producer string `json:"producer,omitempty"`
	Created  string `json:"created,omitempty"`
}

// runInspect validates a PDF and prints its page count and metadata.
func runInspect(args []string, env *Environment) error {
	f := &inspectFlags{}
	positional, err := parseArgs(inspectFlagSet(env.Stderr, f), args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: inspect takes exactly one PDF", ErrUsage)
	}
	logger := commandLogger(env, f.common)

	name, data, err := readInput(positional[0], env)
	if err != nil {
		return err
	}

	report, err := inspectPDF(data)
	if err != nil {
		return err
	}
	report.File = name
	logger.Debug().Int("pages", report.Pages).Msg("pdf validated")

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printInspect(env.Stdout, report)
	return nil
}

// inspectPDF reads and validates data with pdfcpu.
func inspectPDF(data []byte) (*inspectReport, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return &inspectReport{
		Bytes:    len(data),
		Pages:    ctx.PageCount,
		Title:    ctx.XRefTable.Title,
		Producer: ctx.XRefTable.Producer,
		Created:  ctx.XRefTable.CreationDate,
	}, nil
}

func printInspect(w io.Writer, r *inspectReport) {
	fmt.Fprintf(w, "File:     %s\n", r.File)
	fmt.Fprintf(w, "Size:     %d bytes\n", r.Bytes)
	fmt.Fprintf(w, "Pages:    %d\n", r.Pages)
	if r.Title != "" {
		fmt.Fprintf(w, "Title:    %s\n", r.Title)
	}
	if r.Producer != "" {
		fmt.Fprintf(w, "Producer: %s\n", r.Producer)
	}
	if r.Created != "" {
		fmt.Fprintf(w, "Created:  %s\n", r.Created)
	}
	fmt.Fprintln(w, "Status:   valid")
}
