package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/fileutil"
)

// batchExtensions are picked up when walking a directory.
var batchExtensions = []string{"md", "markdown", "txt"}

// FileToExport represents a single document to process.
type FileToExport struct {
	InputPath  string
	OutputPath string
	// data holds a document already read from stdin.
	data []byte
}

// discoverFiles finds the documents to export under inputPath.
// A single file may use any importable text format; directory walks only
// pick up Markdown and plain text.
func discoverFiles(inputPath, outputDir string) ([]FileToExport, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateDocumentExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToExport{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, outputDir, "")}}, nil
	}

	var files []FileToExport
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !slices.Contains(batchExtensions, fileutil.Ext(path)) {
			return nil
		}
		files = append(files, FileToExport{InputPath: path, OutputPath: resolveOutputPath(path, outputDir, inputPath)})
		return nil
	})
	return files, err
}

// resolveOutputPath determines the PDF output path for a document.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}

	if strings.HasSuffix(outputDir, ".pdf") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base+".pdf")
		}
	}

	return filepath.Join(outputDir, base+".pdf")
}

// validateDocumentExtension accepts the formats ImportFile converts.
func validateDocumentExtension(path string) error {
	if draftkit.IsImageFile(path) || !slices.Contains(draftkit.SupportedImportExtensions(), "."+fileutil.Ext(path)) {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > draftkit.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, draftkit.MaxPoolSize)
	}
	return nil
}

// htmlOutputPath returns the HTML path corresponding to a PDF path.
func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
}

// firstHeading returns the text of the first ATX heading in content.
func firstHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		text := strings.TrimLeft(line, "#")
		if text != "" && text[0] != ' ' {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}
