package draftkit

import (
	"bytes"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func TestBuildPDF(t *testing.T) {
	t.Parallel()

	data, err := BuildPDF("Line one\n\nLine (two)", "  ")
	if err != nil {
		t.Fatalf("BuildPDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.4")) {
		t.Error("missing PDF header")
	}
	if !bytes.Contains(data, []byte("(Draft Export) Tj")) {
		t.Error("blank title not replaced by default title")
	}
	if !bytes.Contains(data, []byte(`(Line \(two\)) Tj`)) {
		t.Error("parentheses not escaped")
	}
	if bytes.Contains(data, []byte("/Info")) || bytes.Contains(data, []byte("/FlateDecode")) {
		t.Error("BuildPDF should use plain defaults")
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("pdfcpu rejected output: %v", err)
	}
	if ctx.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", ctx.PageCount)
	}
}
