package draftkit

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestShareURL_RoundTrip(t *testing.T) {
	t.Parallel()

	opts := &ExportOptions{Title: "  Trip log  ", Quality: 65, Compression: true, Watermark: true}
	payload := NewSharePayload("# Day 1\n\nÇa commence.", opts, fixedNow)

	if payload.Title != "Trip log" {
		t.Errorf("payload title = %q, want resolved title", payload.Title)
	}
	if payload.Options.Title != "  Trip log  " {
		t.Errorf("options title = %q, want raw title", payload.Options.Title)
	}

	link, err := EncodeShareURL("https://drafts.example/app", payload)
	if err != nil {
		t.Fatalf("EncodeShareURL() error = %v", err)
	}
	if !strings.Contains(link, "view=pdf") {
		t.Errorf("link lacks view marker: %s", link)
	}

	got, ok := DecodeShareURL(link)
	if !ok {
		t.Fatal("DecodeShareURL() rejected its own link")
	}
	if diff := cmp.Diff(payload, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSharePayload_NilOptions(t *testing.T) {
	t.Parallel()

	p := NewSharePayload("text", nil, time.Time{})
	if p.Title != DefaultTitle || p.Options.Quality != DefaultQuality {
		t.Errorf("NewSharePayload(nil) = %+v", p)
	}
	if !p.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v, want zero", p.CreatedAt)
	}
}

func TestEncodeShareURL_Errors(t *testing.T) {
	t.Parallel()

	big := NewSharePayload(strings.Repeat("lorem ipsum ", 800), nil, fixedNow)
	if _, err := EncodeShareURL("https://drafts.example/", big); !errors.Is(err, ErrShareLinkTooLong) {
		t.Errorf("EncodeShareURL(big) error = %v, want ErrShareLinkTooLong", err)
	}

	small := NewSharePayload("x", nil, fixedNow)
	if _, err := EncodeShareURL("http://[::1", small); !errors.Is(err, ErrShareEncode) {
		t.Errorf("EncodeShareURL(bad base) error = %v, want ErrShareEncode", err)
	}
}

func TestDecodeShareURL_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "https://drafts.example/", "https://drafts.example/?view=pdf&share=%%%"} {
		if _, ok := DecodeShareURL(raw); ok {
			t.Errorf("DecodeShareURL(%q) accepted", raw)
		}
	}
}

func TestShareExportOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload SharePayload
		want    *ExportOptions
	}{
		{
			name: "carried title wins",
			payload: SharePayload{
				Title:   "Resolved",
				Options: ShareOptions{Title: "Raw", Quality: 90, IncludeMetadata: true},
			},
			want: &ExportOptions{Title: "Raw", Quality: 90, IncludeMetadata: true},
		},
		{
			name:    "payload title fills in",
			payload: SharePayload{Title: "Resolved", Options: ShareOptions{Quality: 40}},
			want:    &ExportOptions{Title: "Resolved", Quality: 40},
		},
		{
			name:    "quality is clamped",
			payload: SharePayload{Title: "T", Options: ShareOptions{Quality: 400}},
			want:    &ExportOptions{Title: "T", Quality: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ShareExportOptions(tt.payload)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ShareExportOptions() mismatch (-want +got):\n%s", diff)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("clamped options invalid: %v", err)
			}
		})
	}
}
