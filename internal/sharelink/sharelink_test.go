package sharelink

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func samplePayload() Payload {
	return Payload{
		Title:   "Weekly notes",
		Content: "# Notes\n\nÜnïcödé & <symbols> ✓\n\n![a](a.png)",
		Options: Options{
			Title:           "Weekly notes",
			Quality:         80,
			Compression:     true,
			IncludeMetadata: true,
			Watermark:       false,
		},
		CreatedAt: time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC),
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	bases := []string{
		"https://draftkit.example/",
		"http://localhost:8080/share?lang=en",
		"/share",
	}

	for _, base := range bases {
		t.Run(base, func(t *testing.T) {
			t.Parallel()

			want := samplePayload()
			link, err := Encode(base, want)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			u, err := url.Parse(link)
			if err != nil {
				t.Fatal(err)
			}
			if share := u.Query().Get(ShareParam); share == "" || strings.ContainsAny(share, "+/=") {
				t.Errorf("payload is not base64url without padding: %q", share)
			}

			got, ok := Decode(link)
			if !ok {
				t.Fatalf("Decode(%q) failed", link)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_KeepsExistingQuery(t *testing.T) {
	t.Parallel()

	link, err := Encode("https://x.example/app?lang=fr", samplePayload())
	if err != nil {
		t.Fatal(err)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Query().Get("lang"); got != "fr" {
		t.Errorf("lang = %q, want fr", got)
	}
	if got := u.Query().Get(ViewParam); got != ViewValue {
		t.Errorf("view = %q, want %q", got, ViewValue)
	}
}

func TestEncode_TooLong(t *testing.T) {
	t.Parallel()

	p := samplePayload()
	p.Content = strings.Repeat("long content ", 600)

	link, err := Encode("https://draftkit.example/", p)
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("Encode() error = %v, want ErrTooLong", err)
	}
	if link != "" {
		t.Errorf("Encode() returned %d-char link alongside error", len(link))
	}
}

func TestEncode_BadBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := Encode("http://[::1", samplePayload()); !errors.Is(err, ErrEncode) {
		t.Errorf("Encode() error = %v, want ErrEncode", err)
	}
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	encode := func(raw string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(raw))
	}

	tests := []struct {
		name string
		url  string
	}{
		{"no marker", "https://x.example/?share=" + encode(`{"title":"a","content":"b"}`)},
		{"wrong marker", "https://x.example/?view=html&share=" + encode(`{"title":"a","content":"b"}`)},
		{"marker without payload", "https://x.example/?view=pdf"},
		{"plain page", "https://x.example/docs"},
		{"corrupt base64", "https://x.example/?view=pdf&share=%21%21%21"},
		{"truncated base64", "https://x.example/?view=pdf&share=abcde"},
		{"not json", "https://x.example/?view=pdf&share=" + encode("hello")},
		{"json array", "https://x.example/?view=pdf&share=" + encode(`["a"]`)},
		{"missing title", "https://x.example/?view=pdf&share=" + encode(`{"content":"b"}`)},
		{"numeric content", "https://x.example/?view=pdf&share=" + encode(`{"title":"a","content":3}`)},
		{"null title", "https://x.example/?view=pdf&share=" + encode(`{"title":null,"content":"b"}`)},
		{"unparseable url", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if p, ok := Decode(tt.url); ok {
				t.Errorf("Decode(%q) = %+v, want rejection", tt.url, p)
			}
		})
	}
}

func TestDecode_Lenient(t *testing.T) {
	t.Parallel()

	raw := `{"title":"T","content":"~~~~???","options":{"quality":55}}`

	t.Run("standard alphabet with padding", func(t *testing.T) {
		t.Parallel()

		q := url.Values{}
		q.Set(ViewParam, ViewValue)
		q.Set(ShareParam, base64.StdEncoding.EncodeToString([]byte(raw)))
		got, ok := Decode("https://x.example/?" + q.Encode())
		if !ok {
			t.Fatal("Decode() rejected standard base64")
		}
		if got.Content != "~~~~???" || got.Options.Quality != 55 {
			t.Errorf("Decode() = %+v", got)
		}
	})

	t.Run("odd options still open", func(t *testing.T) {
		t.Parallel()

		odd := base64.RawURLEncoding.EncodeToString([]byte(`{"title":"T","content":"C","options":"x","createdAt":"yesterday"}`))
		got, ok := Decode("https://x.example/?view=pdf&share=" + odd)
		if !ok {
			t.Fatal("Decode() rejected payload with odd options")
		}
		if got.Title != "T" || got.Content != "C" || !got.CreatedAt.IsZero() {
			t.Errorf("Decode() = %+v", got)
		}
	})

	t.Run("empty strings are valid", func(t *testing.T) {
		t.Parallel()

		empty := base64.RawURLEncoding.EncodeToString([]byte(`{"title":"","content":""}`))
		if _, ok := Decode("/?view=pdf&share=" + empty); !ok {
			t.Error("Decode() rejected empty title and content")
		}
	})
}
