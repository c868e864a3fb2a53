// Package sharelink packs an export payload into a URL and back.
//
// The payload is JSON, base64url encoded without padding, and carried in the
// "share" query parameter next to the "view=pdf" mode marker.
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// MaxURLLength is the longest URL Encode will produce.
	MaxURLLength = 7000

	// ViewParam and ViewValue mark a URL as a share link.
	ViewParam = "view"
	ViewValue = "pdf"
	// ShareParam carries the encoded payload.
	ShareParam = "share"
)

var (
	// ErrTooLong is returned when the encoded URL exceeds MaxURLLength.
	ErrTooLong = errors.New("share link too long")
	// ErrEncode is returned when the base URL or payload cannot be encoded.
	ErrEncode = errors.New("share link encode failed")
)

// Options mirrors the export options carried in a link.
type Options struct {
	Title           string `json:"title,omitempty"`
	Quality         int    `json:"quality"`
	Compression     bool   `json:"compression"`
	IncludeMetadata bool   `json:"includeMetadata"`
	Watermark       bool   `json:"watermark"`
}

// Payload is the data shared through a link.
type Payload struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Options   Options   `json:"options"`
	CreatedAt time.Time `json:"createdAt"`
}

// wirePayload distinguishes absent fields from empty strings on decode.
type wirePayload struct {
	Title     *string         `json:"title"`
	Content   *string         `json:"content"`
	Options   json.RawMessage `json:"options"`
	CreatedAt json.RawMessage `json:"createdAt"`
}

// Encode sets the share parameters on baseURL. Existing query parameters
// are kept.
func Encode(baseURL string, p Payload) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: base url: %w", ErrEncode, err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}

	q := u.Query()
	q.Set(ViewParam, ViewValue)
	q.Set(ShareParam, base64.RawURLEncoding.EncodeToString(data))
	u.RawQuery = q.Encode()

	out := u.String()
	if len(out) > MaxURLLength {
		return "", fmt.Errorf("%w: %d characters, limit %d", ErrTooLong, len(out), MaxURLLength)
	}
	return out, nil
}

// Decode extracts the payload from rawURL. It reports false for URLs that
// are not share links and for corrupt or foreign payloads.
func Decode(rawURL string) (Payload, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Payload{}, false
	}
	return DecodeQuery(u.Query())
}

// DecodeQuery is Decode for already parsed query parameters.
func DecodeQuery(q url.Values) (Payload, bool) {
	if q.Get(ViewParam) != ViewValue {
		return Payload{}, false
	}
	share := q.Get(ShareParam)
	if share == "" {
		return Payload{}, false
	}

	data, ok := decodeBase64URL(share)
	if !ok {
		return Payload{}, false
	}

	var wire wirePayload
	if err := json.Unmarshal(data, &wire); err != nil {
		return Payload{}, false
	}
	if wire.Title == nil || wire.Content == nil {
		return Payload{}, false
	}

	p := Payload{Title: *wire.Title, Content: *wire.Content}
	// Options and timestamp are best effort; a link with odd values still opens.
	if len(wire.Options) > 0 {
		_ = json.Unmarshal(wire.Options, &p.Options)
	}
	if len(wire.CreatedAt) > 0 {
		_ = json.Unmarshal(wire.CreatedAt, &p.CreatedAt)
	}
	return p, true
}

// decodeBase64URL accepts padded or unpadded input in either alphabet.
// A space is a '+' that went through query decoding.
func decodeBase64URL(s string) ([]byte, bool) {
	s = strings.NewReplacer("+", "-", " ", "-", "/", "_").Replace(strings.TrimRight(s, "="))
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return data, true
}
