package draftkit

import (
	"bytes"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/alnah/go-draftkit/internal/fileutil"
)

// Importable text formats, by extension without the dot.
var (
	textExtensions  = []string{"md", "markdown", "txt", "rtf", "csv", "json", "xml", "yml", "yaml"}
	htmlExtensions  = []string{"html", "htm"}
	imageExtensions = []string{"png", "jpg", "jpeg", "webp", "gif", "svg"}
)

var htmlConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// SupportedImportExtensions lists every extension ImportFile or the image
// insert flow accepts, with leading dots.
func SupportedImportExtensions() []string {
	all := slices.Concat(textExtensions, htmlExtensions, imageExtensions)
	out := make([]string, len(all))
	for i, ext := range all {
		out[i] = "." + ext
	}
	return out
}

// IsImageFile reports whether name has an image extension. Images are not
// imported as text; callers add them with InsertImage.
func IsImageFile(name string) bool {
	return slices.Contains(imageExtensions, fileutil.Ext(name))
}

// ImportFile converts a file into document text. Text formats are returned
// as-is (without a UTF-8 byte order mark); HTML is converted to Markdown.
// Images and unknown formats return ErrUnsupportedImport.
func ImportFile(name string, data []byte) (string, error) {
	ext := fileutil.Ext(name)
	if !slices.Contains(textExtensions, ext) && !slices.Contains(htmlExtensions, ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImport, name)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %q is empty", ErrEmptyContent, name)
	}

	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %q is not UTF-8 text", ErrUnsupportedImport, name)
	}

	if slices.Contains(htmlExtensions, ext) {
		md, err := htmlConverter.ConvertString(string(data))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrImportConversion, err)
		}
		return md, nil
	}
	return string(data), nil
}
