package exporter

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// HTMLPreview renders generated text as Markdown for display in the web page.
// Raw HTML in the text is omitted from the output.
func HTMLPreview(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
