// Package render converts post content from Markdown to HTML.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown post content into HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer. When unsafe is true, raw HTML in the source
// passes through to the output instead of being escaped.
func New(unsafe bool) *Renderer {
	opts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
	}
	if unsafe {
		opts = append(opts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	return &Renderer{md: goldmark.New(opts...)}
}

// HTML renders the Markdown source to HTML.
func (r *Renderer) HTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
