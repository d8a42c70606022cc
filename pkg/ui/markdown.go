package ui

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders assistant responses for terminal display. When
// the underlying renderer cannot be built (no TTY, unknown terminal), it
// degrades to returning the raw text.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer that word-wraps at width columns.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r = nil
	}
	return &MarkdownRenderer{renderer: r}
}

// Render returns the styled form of content, or content unchanged when
// rendering is unavailable or fails.
func (m *MarkdownRenderer) Render(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
