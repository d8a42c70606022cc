package conversation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var roleTitle = cases.Title(language.English)

// ExportFormats lists the supported export encodings.
var ExportFormats = []string{"json", "md", "txt"}

// ValidExportFormat reports whether format is supported.
func ValidExportFormat(format string) bool {
	for _, f := range ExportFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Export writes the conversation to path in the given format.
func (c *Conversation) Export(path, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(c, "", "    ")
		if err != nil {
			return fmt.Errorf("encode conversation: %w", err)
		}
	case "md":
		data = []byte(c.Markdown())
	case "txt":
		data = []byte(c.PlainText())
	default:
		return fmt.Errorf("unsupported export format %q (valid: %s)", format, strings.Join(ExportFormats, ", "))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Markdown renders the conversation as a Markdown transcript.
func (c *Conversation) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Conversation %s\n\n", c.SessionID)
	fmt.Fprintf(&b, "- Model: %s\n", c.Model)
	fmt.Fprintf(&b, "- Started: %s\n\n", c.CreatedAt.Format(time.RFC3339))
	for _, m := range c.Messages {
		fmt.Fprintf(&b, "## %s (%s)\n\n%s\n\n", roleTitle.String(m.Role), m.Timestamp.Format("15:04:05"), m.Content)
	}
	return b.String()
}

// PlainText renders the conversation as a plain transcript.
func (c *Conversation) PlainText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Conversation %s (model %s, started %s)\n\n", c.SessionID, c.Model, c.CreatedAt.Format(time.RFC3339))
	for _, m := range c.Messages {
		fmt.Fprintf(&b, "[%s] %s:\n%s\n\n", m.Timestamp.Format("15:04:05"), m.Role, m.Content)
	}
	return b.String()
}
