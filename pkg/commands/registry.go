package commands

import (
	"fmt"
	"strings"

	"github.com/fratq/gpt-cli/pkg/api"
)

// Entry is one command offered in the palette. The registry's slice order
// is the palette's tie-break order, so built-ins are declared most-used
// first.
type Entry struct {
	Name        string
	Category    string
	Description string
	Shortcut    string
}

// modelEntryPrefix namespaces the per-model switch commands.
const modelEntryPrefix = "model:"

// Registry returns the built-in command entries plus one model: switch
// entry per known model.
func Registry(models []api.ModelInfo) []Entry {
	entries := []Entry{
		{Name: "new", Category: "Chat", Description: "Start a new chat session", Shortcut: "Ctrl+N"},
		{Name: "clear", Category: "Chat", Description: "Clear conversation history", Shortcut: "Ctrl+L"},
		{Name: "history", Category: "Chat", Description: "Show conversation history", Shortcut: "Ctrl+H"},
		{Name: "save", Category: "Chat", Description: "Save the conversation to disk"},
		{Name: "load", Category: "Chat", Description: "Load the saved conversation"},
		{Name: "export", Category: "Chat", Description: "Export the conversation (json, md, txt)"},
	}
	for _, m := range models {
		entries = append(entries, Entry{
			Name:        modelEntryPrefix + shortModelName(m.ID),
			Category:    "Models",
			Description: fmt.Sprintf("Switch to %s", m.Name),
		})
	}
	entries = append(entries,
		Entry{Name: "status", Category: "Quick Actions", Description: "Show current model and conversation status"},
		Entry{Name: "about", Category: "Quick Actions", Description: "Show application information"},
		Entry{Name: "exit", Category: "System", Description: "Exit the application", Shortcut: "Ctrl+Q"},
	)
	return entries
}

// shortModelName drops the publisher prefix for palette display, so
// openai/gpt-oss-20b shows as model:gpt-oss-20b.
func shortModelName(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
