package ui

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fratq/gpt-cli/pkg/api"
	"github.com/fratq/gpt-cli/pkg/conversation"
)

var titleCaser = cases.Title(language.English)

// RoleLabel returns the display form of a message role.
func RoleLabel(role string) string {
	return titleCaser.String(role)
}

// Truncate shortens s to at most max runes, appending an ellipsis when it
// had to cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// Welcome returns the banner printed when the interactive session starts.
func Welcome(model string) string {
	info := api.LookupModel(model)
	return fmt.Sprintf("GPT CLI - chatting with %s (%s)\nType / for commands.\n", info.Name, info.Description)
}

// StatusLines summarizes the current model and conversation for the
// status command.
func StatusLines(conv *conversation.Conversation) []string {
	info := api.LookupModel(conv.Model)
	caps := make([]string, 0, 3)
	if info.SupportsStreaming {
		caps = append(caps, "streaming")
	}
	if info.SupportsTools {
		caps = append(caps, "tools")
	}
	if info.SupportsReasoning {
		caps = append(caps, "reasoning")
	}
	capLine := "none"
	if len(caps) > 0 {
		capLine = strings.Join(caps, ", ")
	}
	return []string{
		fmt.Sprintf("Model: %s (%s)", info.Name, conv.Model),
		fmt.Sprintf("Capabilities: %s", capLine),
		fmt.Sprintf("Session: %s", conv.SessionID),
		fmt.Sprintf("Messages: %d (%d from you, %d replies)",
			conv.Len(),
			conv.CountByRole(conversation.RoleUser),
			conv.CountByRole(conversation.RoleAssistant)),
	}
}

// HistoryLines renders a compact transcript for the history command.
func HistoryLines(conv *conversation.Conversation, maxWidth int) []string {
	if conv.Len() == 0 {
		return []string{"No messages yet."}
	}
	lines := make([]string, 0, conv.Len())
	for _, m := range conv.Messages {
		content := strings.ReplaceAll(m.Content, "\n", " ")
		lines = append(lines, fmt.Sprintf("[%s] %s: %s",
			m.Timestamp.Format("15:04"), RoleLabel(m.Role), Truncate(content, maxWidth)))
	}
	return lines
}

// About returns the application description for the about command.
func About(version string) string {
	return fmt.Sprintf("gpt-cli %s - interactive terminal chat for Groq and Ollama models", version)
}
