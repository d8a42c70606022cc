package chat

import (
	"fmt"
	"path/filepath"

	"github.com/fratq/gpt-cli/pkg/api"
	"github.com/fratq/gpt-cli/pkg/config"
	"github.com/fratq/gpt-cli/pkg/conversation"
	"github.com/fratq/gpt-cli/pkg/ui"
)

// The App implements commands.Handler; these are the palette commands'
// side effects.

// NewConversation starts a fresh session with the current model.
func (a *App) NewConversation() error {
	a.conv = conversation.New(a.conv.Model)
	fmt.Fprintln(a.out, "Started a new conversation.")
	return nil
}

// ClearConversation drops all messages but keeps the session.
func (a *App) ClearConversation() error {
	a.conv.Clear()
	fmt.Fprintln(a.out, "Conversation cleared.")
	return nil
}

// ShowHistory prints a compact transcript.
func (a *App) ShowHistory() error {
	width := 80
	if a.term != nil {
		width = a.term.Width()
	}
	for _, line := range ui.HistoryLines(a.conv, width-12) {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// SaveConversation writes the conversation to the configured history file.
func (a *App) SaveConversation() error {
	path, err := a.historyPath()
	if err != nil {
		return err
	}
	if err := a.conv.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}

// LoadConversation restores the previously saved conversation.
func (a *App) LoadConversation() error {
	path, err := a.historyPath()
	if err != nil {
		return err
	}
	conv, err := conversation.Load(path)
	if err != nil {
		return err
	}
	a.conv = conv
	fmt.Fprintf(a.out, "Loaded %d messages from %s\n", conv.Len(), path)
	return nil
}

// ExportConversation writes a Markdown transcript next to the history
// file.
func (a *App) ExportConversation() error {
	dir, err := config.StateDir()
	if err != nil {
		return err
	}
	name := conversation.SanitizeFilename(fmt.Sprintf("conversation_%s.md", a.conv.SessionID))
	path := filepath.Join(dir, name)
	if err := a.conv.Export(path, "md"); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported to %s\n", path)
	return nil
}

// SwitchModel changes the model for the rest of the conversation.
func (a *App) SwitchModel(modelID string) error {
	if !api.ValidModel(modelID) {
		return fmt.Errorf("invalid model %q", modelID)
	}
	a.conv.Model = modelID
	info := api.LookupModel(modelID)
	fmt.Fprintf(a.out, "Switched to %s.\n", info.Name)
	return nil
}

// ShowStatus prints the model and conversation summary.
func (a *App) ShowStatus() error {
	for _, line := range ui.StatusLines(a.conv) {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// ShowAbout prints the application blurb.
func (a *App) ShowAbout() error {
	fmt.Fprintln(a.out, ui.About(a.version))
	return nil
}

// Exit ends the interactive loop after the current action.
func (a *App) Exit() error {
	a.quit = true
	return nil
}
