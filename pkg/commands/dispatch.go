package commands

import (
	"fmt"
	"strings"

	"github.com/fratq/gpt-cli/pkg/api"
)

// Handler executes command side effects. The interactive app implements
// it; the dispatcher only routes.
type Handler interface {
	NewConversation() error
	ClearConversation() error
	ShowHistory() error
	SaveConversation() error
	LoadConversation() error
	ExportConversation() error
	SwitchModel(modelID string) error
	ShowStatus() error
	ShowAbout() error
	Exit() error
}

// Dispatcher maps palette command names to handler calls.
type Dispatcher struct {
	handler Handler
	entries []Entry
	// models maps a model: entry name back to the full model ID.
	models map[string]string
}

// NewDispatcher builds a dispatcher over the registry for models.
func NewDispatcher(h Handler, models []api.ModelInfo) *Dispatcher {
	d := &Dispatcher{
		handler: h,
		entries: Registry(models),
		models:  make(map[string]string, len(models)),
	}
	for _, m := range models {
		d.models[modelEntryPrefix+shortModelName(m.ID)] = m.ID
	}
	return d
}

// Entries returns the registry in declaration order.
func (d *Dispatcher) Entries() []Entry {
	return d.entries
}

// Run executes the named command.
func (d *Dispatcher) Run(name string) error {
	if strings.HasPrefix(name, modelEntryPrefix) {
		id, ok := d.models[name]
		if !ok {
			return fmt.Errorf("unknown model command %q", name)
		}
		return d.handler.SwitchModel(id)
	}

	switch name {
	case "new":
		return d.handler.NewConversation()
	case "clear":
		return d.handler.ClearConversation()
	case "history":
		return d.handler.ShowHistory()
	case "save":
		return d.handler.SaveConversation()
	case "load":
		return d.handler.LoadConversation()
	case "export":
		return d.handler.ExportConversation()
	case "status":
		return d.handler.ShowStatus()
	case "about":
		return d.handler.ShowAbout()
	case "exit":
		return d.handler.Exit()
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}
