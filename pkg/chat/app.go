package chat

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fratq/gpt-cli/pkg/api"
	"github.com/fratq/gpt-cli/pkg/commands"
	"github.com/fratq/gpt-cli/pkg/config"
	"github.com/fratq/gpt-cli/pkg/console"
	"github.com/fratq/gpt-cli/pkg/conversation"
	"github.com/fratq/gpt-cli/pkg/ui"
	"github.com/fratq/gpt-cli/pkg/utils"
)

// App is the interactive chat loop: it owns the conversation, routes
// console actions to commands and providers, and prints responses.
type App struct {
	cfg      *config.Config
	conv     *conversation.Conversation
	logger   *utils.Logger
	markdown *ui.MarkdownRenderer
	version  string

	term       *console.Terminal
	session    *console.Session
	dispatcher *commands.Dispatcher
	out        io.Writer

	groq   *api.GroqClient
	ollama *api.OllamaClient

	quit bool
}

// New builds an app from the loaded configuration.
func New(cfg *config.Config, version string) *App {
	a := &App{
		cfg:     cfg,
		conv:    conversation.New(cfg.DefaultModel),
		logger:  utils.GetLogger(),
		version: version,
	}
	a.dispatcher = commands.NewDispatcher(a, api.Models())
	return a
}

// Run drives the interactive session until the user exits. It returns
// console.ErrNotATerminal when stdin is not a tty, so the caller can fall
// back to one-shot mode.
func (a *App) Run() error {
	term, err := console.OpenTerminal(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	a.term = term
	defer func() {
		if rerr := term.Restore(); rerr != nil {
			a.logger.LogError(rerr)
		}
	}()

	a.out = &crlfWriter{w: term.Output()}
	a.markdown = ui.NewMarkdownRenderer(term.Width())
	a.session = console.NewSession(console.SessionConfig{
		Input:      term,
		Output:     term.Output(),
		Entries:    paletteEntries(a.dispatcher.Entries()),
		EscTimeout: a.cfg.EscTimeout(),
		Logf:       a.logger.Logf,
	})

	fmt.Fprintln(a.out, ui.Welcome(a.conv.Model))

	for !a.quit {
		act, err := a.session.Next()
		if err != nil {
			a.session.Finish()
			return err
		}
		switch act.Kind {
		case console.ActionSubmit:
			a.handleSubmit(act.Text)
		case console.ActionRunCommand:
			a.handleCommand(act.Command)
		case console.ActionExit:
			a.quit = true
		}
		// ActionCancel and ActionCancelPalette need no work here; the
		// session already updated its own state.
	}
	a.session.Finish()
	fmt.Fprintln(a.out, "Goodbye.")
	return nil
}

func paletteEntries(entries []commands.Entry) []console.PaletteEntry {
	out := make([]console.PaletteEntry, len(entries))
	for i, e := range entries {
		out[i] = console.PaletteEntry{Name: e.Name, Category: e.Category, Description: e.Description}
	}
	return out
}

func (a *App) handleSubmit(text string) {
	a.conv.Add(conversation.RoleUser, text)
	if err := a.respond(); err != nil {
		a.logger.LogError(err)
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
	a.session.Renderer().Reset()
	if a.cfg.SaveHistory {
		if err := a.autosave(); err != nil {
			a.logger.LogError(err)
		}
	}
}

// respond sends the conversation to the model and prints the reply.
// Streaming models stream; the rest block and get markdown rendering.
func (a *App) respond() error {
	provider, err := a.providerFor(a.conv.Model)
	if err != nil {
		return err
	}
	req := a.buildRequest()
	info := api.LookupModel(a.conv.Model)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopWatch := a.watchInterrupt(cancel)
	defer stopWatch()

	if info.SupportsStreaming {
		var content []byte
		_, err = provider.Stream(ctx, req, func(delta string) {
			content = append(content, delta...)
			fmt.Fprint(a.out, delta)
		})
		fmt.Fprintln(a.out)
		if err != nil {
			if ctx.Err() == context.Canceled {
				fmt.Fprintln(a.out, "(response canceled)")
				return nil
			}
			return err
		}
		a.conv.Add(conversation.RoleAssistant, string(content))
		return nil
	}

	resp, err := provider.Complete(ctx, req)
	if err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintln(a.out, "(response canceled)")
			return nil
		}
		return err
	}
	fmt.Fprint(a.out, a.markdown.Render(resp.Content))
	a.conv.Add(conversation.RoleAssistant, resp.Content)
	return nil
}

// watchInterrupt cancels the in-flight request when Ctrl+C arrives during
// streaming. Other keys pressed while a response is printing are dropped.
func (a *App) watchInterrupt(cancel context.CancelFunc) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		reader := a.session.Reader()
		for {
			select {
			case <-done:
				return
			default:
			}
			ev, ok, err := reader.TryReadKey(50 * time.Millisecond)
			if err != nil {
				return
			}
			if ok && ev.Kind == console.KeyCtrlC {
				cancel()
				return
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}

func (a *App) buildRequest() api.Request {
	msgs := make([]api.Message, a.conv.Len())
	for i, m := range a.conv.Messages {
		msgs[i] = api.Message{Role: m.Role, Content: m.Content}
	}
	return api.Request{
		Model:            a.conv.Model,
		Messages:         msgs,
		MaxTokens:        a.cfg.MaxTokens,
		Temperature:      a.cfg.Temperature,
		ReasoningEffort:  a.cfg.ReasoningEffort,
		IncludeReasoning: a.cfg.IncludeReasoning,
	}
}

func (a *App) providerFor(model string) (api.Provider, error) {
	if api.IsOllamaModel(model) {
		if a.ollama == nil {
			client, err := api.NewOllamaClient()
			if err != nil {
				return nil, err
			}
			a.ollama = client
		}
		return a.ollama, nil
	}
	if a.groq == nil {
		if a.cfg.APIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is not set")
		}
		a.groq = api.NewGroqClient(a.cfg.APIKey,
			api.WithAttempts(a.cfg.RetryAttempts),
			api.WithTimeout(a.cfg.Timeout()))
	}
	return a.groq, nil
}

// handleCommand clears the palette's screen block, runs the command, and
// leaves the renderer clean for the next prompt.
func (a *App) handleCommand(name string) {
	if err := a.session.Finish(); err != nil {
		a.logger.LogError(err)
	}
	if err := a.dispatcher.Run(name); err != nil {
		a.logger.LogError(err)
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
	a.session.Renderer().Reset()
}

func (a *App) autosave() error {
	path, err := a.historyPath()
	if err != nil {
		return err
	}
	return a.conv.Save(path)
}

func (a *App) historyPath() (string, error) {
	dir, err := config.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, conversation.SanitizeFilename(a.cfg.HistoryFile)), nil
}

// crlfWriter rewrites bare newlines as CRLF so plain prints behave in raw
// mode.
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	start := 0
	for i, b := range p {
		if b != '\n' {
			continue
		}
		if i > start {
			if _, err := c.w.Write(p[start:i]); err != nil {
				return start, err
			}
		}
		if _, err := io.WriteString(c.w, "\r\n"); err != nil {
			return i, err
		}
		start = i + 1
	}
	if start < len(p) {
		if _, err := c.w.Write(p[start:]); err != nil {
			return start, err
		}
	}
	return len(p), nil
}
