package chat

import (
	"context"
	"fmt"
	"io"

	"github.com/fratq/gpt-cli/pkg/conversation"
	"github.com/fratq/gpt-cli/pkg/ui"
)

// RunOnce sends a single prompt without entering the interactive loop and
// prints the rendered response to out. Used by the ask subcommand and as
// the fallback when stdin is not a terminal.
func RunOnce(ctx context.Context, a *App, prompt string, out io.Writer) error {
	a.out = out
	a.markdown = ui.NewMarkdownRenderer(80)
	a.conv.Add(conversation.RoleUser, prompt)

	provider, err := a.providerFor(a.conv.Model)
	if err != nil {
		return err
	}
	resp, err := provider.Complete(ctx, a.buildRequest())
	if err != nil {
		return err
	}
	a.conv.Add(conversation.RoleAssistant, resp.Content)
	fmt.Fprint(out, a.markdown.Render(resp.Content))
	return nil
}
