package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fratq/gpt-cli/pkg/chat"
	"github.com/fratq/gpt-cli/pkg/config"
	"github.com/fratq/gpt-cli/pkg/console"
)

// rootCmd starts the interactive chat session. When stdin is not a
// terminal (piped input), it falls back to one-shot mode over stdin.
var rootCmd = &cobra.Command{
	Use:   "gpt-cli",
	Short: "Interactive terminal chat for Groq and Ollama models",
	Long: `gpt-cli is an interactive chat client for Groq-hosted models and local
Ollama models.

Inside the session:
  Enter    - send the message
  Ctrl+J   - insert a newline
  /        - open the command palette (new, clear, save, model switching, ...)
  Ctrl+C   - press twice to quit

Piped input runs a single completion instead:
  echo "explain raw terminal mode" | gpt-cli`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app := chat.New(cfg, version)
		err = app.Run()
		if errors.Is(err, console.ErrNotATerminal) {
			return runFromStdin(cmd.Context(), app, cmd.OutOrStdout())
		}
		return err
	},
}

// runFromStdin reads the whole piped input as one prompt.
func runFromStdin(ctx context.Context, app *chat.App, out io.Writer) error {
	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return fmt.Errorf("no prompt given: run interactively from a terminal or pipe a prompt in")
	}
	return chat.RunOnce(ctx, app, prompt, out)
}

// Execute runs the command tree. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(versionCmd)
}
