package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fratq/gpt-cli/pkg/chat"
	"github.com/fratq/gpt-cli/pkg/config"
)

var askModel string

// askCmd runs a single prompt without the interactive session.
var askCmd = &cobra.Command{
	Use:   "ask [prompt...]",
	Short: "Send one prompt and print the response",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if askModel != "" {
			cfg.DefaultModel = askModel
		}
		app := chat.New(cfg, version)
		return chat.RunOnce(cmd.Context(), app, strings.Join(args, " "), cmd.OutOrStdout())
	},
}

func init() {
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "model to use for this prompt")
}
