package shell

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birdayz/hexer/pkg/app"
)

// NewCommand returns the "hexer shell" command.
func NewCommand(a *app.App) *cobra.Command {
	var mode app.ModeValue

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive conversion session",
		Long: `Start an interactive conversion session. Every line is taken as input and converted
in the current mode. Lines starting with ':' are commands, type :help to list them.

With live mode off a line is converted and added to the history. With live mode on the
line is converted immediately without being recorded, use :convert to record it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.Cfg.ActiveMode()
			if cmd.Flags().Changed("mode") {
				m = mode.Mode
			}
			return New(a, m).Run(cmd.Context())
		},
	}

	cmd.Flags().VarP(&mode, "mode", "m", "Initial direction: text-to-hex, hex-to-text")
	if err := cmd.RegisterFlagCompletionFunc("mode", app.CompleteMode); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}

	return cmd
}
