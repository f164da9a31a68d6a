package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/birdayz/hexer/pkg/app"
	"github.com/birdayz/hexer/pkg/cmd/check"
	"github.com/birdayz/hexer/pkg/cmd/completion"
	hexconfig "github.com/birdayz/hexer/pkg/cmd/config"
	"github.com/birdayz/hexer/pkg/cmd/convert"
	"github.com/birdayz/hexer/pkg/cmd/decode"
	"github.com/birdayz/hexer/pkg/cmd/encode"
	"github.com/birdayz/hexer/pkg/cmd/shell"
)

// Execute is the single entry point for the CLI.
func Execute(version, commit string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand(app.New(), version, commit).ExecuteContext(ctx)
}

// NewRootCommand builds the full command tree around a.
func NewRootCommand(a *app.App, version, commit string) *cobra.Command {
	root := &cobra.Command{
		Use:          "hexer",
		Short:        "Convert text to hexadecimal and back",
		Long:         "Convert text to its hexadecimal byte representation and back, with configurable delimiter, per-byte prefix, letter case and text encoding.",
		Version:      fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.OutWriter = cmd.OutOrStdout()
			a.ErrWriter = cmd.ErrOrStderr()
			a.InReader = cmd.InOrStdin()

			if a.OutWriter != os.Stdout {
				a.ColorableOut = a.OutWriter
			}

			return a.InitConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.CfgFile, "config", "", "config file (default is $HOME/.hexer/config)")
	root.PersistentFlags().VarP(&a.Output, "output", "o", "Output format: default, raw, json")
	root.PersistentFlags().StringVar(&a.Template, "template", "", "Render every result through a go template. Fields: .Mode .Input .Output .Error .ErrorKind")
	root.PersistentFlags().BoolVar(&a.Verbose, "verbose", false, "Enable debug logging on stderr")
	a.AddSettingsFlags(root)

	if err := root.RegisterFlagCompletionFunc("output", app.CompleteOutputFormat); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}

	root.AddCommand(
		encode.NewCommand(a),
		decode.NewCommand(a),
		convert.NewCommand(a),
		check.NewCommand(a),
		shell.NewCommand(a),
		hexconfig.NewCommand(a),
		completion.NewCommand(root, a),
	)

	a.Root = root
	return root
}
