package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/birdayz/hexer/pkg/app"
)

// NewCommand returns the "hexer completion" command.
// It takes the root command so it can generate completions for the full tree.
func NewCommand(root *cobra.Command, a *app.App) *cobra.Command {
	generators := map[string]func(io.Writer) error{
		"bash":       root.GenBashCompletion,
		"zsh":        root.GenZshCompletion,
		"fish":       func(w io.Writer) error { return root.GenFishCompletion(w, true) },
		"powershell": root.GenPowerShellCompletion,
	}

	return &cobra.Command{
		Use:   "completion [SHELL]",
		Short: "Generate completion script for bash, zsh, fish or powershell",
		Long: `To load completions:

Bash:

$ source <(hexer completion bash)

# To load completions for each session, execute once:
Linux:
  $ hexer completion bash > /etc/bash_completion.d/hexer
MacOS:
  $ hexer completion bash > /usr/local/etc/bash_completion.d/hexer

Zsh:

# To load completions for each session, execute once:
$ hexer completion zsh > "${fpath[1]}/_hexer"

Fish:

$ hexer completion fish > ~/.config/fish/completions/hexer.fish

Theme names, language tags, config keys, modes and encodings are completed as well.
`,
		DisableFlagsInUseLine: true,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := generators[args[0]](a.OutWriter); err != nil {
				return fmt.Errorf("failed to generate %v completion: %w", args[0], err)
			}
			return nil
		},
	}
}
