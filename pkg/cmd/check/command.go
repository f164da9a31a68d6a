package check

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birdayz/hexer/pkg/app"
	"github.com/birdayz/hexer/pkg/hexcodec"
)

// NewCommand returns the "hexer check" command.
func NewCommand(a *app.App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [HEX...]",
		Short: "Report whether inputs look like hex under the current settings",
		Long:  "Report whether inputs are structurally valid hex under the current settings. Only the hex structure is checked, not whether the bytes form valid text.",
		Example: `  hexer check 41 42
  hexer check -p 0x --strict '0x41 0xZZ'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.ReadInputs(args, a.InputMode)
			if err != nil {
				return err
			}

			w := app.NewTabWriter(a.OutWriter)
			if !a.NoHeaderFlag {
				fmt.Fprintf(w, "HEX-LIKE\tINPUT\t\n")
			}

			invalid := 0
			for _, input := range inputs {
				ok := hexcodec.IsHexLike(input, a.Settings())
				if !ok {
					invalid++
				}
				fmt.Fprintf(w, "%v\t%v\t\n", ok, input)
			}
			w.Flush()

			if strict && invalid > 0 {
				return fmt.Errorf("%d of %d inputs are not valid hex", invalid, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any input is not valid hex")
	a.AddInputModeFlag(cmd)
	a.AddNoHeadersFlag(cmd)
	return cmd
}
