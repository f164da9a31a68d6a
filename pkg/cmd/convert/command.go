package convert

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birdayz/hexer/pkg/app"
)

// NewCommand returns the "hexer convert" command. Without --mode the mode stored
// in the config is used.
func NewCommand(a *app.App) *cobra.Command {
	var modeFlag app.ModeValue

	cmd := &cobra.Command{
		Use:   "convert [INPUT...]",
		Short: "Convert in the configured direction",
		Example: `  hexer convert --mode text-to-hex hello
  hexer convert --mode hex-to-text 68 69
  hexer config set mode decode && hexer convert 68 69`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := a.Cfg.ActiveMode()
			if cmd.Flags().Changed("mode") {
				mode = modeFlag.Mode
			}

			inputs, err := a.ReadInputs(args, a.InputMode)
			if err != nil {
				return err
			}
			codec, err := a.NewCodec(false)
			if err != nil {
				return err
			}
			return a.RunConversions(mode, inputs, codec, app.ConvertTransform(mode))
		},
	}

	cmd.Flags().VarP(&modeFlag, "mode", "m", "Conversion mode: text-to-hex, hex-to-text")
	if err := cmd.RegisterFlagCompletionFunc("mode", app.CompleteMode); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}
	a.AddInputModeFlag(cmd)
	return cmd
}
