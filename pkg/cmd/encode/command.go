package encode

import (
	"github.com/spf13/cobra"

	"github.com/birdayz/hexer/pkg/app"
	"github.com/birdayz/hexer/pkg/hexcodec"
)

// NewCommand returns the "hexer encode" command.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encode [TEXT...]",
		Aliases: []string{"enc"},
		Short:   "Convert text to hex. Reads stdin when no text is given.",
		Long:    "Convert text to hex. Arguments are joined with single spaces; without arguments stdin is read, one input per line by default.",
		Example: `  hexer encode hello
  hexer encode -p 0x -d ', ' hello
  hexer encode --encoding ASCII --uppercase=false hello
  printf 'a\nb' | hexer encode --input-mode full`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.ReadInputs(args, a.InputMode)
			if err != nil {
				return err
			}
			codec, err := a.NewCodec(false)
			if err != nil {
				return err
			}
			return a.RunConversions(hexcodec.ModeTextToHex, inputs, codec, app.ConvertTransform(hexcodec.ModeTextToHex))
		},
	}

	a.AddInputModeFlag(cmd)
	return cmd
}
