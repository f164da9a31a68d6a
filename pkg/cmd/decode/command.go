package decode

import (
	"github.com/spf13/cobra"

	"github.com/birdayz/hexer/pkg/app"
	"github.com/birdayz/hexer/pkg/hexcodec"
)

// NewCommand returns the "hexer decode" command.
func NewCommand(a *app.App) *cobra.Command {
	var msgpackFlag bool

	cmd := &cobra.Command{
		Use:     "decode [HEX...]",
		Aliases: []string{"dec"},
		Short:   "Convert hex back to text. Reads stdin when no hex is given.",
		Long:    "Convert hex back to text. The prefix is optional on every byte-pair and hex digits are case-insensitive. Malformed hex, invalid UTF-8 and non-ASCII bytes in ASCII mode are reported with the offending token or offset.",
		Example: `  hexer decode 68 65 6c 6c 6f
  hexer decode -p 0x '0x68 0x69'
  hexer decode -d '' 68656c6c6f
  echo '81 a4 6e 61 6d 65 a5 68 65 78 65 72' | hexer decode --msgpack`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.ReadInputs(args, a.InputMode)
			if err != nil {
				return err
			}

			codec, err := a.NewCodec(msgpackFlag)
			if err != nil {
				return err
			}

			transform := app.ConvertTransform(hexcodec.ModeHexToText)
			if msgpackFlag {
				transform = app.MsgpackTransform
			}
			return a.RunConversions(hexcodec.ModeHexToText, inputs, codec, transform)
		},
	}

	a.AddInputModeFlag(cmd)
	cmd.Flags().BoolVar(&msgpackFlag, "msgpack", false, "Interpret the decoded bytes as MessagePack and print them as JSON")
	return cmd
}
