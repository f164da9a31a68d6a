package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birdayz/hexer/pkg/hexcodec"
)

// OutputFormat controls how conversion results are printed.
type OutputFormat string

const (
	OutputFormatDefault OutputFormat = "default"
	OutputFormatRaw     OutputFormat = "raw"
	OutputFormatJSON    OutputFormat = "json"
)

func (e *OutputFormat) String() string {
	return string(*e)
}

func (e *OutputFormat) Set(v string) error {
	switch v {
	case "default", "raw", "json":
		*e = OutputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of: default, raw, json")
	}
}

func (e *OutputFormat) Type() string {
	return "OutputFormat"
}

// CompleteOutputFormat provides shell completion for --output.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"default", "raw", "json"}, cobra.ShellCompDirectiveNoFileComp
}

// InputMode controls how stdin is split into conversion inputs.
type InputMode string

const (
	InputModeLine InputMode = "line"
	InputModeFull InputMode = "full"
)

func (e *InputMode) String() string {
	return string(*e)
}

func (e *InputMode) Set(v string) error {
	switch v {
	case "line", "full":
		*e = InputMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of: line, full")
	}
}

func (e *InputMode) Type() string {
	return "InputMode"
}

// CompleteInputMode provides shell completion for --input-mode.
func CompleteInputMode(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"line", "full"}, cobra.ShellCompDirectiveNoFileComp
}

// ModeValue is a flag holding a conversion direction.
type ModeValue struct {
	Mode hexcodec.Mode
}

func (e *ModeValue) String() string {
	return string(e.Mode)
}

func (e *ModeValue) Set(v string) error {
	m, err := hexcodec.ParseMode(v)
	if err != nil {
		return err
	}
	e.Mode = m
	return nil
}

func (e *ModeValue) Type() string {
	return "Mode"
}

// CompleteMode provides shell completion for --mode.
func CompleteMode(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{string(hexcodec.ModeTextToHex), string(hexcodec.ModeHexToText)}, cobra.ShellCompDirectiveNoFileComp
}

// EncodingValue is a flag holding a text encoding.
type EncodingValue struct {
	Encoding hexcodec.Encoding
}

func (e *EncodingValue) String() string {
	return string(e.Encoding)
}

func (e *EncodingValue) Set(v string) error {
	enc, err := hexcodec.ParseEncoding(v)
	if err != nil {
		return err
	}
	e.Encoding = enc
	return nil
}

func (e *EncodingValue) Type() string {
	return "Encoding"
}

// CompleteEncoding provides shell completion for --encoding.
func CompleteEncoding(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{string(hexcodec.EncodingUTF8), string(hexcodec.EncodingASCII)}, cobra.ShellCompDirectiveNoFileComp
}
