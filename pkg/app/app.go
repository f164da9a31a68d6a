package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/message"

	"github.com/birdayz/hexer/pkg/config"
	"github.com/birdayz/hexer/pkg/hexcodec"
	"github.com/birdayz/hexer/pkg/i18n"
)

// App holds all shared mutable state for the CLI. It is created once per
// invocation and threaded into every command package.
type App struct {
	// I/O
	OutWriter    io.Writer
	ErrWriter    io.Writer
	InReader     io.Reader
	ColorableOut io.Writer

	// Config state
	Cfg     config.Config
	CfgFile string

	// Per-invocation overrides, applied on top of the config when the flag is set.
	DelimiterFlag string
	PrefixFlag    string
	UppercaseFlag bool
	EncodingFlag  EncodingValue

	InputMode InputMode

	// Display
	Output       OutputFormat
	Template     string
	NoHeaderFlag bool
	Verbose      bool

	Log     *logrus.Logger
	Printer *message.Printer

	settings hexcodec.Settings

	// Root command reference (for completion generation)
	Root *cobra.Command
}

// New creates an App with sane defaults.
func New() *App {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	return &App{
		OutWriter:    os.Stdout,
		ErrWriter:    os.Stderr,
		InReader:     os.Stdin,
		ColorableOut: colorable.NewColorableStdout(),
		InputMode:    InputModeLine,
		Output:       OutputFormatDefault,
		Log:          log,
		Printer:      i18n.NewPrinter("en"),
		settings:     hexcodec.DefaultSettings(),
	}
}

// InitConfig reads the config file and applies the flags the user set on cmd.
// Called by PersistentPreRunE on the root command.
func (a *App) InitConfig(cmd *cobra.Command) error {
	a.Log.SetOutput(a.ErrWriter)
	if a.Verbose {
		a.Log.SetLevel(logrus.DebugLevel)
	}

	var err error
	a.Cfg, err = config.ReadConfig(a.CfgFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.Log.WithField("path", a.Cfg.Path()).Debug("loaded config")

	s := a.Cfg.ConverterSettings()
	flags := cmd.Flags()
	if flags.Changed("delimiter") {
		s.Delimiter = Unescape(a.DelimiterFlag)
	}
	if flags.Changed("prefix") {
		s.Prefix = Unescape(a.PrefixFlag)
	}
	if flags.Changed("uppercase") {
		s.Uppercase = a.UppercaseFlag
	}
	if flags.Changed("encoding") {
		s.Encoding = a.EncodingFlag.Encoding
	}

	if a.settings, err = s.Normalize(); err != nil {
		return err
	}
	a.Printer = i18n.NewPrinter(a.Cfg.ActiveLanguage())
	return nil
}

// Settings returns the effective converter settings for this invocation.
func (a *App) Settings() hexcodec.Settings {
	return a.settings
}

// AddSettingsFlags installs the converter overrides on cmd.
func (a *App) AddSettingsFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.DelimiterFlag, "delimiter", "d", " ", `Separator between byte-pairs. Understands \t, \n and \r`)
	flags.StringVarP(&a.PrefixFlag, "prefix", "p", "", `Prefix for every byte-pair, e.g. "0x"`)
	flags.BoolVarP(&a.UppercaseFlag, "uppercase", "u", true, "Use uppercase hex digits")
	flags.Var(&a.EncodingFlag, "encoding", "Text encoding: UTF-8, ASCII")
	if err := cmd.RegisterFlagCompletionFunc("encoding", CompleteEncoding); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}
}

// AddInputModeFlag installs --input-mode on cmd.
func (a *App) AddInputModeFlag(cmd *cobra.Command) {
	cmd.Flags().Var(&a.InputMode, "input-mode", "Scanning input mode for stdin: [line|full]")
	if err := cmd.RegisterFlagCompletionFunc("input-mode", CompleteInputMode); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}
}

// AddNoHeadersFlag installs --no-headers on cmd.
func (a *App) AddNoHeadersFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&a.NoHeaderFlag, "no-headers", false, "Hide table headers")
}

// ValidThemeArgs provides shell completion for theme names.
func (a *App) ValidThemeArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return config.Themes, cobra.ShellCompDirectiveNoFileComp
}

// ValidLanguageArgs provides shell completion for language tags.
func (a *App) ValidLanguageArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return i18n.Names(), cobra.ShellCompDirectiveNoFileComp
}

// ValidConfigKeys provides shell completion for config keys.
func (a *App) ValidConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys, cobra.ShellCompDirectiveNoFileComp
}

var escapes = strings.NewReplacer(`\\`, `\`, `\t`, "\t", `\n`, "\n", `\r`, "\r")

// Unescape expands \t, \n, \r and \\ in s. Other backslashes are kept, so a
// prefix such as \x passes through unchanged.
func Unescape(s string) string {
	return escapes.Replace(s)
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f any) bool {
	file, ok := f.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

const (
	TabwriterMinWidth = 6
	TabwriterWidth    = 4
	TabwriterPadding  = 3
	TabwriterPadChar  = ' '
	TabwriterFlags    = 0
)

// NewTabWriter creates a standard tabwriter for CLI output.
func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, TabwriterMinWidth, TabwriterWidth, TabwriterPadding, TabwriterPadChar, TabwriterFlags)
}
