package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/birdayz/hexer/pkg/app"
	"github.com/birdayz/hexer/pkg/config"
	"github.com/birdayz/hexer/pkg/i18n"
)

// NewCommand returns the "hexer config" command with subcommands.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Handle hexer configuration",
	}

	cmd.AddCommand(
		newShowCommand(a),
		newPathCommand(a),
		newSetCommand(a),
		newSetThemeCommand(a),
		newSetLanguageCommand(a),
		newSelectThemeCommand(a),
		newSelectLanguageCommand(a),
		newImportCommand(a),
	)

	return cmd
}

func newShowCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the stored configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := a.Cfg.ConverterSettings()
			w := app.NewTabWriter(a.OutWriter)
			if !a.NoHeaderFlag {
				fmt.Fprintf(w, "KEY\tVALUE\t\n")
			}
			fmt.Fprintf(w, "theme\t%v\t\n", a.Cfg.ActiveTheme())
			fmt.Fprintf(w, "language\t%v\t\n", a.Cfg.ActiveLanguage())
			fmt.Fprintf(w, "mode\t%v\t\n", a.Cfg.ActiveMode())
			fmt.Fprintf(w, "delimiter\t%q\t\n", s.Delimiter)
			fmt.Fprintf(w, "prefix\t%q\t\n", s.Prefix)
			fmt.Fprintf(w, "uppercase\t%v\t\n", s.Uppercase)
			fmt.Fprintf(w, "encoding\t%v\t\n", orDefault(string(s.Encoding), "UTF-8"))
			fmt.Fprintf(w, "live-mode\t%v\t\n", s.LiveMode)
			w.Flush()
		},
	}
	a.AddNoHeadersFlag(cmd)
	return cmd
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func newPathCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path of the configuration file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.OutWriter, a.Cfg.Path())
		},
	}
}

func newSetCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a setting",
		Long: fmt.Sprintf(`Store a setting in the configuration file. Valid keys: %s.
Delimiter and prefix values understand \t, \n and \r.`, strings.Join(config.Keys, ", ")),
		Example: `  hexer config set delimiter ', '
  hexer config set prefix 0x
  hexer config set encoding ASCII
  hexer config set live-mode true`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: a.ValidConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if key == "delimiter" || key == "prefix" {
				value = app.Unescape(value)
			}
			if err := a.Cfg.Update(key, value); err != nil {
				return fmt.Errorf("unable to set %v: %w", key, err)
			}
			fmt.Fprintf(a.OutWriter, "Set %v to %q.\n", key, value)
			return nil
		},
	}
}

func newSetThemeCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "set-theme [NAME]",
		Short:             "Sets the color theme",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidThemeArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTheme(a, args[0])
		},
	}
}

func setTheme(a *app.App, name string) error {
	if err := a.Cfg.Update("theme", name); err != nil {
		return fmt.Errorf("unable to set theme: %w", err)
	}
	fmt.Fprintln(a.OutWriter, a.Printer.Sprintf(i18n.MsgThemeSwitched, a.Cfg.ActiveTheme()))
	return nil
}

func newSetLanguageCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "set-language [TAG]",
		Short:             "Sets the display language (BCP 47 tag, e.g. en, es, de)",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.ValidLanguageArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setLanguage(a, args[0])
		},
	}
}

func setLanguage(a *app.App, tag string) error {
	if err := a.Cfg.Update("language", tag); err != nil {
		return fmt.Errorf("unable to set language: %w", err)
	}
	a.Printer = i18n.NewPrinter(a.Cfg.ActiveLanguage())
	fmt.Fprintln(a.OutWriter, a.Printer.Sprintf(i18n.MsgLangSwitched, a.Cfg.ActiveLanguage()))
	return nil
}

func newSelectThemeCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "select-theme",
		Short: "Interactively select a color theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, ok := selectItem("Select theme", config.Themes, a.Cfg.ActiveTheme())
			if !ok {
				return nil
			}
			return setTheme(a, selected)
		},
	}
}

func newSelectLanguageCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "select-language",
		Short: "Interactively select the display language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := i18n.Match(a.Cfg.ActiveLanguage()).String()
			selected, ok := selectItem("Select language", i18n.Names(), current)
			if !ok {
				return nil
			}
			return setLanguage(a, selected)
		},
	}
}

// selectItem runs a searchable promptui select. ok is false if the user cancelled.
func selectItem(label string, items []string, current string) (string, bool) {
	pos := 0
	for k, item := range items {
		if item == current {
			pos = k
		}
	}

	searcher := func(input string, index int) bool {
		item := strings.ReplaceAll(strings.ToLower(items[index]), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(item, input)
	}

	p := promptui.Select{
		Label:     label,
		Items:     items,
		Searcher:  searcher,
		Size:      10,
		CursorPos: pos,
	}

	_, selected, err := p.Run()
	if err != nil {
		// User cancelled (e.g. Ctrl-C). Not an error.
		return "", false
	}
	return selected, true
}

func newImportCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import settings from a .properties file into the configuration",
		Long: fmt.Sprintf(`Import settings from a Java-style .properties file. Recognized keys: %s.
Values with leading spaces must be escaped, e.g. delimiter= .`, strings.Join(config.Keys, ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := a.Cfg.Import(args[0])
			if err != nil {
				return fmt.Errorf("failed to import %v: %w", args[0], err)
			}
			fmt.Fprintf(a.OutWriter, "Imported %v into %v.\n", strings.Join(applied, ", "), a.Cfg.Path())
			return nil
		},
	}
}
