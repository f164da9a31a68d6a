package app

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/manifoldco/promptui"

	"github.com/birdayz/hexer/pkg/config"
	"github.com/birdayz/hexer/pkg/hexcodec"
)

// Result is what gets printed for every conversion.
type Result struct {
	Mode      hexcodec.Mode `json:"mode"`
	Input     string        `json:"input"`
	Output    string        `json:"output"`
	Error     string        `json:"error,omitempty"`
	ErrorKind string        `json:"errorKind,omitempty"`
}

// Render prints r according to --template or --output.
func (a *App) Render(r Result) error {
	switch {
	case a.Template != "":
		out, err := RenderTemplate(a.Template, r)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.OutWriter, out)
	case a.Output == OutputFormatJSON:
		out, err := a.Formatter().Marshal(r)
		if err != nil {
			return fmt.Errorf("could not encode result: %w", err)
		}
		_, _ = a.ColorableOut.Write(out)
		fmt.Fprintln(a.OutWriter)
	case a.Output == OutputFormatRaw:
		fmt.Fprint(a.OutWriter, r.Output)
	default:
		fmt.Fprintln(a.OutWriter, r.Output)
	}
	return nil
}

// RenderTemplate executes tpl against r with the sprig function set.
func RenderTemplate(tpl string, r Result) (string, error) {
	t, err := template.New("hexer").Funcs(sprig.TxtFuncMap()).Parse(tpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse go template: %w", err)
	}

	buf := bytes.NewBuffer(nil)
	if err := t.Execute(buf, r); err != nil {
		return "", fmt.Errorf("failed to execute go template: %w", err)
	}
	return buf.String(), nil
}

// Formatter returns a JSON formatter for the configured theme. Colors are only
// used when writing to a terminal.
func (a *App) Formatter() *prettyjson.Formatter {
	f := NewFormatter(a.Cfg.ActiveTheme())
	if !IsTerminal(a.OutWriter) {
		f.DisabledColor = true
	}
	return f
}

// NewFormatter builds a JSON formatter for theme.
func NewFormatter(theme string) *prettyjson.Formatter {
	f := prettyjson.NewFormatter()
	switch theme {
	case config.ThemeLight:
		f.KeyColor = color.New(color.FgBlue)
		f.StringColor = color.New(color.FgMagenta)
		f.BoolColor = color.New(color.FgRed)
		f.NumberColor = color.New(color.FgCyan)
		f.NullColor = color.New(color.FgHiBlack)
	case config.ThemePlain:
		f.DisabledColor = true
	}
	return f
}

// Style returns a text styler for the shell prompt in the configured theme.
func (a *App) Style() func(any) string {
	switch a.Cfg.ActiveTheme() {
	case config.ThemePlain:
		return func(v any) string { return fmt.Sprint(v) }
	case config.ThemeLight:
		return promptui.Styler(promptui.FGBlue)
	default:
		return promptui.Styler(promptui.FGCyan, promptui.FGBold)
	}
}
