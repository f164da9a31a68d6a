package shell

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/birdayz/hexer/pkg/app"
	"github.com/birdayz/hexer/pkg/hexcodec"
	"github.com/birdayz/hexer/pkg/i18n"
	"github.com/birdayz/hexer/pkg/session"
)

const help = `Commands:
  :mode [text-to-hex|hex-to-text]  show or change the direction
  :swap                            use the output as input and flip the direction
  :convert                         convert the current input and record it
  :live on|off                     convert on every line without recording
  :delimiter [VALUE]               separator between byte-pairs (\t, \n, \r understood)
  :prefix [VALUE]                  prefix for every byte-pair
  :uppercase on|off                hex digit case
  :encoding UTF-8|ASCII            text encoding
  :settings                        show the current settings
  :history                         list recent conversions, newest first
  :recall N                        load history entry N
  :clear                           clear input, output and error
  :clear-history                   forget all recorded conversions
  :save                            store mode and settings in the config file
  :theme NAME                      switch theme (dark, light, plain)
  :lang TAG                        switch language (en, es, de)
  :quit                            leave the shell`

// Shell reads lines from the app's input and drives a conversion session.
type Shell struct {
	a           *app.App
	sess        *session.Session
	log         logrus.FieldLogger
	interactive bool
}

// New creates a shell starting in mode with the app's effective settings.
func New(a *app.App, mode hexcodec.Mode) *Shell {
	log := a.Log.WithField("component", "shell")
	return &Shell{
		a:           a,
		sess:        session.New(mode, a.Settings(), session.WithLogger(log)),
		log:         log,
		interactive: app.IsTerminal(a.InReader),
	}
}

// Session exposes the underlying session.
func (s *Shell) Session() *session.Session {
	return s.sess
}

// Run processes lines until end of input, :quit or ctx being cancelled.
func (s *Shell) Run(ctx context.Context) error {
	if s.interactive {
		fmt.Fprintln(s.a.OutWriter, s.a.Printer.Sprintf(i18n.MsgMode, s.sess.State().Mode))
	}

	scanner := bufio.NewScanner(s.a.InReader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		s.prompt()
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSuffix(scanner.Text(), "\r")
		quit, err := s.Handle(line)
		if err != nil {
			return err
		}
		if quit {
			fmt.Fprintln(s.a.OutWriter, s.a.Printer.Sprintf(i18n.MsgGoodbye))
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning input failed: %w", err)
	}
	return nil
}

func (s *Shell) prompt() {
	if !s.interactive {
		return
	}
	st := s.sess.State()
	p := "hex> "
	if st.Mode == hexcodec.ModeHexToText {
		p = "text> "
	}
	if st.Settings.LiveMode {
		p = "~" + p
	}
	fmt.Fprint(s.a.OutWriter, s.a.Style()(p))
}

// Handle processes a single line. quit is true when the user asked to leave.
func (s *Shell) Handle(line string) (quit bool, err error) {
	if !strings.HasPrefix(line, ":") {
		s.input(line)
		return false, nil
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	s.log.WithField("command", name).Debug("shell command")

	switch name {
	case "q", "quit", "exit":
		return true, nil
	case "help", "h", "?":
		fmt.Fprintln(s.a.OutWriter, help)
	case "mode":
		s.mode(strings.TrimSpace(arg))
	case "swap":
		s.show(s.sess.Swap(), true)
	case "convert", "c":
		s.show(s.sess.Convert(), false)
	case "live":
		s.updateBool(arg, func(st *hexcodec.Settings, v bool) { st.LiveMode = v })
	case "delimiter":
		s.update(func(st *hexcodec.Settings) error {
			st.Delimiter = app.Unescape(arg)
			return nil
		})
	case "prefix":
		s.update(func(st *hexcodec.Settings) error {
			st.Prefix = app.Unescape(arg)
			return nil
		})
	case "uppercase":
		s.updateBool(arg, func(st *hexcodec.Settings, v bool) { st.Uppercase = v })
	case "encoding":
		s.update(func(st *hexcodec.Settings) error {
			enc, err := hexcodec.ParseEncoding(strings.TrimSpace(arg))
			if err != nil {
				return err
			}
			st.Encoding = enc
			return nil
		})
	case "settings":
		s.printSettings()
	case "history":
		s.printHistory()
	case "recall":
		s.recall(strings.TrimSpace(arg))
	case "clear":
		s.sess.Clear()
		fmt.Fprintln(s.a.OutWriter, s.a.Printer.Sprintf(i18n.MsgCleared))
	case "clear-history":
		s.sess.History().Clear()
		fmt.Fprintln(s.a.OutWriter, s.a.Printer.Sprintf(i18n.MsgHistoryCleared))
	case "save":
		return false, s.save()
	case "theme":
		s.configure("theme", strings.TrimSpace(arg), func() {
			fmt.Fprintln(s.a.OutWriter, s.a.Printer.Sprintf(i18n.MsgThemeSwitched, s.a.Cfg.ActiveTheme()))
		})
	case "lang", "language":
		s.configure("language", strings.TrimSpace(arg), func() {
			s.a.Printer = i18n.NewPrinter(s.a.Cfg.ActiveLanguage())
			fmt.Fprintln(s.a.OutWriter, s.a.Printer.Sprintf(i18n.MsgLangSwitched, s.a.Cfg.ActiveLanguage()))
		})
	default:
		fmt.Fprintln(s.a.ErrWriter, s.a.Printer.Sprintf(i18n.MsgUnknownCommand, line))
	}
	return false, nil
}

// input stores line. Outside live mode it is converted and recorded right away.
func (s *Shell) input(line string) {
	st := s.sess.SetInput(line)
	if !st.Settings.LiveMode {
		st = s.sess.Convert()
	}
	s.show(st, false)
}

func (s *Shell) mode(arg string) {
	if arg == "" {
		fmt.Fprintln(s.a.OutWriter, s.a.Printer.Sprintf(i18n.MsgMode, s.sess.State().Mode))
		return
	}
	m, err := hexcodec.ParseMode(arg)
	if err != nil {
		s.fail(err)
		return
	}
	s.show(s.sess.SetMode(m), true)
}

func (s *Shell) update(fn func(*hexcodec.Settings) error) {
	st := s.sess.State().Settings
	if err := fn(&st); err != nil {
		s.fail(err)
		return
	}
	normalized, err := st.Normalize()
	if err != nil {
		s.fail(err)
		return
	}
	s.sess.SetSettings(normalized)
	s.printSettings()
}

func (s *Shell) updateBool(arg string, fn func(*hexcodec.Settings, bool)) {
	s.update(func(st *hexcodec.Settings) error {
		v, err := parseSwitch(arg)
		if err != nil {
			return err
		}
		fn(st, v)
		return nil
	})
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", v)
	}
	return b, nil
}

func (s *Shell) recall(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(s.a.ErrWriter, s.a.Printer.Sprintf(i18n.MsgNoEntry, arg))
		return
	}
	e, ok := s.sess.History().At(n - 1)
	if !ok {
		fmt.Fprintln(s.a.ErrWriter, s.a.Printer.Sprintf(i18n.MsgNoEntry, arg))
		return
	}
	st, _ := s.sess.Restore(e.ID)
	fmt.Fprintf(s.a.OutWriter, "> %s\n", st.Input)
	s.show(st, true)
}

func (s *Shell) save() error {
	st := s.sess.State()
	s.a.Cfg.Mode = string(st.Mode)
	s.a.Cfg.SetConverterSettings(st.Settings)
	if err := s.a.Cfg.Write(); err != nil {
		return fmt.Errorf("unable to save config: %w", err)
	}
	fmt.Fprintf(s.a.OutWriter, "Saved to %v.\n", s.a.Cfg.Path())
	return nil
}

func (s *Shell) configure(key, value string, done func()) {
	if err := s.a.Cfg.Update(key, value); err != nil {
		s.fail(err)
		return
	}
	done()
}

// show prints the output or the error of st. With withMode the mode is printed first.
func (s *Shell) show(st session.State, withMode bool) {
	p := s.a.Printer
	if withMode {
		fmt.Fprintln(s.a.OutWriter, p.Sprintf(i18n.MsgMode, st.Mode))
	}
	switch {
	case st.Error != "":
		fmt.Fprintf(s.a.ErrWriter, "%s (%s): %s\n", p.Sprintf(i18n.MsgError), st.ErrorKind, st.Error)
	case st.Output != "":
		fmt.Fprintf(s.a.OutWriter, "%s: %s\n", p.Sprintf(i18n.MsgOutput), st.Output)
	}
}

func (s *Shell) fail(err error) {
	fmt.Fprintf(s.a.ErrWriter, "%s: %v\n", s.a.Printer.Sprintf(i18n.MsgError), err)
}

func (s *Shell) printSettings() {
	st := s.sess.State()
	p := s.a.Printer
	fmt.Fprintln(s.a.OutWriter, p.Sprintf(i18n.MsgMode, st.Mode))
	fmt.Fprintln(s.a.OutWriter, p.Sprintf(i18n.MsgSettings, st.Settings.Delimiter, st.Settings.Prefix, st.Settings.Uppercase, st.Settings.Encoding))
	fmt.Fprintln(s.a.OutWriter, p.Sprintf(i18n.MsgLive, st.Settings.LiveMode))
}

func (s *Shell) printHistory() {
	entries := s.sess.History().Entries()
	if len(entries) == 0 {
		fmt.Fprintln(s.a.OutWriter, s.a.Printer.Sprintf(i18n.MsgHistoryEmpty))
		return
	}

	w := app.NewTabWriter(s.a.OutWriter)
	fmt.Fprintf(w, "#\tMODE\tINPUT\tOUTPUT\tTIME\t\n")
	for i, e := range entries {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t\n", i+1, e.Mode, abbreviate(e.Input), abbreviate(e.Output), e.Timestamp.Format("15:04:05"))
	}
	w.Flush()
}

func abbreviate(s string) string {
	const maxLen = 32
	s = strconv.QuoteToASCII(s)
	s = s[1 : len(s)-1]
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
