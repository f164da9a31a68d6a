// Package session holds the interactive state around the conversion engine:
// current input and output, the trigger policy and the recent history.
package session

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/birdayz/hexer/pkg/hexcodec"
	"github.com/birdayz/hexer/pkg/history"
)

// State is a snapshot of the session. Output and Error are never both set.
type State struct {
	Mode      hexcodec.Mode
	Settings  hexcodec.Settings
	Input     string
	Output    string
	Error     string
	ErrorKind hexcodec.Kind
}

type Option func(*Session)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithHistory(h *history.History) Option {
	return func(s *Session) { s.history = h }
}

type Session struct {
	mu       sync.Mutex
	mode     hexcodec.Mode
	settings hexcodec.Settings
	input    string
	output   string
	errMsg   string
	errKind  hexcodec.Kind

	history *history.History
	now     func() time.Time
	log     logrus.FieldLogger
}

func New(mode hexcodec.Mode, settings hexcodec.Settings, opts ...Option) *Session {
	s := &Session{
		mode:     mode,
		settings: settings,
		history:  history.New(history.DefaultCapacity),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	return s
}

// SetInput replaces the input. In live mode the conversion runs immediately but
// is not recorded in the history. Otherwise the previous result is dropped.
func (s *Session) SetInput(text string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input = text
	s.refresh()
	return s.state()
}

// Convert is the explicit trigger. A successful conversion with non-empty input
// and output is added to the history.
func (s *Session) Convert() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.run()
	if s.errMsg == "" && s.input != "" && s.output != "" {
		s.history.Add(history.NewEntry(s.input, s.output, s.mode, s.now()))
		s.log.WithField("entries", s.history.Len()).Debug("recorded conversion")
	}
	return s.state()
}

func (s *Session) SetMode(m hexcodec.Mode) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = m
	s.refresh()
	return s.state()
}

func (s *Session) SetSettings(settings hexcodec.Settings) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.refresh()
	return s.state()
}

// Swap moves the output into the input and flips the direction.
func (s *Session) Swap() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input = s.output
	s.mode = s.mode.Flip()
	s.refresh()
	return s.state()
}

// Clear resets input, output and error together.
func (s *Session) Clear() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input, s.output = "", ""
	s.setError(nil)
	return s.state()
}

// Restore loads a history entry back into the session.
func (s *Session) Restore(id string) (State, bool) {
	e, ok := s.history.Get(id)
	if !ok {
		return s.State(), false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = e.Mode
	s.input = e.Input
	s.output = e.Output
	s.setError(nil)
	return s.state(), true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) History() *history.History {
	return s.history
}

// refresh reruns the conversion in live mode and drops stale results otherwise.
func (s *Session) refresh() {
	if s.settings.LiveMode {
		s.run()
		return
	}
	s.output = ""
	s.setError(nil)
}

func (s *Session) run() {
	out, err := hexcodec.Convert(s.mode, s.input, s.settings)
	s.setError(err)
	if err != nil {
		s.output = ""
		s.log.WithFields(logrus.Fields{
			"mode": s.mode,
			"kind": hexcodec.KindOf(err),
		}).Debugf("conversion failed: %v", err)
		return
	}
	s.output = out
}

func (s *Session) setError(err error) {
	if err == nil {
		s.errMsg, s.errKind = "", hexcodec.KindUnknown
		return
	}
	s.errMsg, s.errKind = err.Error(), hexcodec.KindOf(err)
}

func (s *Session) state() State {
	return State{
		Mode:      s.mode,
		Settings:  s.settings,
		Input:     s.input,
		Output:    s.output,
		Error:     s.errMsg,
		ErrorKind: s.errKind,
	}
}
