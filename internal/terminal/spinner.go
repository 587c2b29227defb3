package terminal

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const (
	defaultSpinnerDuration = 100 * time.Millisecond
)

// SpinnerOptions represents the spinner options
type SpinnerOptions struct {
	Icon     []string
	Duration time.Duration
}

// Spinner reports progress of a long-running operation
type Spinner interface {
	Start()
	Stop()
	SetMessage(message string)
}

type uiSpinner struct {
	s *spinner.Spinner
}

func newUISpinner(w io.Writer, message string, opts SpinnerOptions) *uiSpinner {
	icon := opts.Icon
	if len(icon) == 0 {
		icon = spinner.CharSets[14]
	}

	duration := opts.Duration
	if duration == 0 {
		duration = defaultSpinnerDuration
	}

	return &uiSpinner{spinner.New(
		icon,
		duration,
		spinner.WithWriter(w),
		spinner.WithSuffix(" "+message),
		spinner.WithHiddenCursor(true),
	)}
}

func (s *uiSpinner) Start() { s.s.Start() }
func (s *uiSpinner) Stop()  { s.s.Stop() }

// SetMessage may be called while the spinner is running
func (s *uiSpinner) SetMessage(message string) {
	s.s.Lock()
	s.s.Suffix = " " + message
	s.s.Unlock()
}

type noopSpinner struct{}

func (s noopSpinner) Start()                    {}
func (s noopSpinner) Stop()                     {}
func (s noopSpinner) SetMessage(message string) {}
