package terminal

import (
	"fmt"
	"io"
	"log"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"
)

// UI is a terminal UI
type UI interface {
	AutoConfirm() bool
	AskOne(answer interface{}, prompt survey.Prompt) error
	Ask(answer interface{}, questions ...*survey.Question) error
	Confirm(format string, args ...interface{}) (bool, error)
	Print(logs ...Log)
	Spinner(message string, opts SpinnerOptions) Spinner
}

// UIConfig holds the global config for the CLI ui
type UIConfig struct {
	AutoConfirm   bool
	DisableColors bool
	OutputFormat  OutputFormat
	OutputTarget  string
}

// NewUI creates a new terminal UI
func NewUI(config UIConfig, in io.Reader, out, err io.Writer, errLogger *log.Logger) UI {
	noColor := config.DisableColors
	if config.OutputFormat == OutputFormatJSON || config.OutputTarget != "" {
		noColor = true
	}
	color.NoColor = noColor

	return &ui{
		config:    config,
		in:        in,
		out:       out,
		err:       err,
		errLogger: errLogger,
	}
}

type ui struct {
	config    UIConfig
	in        io.Reader
	out       io.Writer
	err       io.Writer
	errLogger *log.Logger
}

func (ui *ui) AutoConfirm() bool {
	return ui.config.AutoConfirm
}

func (ui *ui) AskOne(answer interface{}, prompt survey.Prompt) error {
	return survey.AskOne(prompt, answer, ui.stdio())
}

func (ui *ui) Ask(answer interface{}, questions ...*survey.Question) error {
	return survey.Ask(questions, answer, ui.stdio())
}

func (ui *ui) Confirm(format string, args ...interface{}) (bool, error) {
	if ui.config.AutoConfirm {
		return true, nil
	}

	var confirmed bool
	if err := ui.AskOne(&confirmed, &survey.Confirm{Message: fmt.Sprintf(format, args...)}); err != nil {
		return false, err
	}
	return confirmed, nil
}

func (ui *ui) Print(logs ...Log) {
	for _, log := range logs {
		output, outputErr := log.Print(ui.config.OutputFormat)
		if outputErr != nil {
			ui.logError(outputErr)
			continue
		}

		writer := ui.out
		if log.Level == LogLevelError {
			writer = ui.err
		}

		if _, err := fmt.Fprintln(writer, output); err != nil {
			ui.logError(err)
		}
	}
}

func (ui *ui) Spinner(message string, opts SpinnerOptions) Spinner {
	if ui.config.OutputFormat != OutputFormatText || ui.config.OutputTarget != "" {
		return noopSpinner{}
	}
	if _, ok := ui.out.(terminal.FileWriter); !ok {
		return noopSpinner{}
	}
	return newUISpinner(ui.err, message, opts)
}

func (ui *ui) logError(err error) {
	if ui.errLogger == nil {
		return
	}
	ui.errLogger.Print(err)
}

func (ui *ui) stdio() survey.AskOpt {
	in, inOK := ui.in.(terminal.FileReader)
	if !inOK {
		in = noopFdReader{ui.in}
	}
	out, outOK := ui.out.(terminal.FileWriter)
	if !outOK {
		out = noopFdWriter{ui.out}
	}
	return survey.WithStdio(in, out, ui.err)
}

type noopFdReader struct {
	io.Reader
}

func (r noopFdReader) Fd() uintptr {
	return 0
}

type noopFdWriter struct {
	io.Writer
}

func (w noopFdWriter) Fd() uintptr {
	return 0
}
