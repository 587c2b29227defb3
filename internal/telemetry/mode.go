package telemetry

import (
	"fmt"
	"strings"
)

// set of supported telemetry flags
const (
	FlagMode            = "telemetry"
	FlagModeDescription = "Enable or disable telemetry (this setting is remembered)"
)

// Modes are the modes a user may select
var Modes = []Mode{ModeOn, ModeStdout, ModeOff}

// Mode is the telemetry mode
type Mode string

// NewMode creates a new Mode from the provided string, or ModeEmpty if it is invalid
func NewMode(val string) Mode {
	mode := Mode(val)
	if !isValidMode(mode) {
		return ModeEmpty
	}
	return mode
}

// String returns the string representation
func (m Mode) String() string { return string(m) }

// Type returns the Mode type
func (m Mode) Type() string { return "string" }

// Set validates and sets the telemetry mode value
func (m *Mode) Set(val string) error {
	mode := Mode(val)

	if !isValidMode(mode) {
		return fmt.Errorf("unsupported value, use one of [%s] instead", strings.Join(ModeNames(), ", "))
	}

	*m = mode
	return nil
}

// ModeNames returns the names of the modes a user may select
func ModeNames() []string {
	names := make([]string, len(Modes))
	for i, mode := range Modes {
		names[i] = mode.String()
	}
	return names
}

// set of supported telemetry modes
const (
	ModeEmpty  Mode = "" // zero-valued to be flag's default
	ModeOn     Mode = "on"
	ModeStdout Mode = "stdout"
	ModeOff    Mode = "off"
)

func isValidMode(mode Mode) bool {
	switch mode {
	case
		ModeEmpty,
		ModeOn,
		ModeStdout,
		ModeOff:
		return true
	}
	return false
}
