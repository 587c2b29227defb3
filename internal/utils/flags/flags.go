package flags

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Flag is a CLI flag which can register itself with a flag set
type Flag interface {
	Register(fs *pflag.FlagSet)
}

// Meta is the flag metadata shared by all flags
type Meta struct {
	Name      string
	Shorthand string
	Usage     Usage
	Hidden    bool
}

// Usage is the flag usage, rendered as a single line of help text
type Usage struct {
	Description   string
	DefaultValue  string
	Note          string
	AllowedValues []string
}

func (u Usage) String() string {
	var sb strings.Builder
	sb.WriteString(u.Description)

	if len(u.AllowedValues) > 0 {
		sb.WriteString(fmt.Sprintf(" (allowed values: %s)", strings.Join(u.AllowedValues, ", ")))
	}
	if u.DefaultValue != "" {
		sb.WriteString(fmt.Sprintf(" (default value: %s)", u.DefaultValue))
	}
	if u.Note != "" {
		sb.WriteString(fmt.Sprintf(" (note: %s)", u.Note))
	}
	return sb.String()
}

// StringFlag is a string flag
type StringFlag struct {
	Meta
	Value        *string
	DefaultValue string
}

// Register registers the flag with the flag set
func (f StringFlag) Register(fs *pflag.FlagSet) {
	fs.StringVarP(f.Value, f.Name, f.Shorthand, f.DefaultValue, f.Usage.String())
	markHidden(fs, f.Meta)
}

// BoolFlag is a bool flag
type BoolFlag struct {
	Meta
	Value        *bool
	DefaultValue bool
}

// Register registers the flag with the flag set
func (f BoolFlag) Register(fs *pflag.FlagSet) {
	fs.BoolVarP(f.Value, f.Name, f.Shorthand, f.DefaultValue, f.Usage.String())
	markHidden(fs, f.Meta)
}

// DurationFlag is a duration flag
type DurationFlag struct {
	Meta
	Value        *time.Duration
	DefaultValue time.Duration
}

// Register registers the flag with the flag set
func (f DurationFlag) Register(fs *pflag.FlagSet) {
	fs.DurationVarP(f.Value, f.Name, f.Shorthand, f.DefaultValue, f.Usage.String())
	markHidden(fs, f.Meta)
}

// CustomFlag is a flag backed by a custom pflag.Value
type CustomFlag struct {
	Meta
	Value pflag.Value
}

// Register registers the flag with the flag set
func (f CustomFlag) Register(fs *pflag.FlagSet) {
	fs.VarP(f.Value, f.Name, f.Shorthand, f.Usage.String())
	markHidden(fs, f.Meta)
}

func markHidden(fs *pflag.FlagSet, meta Meta) {
	if meta.Hidden {
		fs.MarkHidden(meta.Name) //nolint: errcheck
	}
}
