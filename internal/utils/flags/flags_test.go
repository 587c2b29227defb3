package flags

import (
	"testing"
	"time"

	"github.com/10gen/mongo-bootstrap/internal/telemetry"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsage(t *testing.T) {
	for _, tc := range []struct {
		description string
		usage       Usage
		expected    string
	}{
		{
			description: "only a description",
			usage:       Usage{Description: "Specify the plan file"},
			expected:    "Specify the plan file",
		},
		{
			description: "every field",
			usage: Usage{
				Description:   "Enable telemetry",
				DefaultValue:  "on",
				Note:          "this setting is remembered",
				AllowedValues: []string{"on", "stdout", "off"},
			},
			expected: "Enable telemetry (allowed values: on, stdout, off) (default value: on) (note: this setting is remembered)",
		},
	} {
		t.Run("Should render a usage with "+tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.usage.String())
		})
	}
}

func TestFlagRegister(t *testing.T) {
	var (
		str      string
		b        bool
		duration time.Duration
		mode     telemetry.Mode
	)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for _, flag := range []Flag{
		StringFlag{Meta: Meta{Name: "plan", Shorthand: "p", Usage: Usage{Description: "plan file"}}, Value: &str, DefaultValue: "plan.yaml"},
		BoolFlag{Meta: Meta{Name: "dry-run"}, Value: &b},
		DurationFlag{Meta: Meta{Name: "timeout"}, Value: &duration, DefaultValue: 10 * time.Second},
		CustomFlag{Meta: Meta{Name: "telemetry", Hidden: true}, Value: &mode},
	} {
		flag.Register(fs)
	}

	t.Run("Should apply the default values", func(t *testing.T) {
		assert.Equal(t, "plan.yaml", str)
		assert.False(t, b)
		assert.Equal(t, 10*time.Second, duration)
		assert.Equal(t, telemetry.ModeEmpty, mode)
	})

	t.Run("Should parse the flag values", func(t *testing.T) {
		require.Nil(t, fs.Parse([]string{"-p", "other.yaml", "--dry-run", "--timeout", "1m", "--telemetry", "off"}))

		assert.Equal(t, "other.yaml", str)
		assert.True(t, b)
		assert.Equal(t, time.Minute, duration)
		assert.Equal(t, telemetry.ModeOff, mode)
	})

	t.Run("Should hide flags marked hidden", func(t *testing.T) {
		assert.True(t, fs.Lookup("telemetry").Hidden)
		assert.False(t, fs.Lookup("plan").Hidden)
	})
}
