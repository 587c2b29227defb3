package profile

import (
	"testing"

	"github.com/10gen/mongo-bootstrap/internal/telemetry"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDir = "/home/.config/mongo-bootstrap"

func TestProfileSaveLoad(t *testing.T) {
	fs := afero.NewMemMapFs()

	p := NewProfileAt("staging", testDir, fs)
	p.SetURI("mongodb://db0.example.com:27017")
	p.SetDirect(true)
	p.SetTelemetryMode(telemetry.ModeOff)

	require.Nil(t, p.Save())

	exists, err := afero.Exists(fs, "/home/.config/mongo-bootstrap/staging.yaml")
	require.Nil(t, err)
	assert.True(t, exists, "profile file should exist")

	t.Run("Should load the saved values into a new profile", func(t *testing.T) {
		loaded := NewProfileAt("staging", testDir, fs)
		require.Nil(t, loaded.Load())

		assert.Equal(t, "mongodb://db0.example.com:27017", loaded.URI())
		assert.True(t, loaded.Direct())
		assert.Equal(t, telemetry.ModeOff, loaded.TelemetryMode())
	})

	t.Run("Should not fail to load a profile that does not exist", func(t *testing.T) {
		missing := NewProfileAt("missing", testDir, fs)
		assert.Nil(t, missing.Load())
		assert.Equal(t, "", missing.URI())
		assert.False(t, missing.Direct())
	})

	t.Run("Should fail to load an invalid profile", func(t *testing.T) {
		require.Nil(t, afero.WriteFile(fs, "/home/.config/mongo-bootstrap/broken.yaml", []byte("uri: [\n"), 0600))

		broken := NewProfileAt("broken", testDir, fs)
		err := broken.Load()
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "failed to load CLI profile")
	})
}

func TestProfileResolveFlags(t *testing.T) {
	t.Run("Should fall back to the default uri", func(t *testing.T) {
		p := NewProfileAt(DefaultProfile, testDir, afero.NewMemMapFs())
		require.Nil(t, p.ResolveFlags())

		assert.Equal(t, DefaultURI, p.Flags.URI)
		assert.False(t, p.Flags.Direct)
		assert.Equal(t, telemetry.ModeEmpty, p.Flags.TelemetryMode)
	})

	t.Run("Should use the environment before the default uri", func(t *testing.T) {
		t.Setenv("MONGO_BOOTSTRAP_URI", "mongodb://env.example.com:27017")

		p := NewProfileAt(DefaultProfile, testDir, afero.NewMemMapFs())
		require.Nil(t, p.ResolveFlags())

		assert.Equal(t, "mongodb://env.example.com:27017", p.Flags.URI)
	})

	t.Run("Should use the stored profile before the environment", func(t *testing.T) {
		t.Setenv("MONGO_BOOTSTRAP_URI", "mongodb://env.example.com:27017")

		p := NewProfileAt(DefaultProfile, testDir, afero.NewMemMapFs())
		p.SetURI("mongodb://profile.example.com:27017")
		p.SetDirect(true)
		p.SetTelemetryMode(telemetry.ModeStdout)
		require.Nil(t, p.ResolveFlags())

		assert.Equal(t, "mongodb://profile.example.com:27017", p.Flags.URI)
		assert.True(t, p.Flags.Direct)
		assert.Equal(t, telemetry.ModeStdout, p.Flags.TelemetryMode)
	})

	t.Run("Should use the flags before anything else and remember the telemetry mode", func(t *testing.T) {
		p := NewProfileAt(DefaultProfile, testDir, afero.NewMemMapFs())
		p.SetURI("mongodb://profile.example.com:27017")
		p.SetTelemetryMode(telemetry.ModeStdout)

		p.Flags = Flags{URI: "mongodb://flag.example.com:27017", TelemetryMode: telemetry.ModeOff}
		require.Nil(t, p.ResolveFlags())

		assert.Equal(t, "mongodb://flag.example.com:27017", p.Flags.URI)
		assert.Equal(t, telemetry.ModeOff, p.TelemetryMode())
	})
}

func TestProfileEnv(t *testing.T) {
	t.Setenv("MONGO_BOOTSTRAP_ADMIN_PASSWORD", "s3cret")

	p := NewProfileAt(DefaultProfile, testDir, afero.NewMemMapFs())
	assert.Equal(t, "s3cret", p.Env("admin_password"))
	assert.Equal(t, "", p.Env("replica_admin_password"))
}

func TestProfilePath(t *testing.T) {
	p := NewProfileAt("default", testDir, afero.NewMemMapFs())
	assert.Equal(t, "/home/.config/mongo-bootstrap/default.yaml", p.Path())
	assert.Equal(t, testDir, p.Dir())
}
