package profile

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/10gen/mongo-bootstrap/internal/telemetry"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// DefaultProfile is the default profile name
	DefaultProfile = "default"

	// DefaultURI is the connection string used when none is configured
	DefaultURI = "mongodb://localhost:27017"

	envPrefix   = "mongo_bootstrap"
	profileType = "yaml"
)

// set of supported CLI profile flags
const (
	FlagProfile      = "profile"
	FlagProfileUsage = `Specify the CLI profile to use (default value: "default")`

	FlagURI      = "uri"
	FlagURIUsage = "Specify the MongoDB connection string (this setting is remembered)"

	FlagDirect      = "direct"
	FlagDirectUsage = "Connect directly to the host in the connection string, bypassing replica set discovery"
)

// set of supported CLI profile keys
const (
	keyURI           = "uri"
	keyDirect        = "direct"
	keyTelemetryMode = "telemetry_mode"
)

// Flags are the CLI profile flags
type Flags struct {
	URI           string
	Direct        bool
	TelemetryMode telemetry.Mode
}

// Profile is the CLI profile
type Profile struct {
	Flags
	Name string

	dir string
	fs  afero.Fs
	v   *viper.Viper
	env *viper.Viper
}

// NewDefaultProfile creates a new default CLI profile
func NewDefaultProfile() (*Profile, error) {
	return NewProfile(DefaultProfile)
}

// NewProfile creates a new CLI profile stored in the CLI home directory
func NewProfile(name string) (*Profile, error) {
	dir, dirErr := HomeDir()
	if dirErr != nil {
		return nil, fmt.Errorf("failed to create CLI profile: %w", dirErr)
	}
	return NewProfileAt(name, dir, afero.NewOsFs()), nil
}

// NewProfileAt creates a new CLI profile stored in dir on the provided filesystem
func NewProfileAt(name, dir string, fs afero.Fs) *Profile {
	v := viper.New()
	v.SetFs(fs)

	env := viper.New()
	env.SetEnvPrefix(envPrefix)
	env.AutomaticEnv()

	return &Profile{
		Name: name,
		dir:  dir,
		fs:   fs,
		v:    v,
		env:  env,
	}
}

// Dir returns the CLI profile directory
func (p Profile) Dir() string {
	return p.dir
}

// Fs returns the filesystem the CLI profile is stored on
func (p Profile) Fs() afero.Fs {
	return p.fs
}

// Path returns the CLI profile filepath
func (p Profile) Path() string {
	return filepath.Join(p.dir, fmt.Sprintf("%s.%s", p.Name, profileType))
}

// SetString sets the specified CLI profile property
func (p Profile) SetString(name, value string) {
	p.v.Set(p.propertyKey(name), value)
}

// GetString gets the specified CLI profile property
func (p Profile) GetString(name string) string {
	return p.v.GetString(p.propertyKey(name))
}

func (p Profile) propertyKey(name string) string {
	return fmt.Sprintf("%s.%s", p.Name, name)
}

// Env looks up the environment variable named after key,
// e.g. "admin_password" resolves MONGO_BOOTSTRAP_ADMIN_PASSWORD
func (p Profile) Env(key string) string {
	return p.env.GetString(key)
}

// Load loads the CLI profile
func (p Profile) Load() error {
	p.v.SetConfigName(p.Name)
	p.v.AddConfigPath(p.dir)
	p.v.SetConfigPermissions(0600)
	p.v.SetConfigType(profileType)

	if err := p.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil // proceed if profile doesn't exist
		}
		return fmt.Errorf("failed to load CLI profile: %w", err)
	}
	return nil
}

// Save saves the CLI profile
func (p Profile) Save() error {
	exists, existsErr := afero.DirExists(p.fs, p.dir)
	if existsErr != nil {
		return fmt.Errorf("failed to save CLI profile: %w", existsErr)
	}

	if !exists {
		if err := p.fs.MkdirAll(p.dir, 0700); err != nil {
			return fmt.Errorf("failed to save CLI profile: %w", err)
		}
	}

	if err := p.v.WriteConfigAs(p.Path()); err != nil {
		return fmt.Errorf("failed to save CLI profile: %w", err)
	}
	return nil
}

// ResolveFlags resolves the CLI profile flags, falling back to the
// stored profile, then the environment, then the defaults
func (p *Profile) ResolveFlags() error {
	if p.Flags.URI == "" {
		p.Flags.URI = p.URI()
	}
	if p.Flags.URI == "" {
		p.Flags.URI = p.Env(keyURI)
	}
	if p.Flags.URI == "" {
		p.Flags.URI = DefaultURI
	}

	if !p.Flags.Direct {
		p.Flags.Direct = p.Direct()
	}

	if p.Flags.TelemetryMode == telemetry.ModeEmpty {
		p.Flags.TelemetryMode = p.TelemetryMode()
	}
	p.SetTelemetryMode(p.Flags.TelemetryMode)

	return p.Save()
}

// URI gets the CLI profile connection string
func (p Profile) URI() string {
	return p.GetString(keyURI)
}

// SetURI sets the CLI profile connection string
func (p Profile) SetURI(uri string) {
	p.SetString(keyURI, uri)
}

// Direct gets whether the CLI profile connects directly to its host
func (p Profile) Direct() bool {
	direct, err := strconv.ParseBool(p.GetString(keyDirect))
	if err != nil {
		return false
	}
	return direct
}

// SetDirect sets whether the CLI profile connects directly to its host
func (p Profile) SetDirect(direct bool) {
	p.SetString(keyDirect, strconv.FormatBool(direct))
}

// TelemetryMode gets the CLI profile telemetry mode
func (p Profile) TelemetryMode() telemetry.Mode {
	return telemetry.NewMode(p.GetString(keyTelemetryMode))
}

// SetTelemetryMode sets the CLI profile telemetry mode
func (p Profile) SetTelemetryMode(mode telemetry.Mode) {
	p.SetString(keyTelemetryMode, mode.String())
}
