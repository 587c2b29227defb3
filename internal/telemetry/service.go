package telemetry

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogFile is the name of the file events are written to when telemetry is on
const LogFile = "telemetry.log"

// Service tracks telemetry events
type Service interface {
	TrackEvent(eventType EventType, data ...EventData)
	Close()
}

// Config is the telemetry service config
type Config struct {
	Mode    Mode
	Profile string
	Command string
	Version string

	// Dir is where the event log lives when the mode is on
	Dir string
	Fs  afero.Fs
}

type service struct {
	config      Config
	executionID string
	tracker     Tracker
	now         func() time.Time
}

// NewService creates a new telemetry service
func NewService(config Config) Service {
	return newService(config)
}

func newService(config Config) *service {
	s := service{
		config:      config,
		executionID: primitive.NewObjectID().Hex(),
		now:         time.Now,
	}

	switch config.Mode {
	case ModeStdout:
		s.tracker = &stdoutTracker{os.Stdout}
	case ModeEmpty, ModeOn:
		fs := config.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		s.tracker = &fileTracker{fs: fs, path: filepath.Join(config.Dir, LogFile)}
	default:
		s.tracker = &noopTracker{}
	}

	return &s
}

func (s *service) TrackEvent(eventType EventType, data ...EventData) {
	s.tracker.Track(event{
		id:          primitive.NewObjectID().Hex(),
		eventType:   eventType,
		time:        s.now(),
		executionID: s.executionID,
		profile:     s.config.Profile,
		command:     s.config.Command,
		version:     s.config.Version,
		data:        data,
	})
}

func (s *service) Close() {
	s.tracker.Close()
}
