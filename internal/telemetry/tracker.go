package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
)

// Tracker logs events
type Tracker interface {
	Track(e event)
	Close()
}

type noopTracker struct{}

func (t *noopTracker) Track(e event) {}
func (t *noopTracker) Close()        {}

type stdoutTracker struct {
	w io.Writer
}

func (t *stdoutTracker) Track(e event) {
	data := make([]string, 0, len(e.data))
	for _, datum := range e.data {
		data = append(data, fmt.Sprintf("%s=%v", datum.Key, datum.Value))
	}
	fmt.Fprintf(t.w, "%s UTC TELEM %s: %s%v\n",
		e.time.In(time.UTC).Format("15:04:05"),
		e.command,
		e.eventType,
		data,
	)
}

func (t *stdoutTracker) Close() {}

// fileTracker appends each event as a JSON line to the file at path
type fileTracker struct {
	fs   afero.Fs
	path string
	f    afero.File
}

type fileEvent struct {
	ID          string                 `json:"id"`
	Type        EventType              `json:"type"`
	Time        time.Time              `json:"time"`
	ExecutionID string                 `json:"execution_id"`
	Profile     string                 `json:"profile"`
	Command     string                 `json:"command"`
	Version     string                 `json:"version"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
}

func (t *fileTracker) Track(e event) {
	if t.f == nil {
		f, err := t.fs.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return // telemetry never interrupts a command
		}
		t.f = f
	}

	line, err := json.Marshal(fileEvent{
		ID:          e.id,
		Type:        e.eventType,
		Time:        e.time,
		ExecutionID: e.executionID,
		Profile:     e.profile,
		Command:     e.command,
		Version:     e.version,
		Properties:  e.properties(),
	})
	if err != nil {
		return
	}
	t.f.Write(append(line, '\n'))
}

func (t *fileTracker) Close() {
	if t.f != nil {
		t.f.Close()
		t.f = nil
	}
}
