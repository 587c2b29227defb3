package telemetry

import (
	"time"
)

type event struct {
	id          string
	eventType   EventType
	time        time.Time
	executionID string
	profile     string
	command     string
	version     string
	data        []EventData
}

// EventData holds additional event information
type EventData struct {
	Key   EventDataKey
	Value interface{}
}

// EventType is a cli event type
type EventType string

// set of supported cli event types
const (
	EventTypeCommandStart    EventType = "COMMAND_START"
	EventTypeCommandComplete EventType = "COMMAND_COMPLETE"
	EventTypeCommandError    EventType = "COMMAND_ERROR"
)

// EventDataKey is the key of an event's additional information
type EventDataKey string

// set of supported event data keys
const (
	EventDataKeyErr EventDataKey = "err"
)

func (e event) properties() map[string]interface{} {
	if len(e.data) == 0 {
		return nil
	}
	props := make(map[string]interface{}, len(e.data))
	for _, datum := range e.data {
		switch v := datum.Value.(type) {
		case error:
			props[string(datum.Key)] = v.Error()
		default:
			props[string(datum.Key)] = v
		}
	}
	return props
}
