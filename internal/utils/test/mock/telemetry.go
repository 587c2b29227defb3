package mock

import (
	"sync"

	"github.com/10gen/mongo-bootstrap/internal/telemetry"
)

// TrackedEvent is an event received by the mock telemetry service
type TrackedEvent struct {
	Type telemetry.EventType
	Data []telemetry.EventData
}

// TelemetryService is a mocked telemetry service which records every tracked event
type TelemetryService struct {
	TrackEventFn func(eventType telemetry.EventType, data ...telemetry.EventData)
	CloseFn      func()

	mu     sync.Mutex
	events []TrackedEvent
	closed bool
}

// TrackEvent records the event and calls the mocked TrackEvent implementation if provided
func (s *TelemetryService) TrackEvent(eventType telemetry.EventType, data ...telemetry.EventData) {
	s.mu.Lock()
	s.events = append(s.events, TrackedEvent{eventType, data})
	s.mu.Unlock()

	if s.TrackEventFn != nil {
		s.TrackEventFn(eventType, data...)
	}
}

// Close marks the service closed and calls the mocked Close implementation if provided
func (s *TelemetryService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	if s.CloseFn != nil {
		s.CloseFn()
	}
}

// Events returns the events tracked so far
func (s *TelemetryService) Events() []TrackedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TrackedEvent(nil), s.events...)
}

// Closed reports whether the service has been closed
func (s *TelemetryService) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
