package events

import (
	"context"
	"time"
)

// Event defines the contract for all domain events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "COURSE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	CourseCreated      = "COURSE_CREATED"
	CourseUpdated      = "COURSE_UPDATED"
	SegmentCreated     = "SEGMENT_CREATED"
	SegmentDeleted     = "SEGMENT_DELETED"
	CourseBookmarked   = "COURSE_BOOKMARKED"
	CourseUnbookmarked = "COURSE_UNBOOKMARKED"
	SnapshotAnalyzed   = "SNAPSHOT_ANALYZED"
	UserRegistered     = "USER_REGISTERED"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Publisher is implemented by the NATS publisher and by test recorders.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
