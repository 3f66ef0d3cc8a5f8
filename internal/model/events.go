package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventStudentLoggedIn  EventType = "student_logged_in"
	EventProgressRecorded EventType = "progress_recorded"
	EventProgressReset    EventType = "progress_reset"
)

// Event is something the teacher dashboard may want to see live
type Event struct {
	Type      EventType
	Timestamp time.Time
	Classroom string // canonical classroom key of the player
	PlayerID  PlayerID
	Payload   any // Type-specific data
}

// StudentLoggedInPayload contains data for login events
type StudentLoggedInPayload struct {
	FirstName string
	LastName  string
}

// ProgressRecordedPayload contains data for progress events
type ProgressRecordedPayload struct {
	Kind  string
	Value string
}

// ProgressResetPayload contains data for reset events.
// Levels is empty when all progress was cleared.
type ProgressResetPayload struct {
	Levels []string
}
