package domain

import "time"

// EventType represents the kind of log line the classifier recognized
type EventType string

const (
	EventLogin        EventType = "login"
	EventLogout       EventType = "logout" // covers both lost-connection and console kicks
	EventServerStop   EventType = "server_stop"
	EventAchievement  EventType = "achievement"
	EventDeath        EventType = "death"
	EventChatMessage  EventType = "chat_message"
	EventUnrecognized EventType = "unrecognized"
)

// LogEvent is a single classified log line. It is produced by the classifier
// and consumed immediately by the aggregator; it is never stored.
//
// Timestamp is set only for login, logout and server-stop events. Achievement,
// death and chat lines carry no time of their own and are never filtered by
// the report cutoff.
type LogEvent struct {
	Type      EventType
	Username  string
	Timestamp time.Time
	// Achievement is the achievement title for EventAchievement.
	Achievement string
	// DeathCause is the capitalized death message for EventDeath.
	DeathCause string
}

// Unrecognized is the event returned for lines that match no known pattern.
var Unrecognized = LogEvent{Type: EventUnrecognized}
