package models

// User lifecycle actions published to the event stream.
const (
	ActionRegistered = "user.registered"
	ActionCreated    = "user.created"
	ActionUpdated    = "user.updated"
	ActionDeleted    = "user.deleted"
)

// UserEvent is a user lifecycle event published to Kafka.
type UserEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	Timestamp int64  `json:"timestamp"` // Unix timestamp of the event
	UserID    int64  `json:"user_id"`   // Affected user
	Action    string `json:"action"`    // One of the Action* constants
}
