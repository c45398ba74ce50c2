package broker

type EventType string

// Standardized event types in format: <resource>.<action>
const (
	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"

	UserRegistered EventType = "user.registered"
	UserUpdated    EventType = "user.updated"
	UserDeleted    EventType = "user.deleted"
)

// NATS subjects events are published to.
const (
	TaskSubject = "taskory.tasks"
	UserSubject = "taskory.users"
)
