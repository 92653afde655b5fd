package domain

import "time"

// AuthEventKind classifies an entry in the authentication audit trail.
type AuthEventKind string

const (
	EventLoginSucceeded    AuthEventKind = "login_succeeded"
	EventLoginFailed       AuthEventKind = "login_failed"
	EventLogout            AuthEventKind = "logout"
	EventSessionRehydrated AuthEventKind = "session_rehydrated"
	EventSessionDiscarded  AuthEventKind = "session_discarded"
)

// AuthEvent records a session lifecycle transition.
type AuthEvent struct {
	ID       string        `json:"id" bson:"_id"`
	Kind     AuthEventKind `json:"kind" bson:"kind"`
	Username string        `json:"username,omitempty" bson:"username,omitempty"`
	Role     string        `json:"role,omitempty" bson:"role,omitempty"`
	Reason   string        `json:"reason,omitempty" bson:"reason,omitempty"`
	At       time.Time     `json:"at" bson:"at"`
}
