package chat

import "time"

// Session tracks one widget conversation, keyed by a client-chosen id.
type Session struct {
	SessionID    string    `json:"sessionId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}
