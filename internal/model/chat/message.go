package chat

import "time"

// Sender values a Message may carry.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is a single immutable turn in a session transcript. IDs are
// assigned globally, so they increase across sessions as well as within one.
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
