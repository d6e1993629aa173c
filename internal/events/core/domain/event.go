package domain

// Event is an accepted event before persistence. The store assigns the id
// and created_at timestamp at write time.
type Event struct {
	ProjectID  string
	EventName  string
	UserID     string
	SessionID  string
	Properties map[string]any
}
