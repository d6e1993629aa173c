package fiber

// TrackEventRequest represents an event submission
// @Description Event submission DTO. useRedis (or use_queue) routes the event through the queue.
type TrackEventRequest struct {
	Event      string         `json:"event" validate:"required,max=128,eventname" example:"signup_completed"`
	UserID     string         `json:"userId,omitempty" validate:"max=256"`
	SessionID  string         `json:"sessionId,omitempty" validate:"max=256"`
	Properties map[string]any `json:"properties,omitempty"`
	UseRedis   bool           `json:"useRedis,omitempty"`
	UseQueue   bool           `json:"use_queue,omitempty"`
}

type TrackEventResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status" example:"stored"`
}

type TrackBatchRequest struct {
	Events []TrackEventRequest `json:"events" validate:"required,min=1,max=500"`
}

type TrackBatchResponse struct {
	Success bool `json:"success"`
	Stored  int  `json:"stored"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_event"`
	Message string `json:"message,omitempty" example:"Event payload is invalid"`
}
