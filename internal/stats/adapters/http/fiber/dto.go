package fiber

// TimestampLayout is fixed width, millisecond precision and always UTC, so
// the strings sort chronologically.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type EventResponse struct {
	EventName string `json:"event_name" example:"signup"`
	CreatedAt string `json:"created_at" example:"2024-01-01T10:00:00.000Z"`
}

type TopEventResponse struct {
	EventName string `json:"event_name" example:"signup"`
	Count     int64  `json:"count" example:"42"`
	LastSeen  string `json:"last_seen" example:"2024-01-01T10:00:00.000Z"`
}

type TopEventsResponse struct {
	Top    []TopEventResponse `json:"top"`
	Events []EventResponse    `json:"events"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_time_range"`
	Message string `json:"message,omitempty" example:"from and to must be dates or timestamps"`
}
