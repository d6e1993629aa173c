package fiber

type WorkerStatusResponse struct {
	Active       bool   `json:"active" example:"true"`
	TTLRemaining *int64 `json:"ttl_remaining" example:"17"`
	LastBeatAt   *int64 `json:"last_beat_at" example:"1700000000000"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"worker_status_unavailable"`
	Message string `json:"message,omitempty" example:"Could not read worker heartbeat"`
}
