package domain

import "time"

// HeartbeatRecord is the raw view of the liveness key at read time.
type HeartbeatRecord struct {
	Exists bool
	// TTL is the remaining time to live; zero or negative when the key is
	// missing or has no expiry.
	TTL   time.Duration
	Value string
}

// Status is the liveness probe result. TTLRemaining is in seconds and
// LastBeatAt in unix milliseconds; both are nil when unknown.
type Status struct {
	Active       bool
	TTLRemaining *int64
	LastBeatAt   *int64
}
