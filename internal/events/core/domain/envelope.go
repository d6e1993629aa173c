package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedEnvelope = errors.New("malformed envelope")

// envelope is the queue wire format. Field names are shared with producers
// that already push onto the "events" list.
type envelope struct {
	ProjectID  string         `json:"projectId"`
	EventName  string         `json:"event"`
	UserID     string         `json:"userId,omitempty"`
	SessionID  string         `json:"sessionId,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

func EncodeEnvelope(e Event) ([]byte, error) {
	if strings.TrimSpace(e.ProjectID) == "" {
		return nil, fmt.Errorf("%w: project id is empty", ErrMalformedEnvelope)
	}
	return json.Marshal(envelope{
		ProjectID:  e.ProjectID,
		EventName:  e.EventName,
		UserID:     e.UserID,
		SessionID:  e.SessionID,
		Properties: e.Properties,
	})
}

// DecodeEnvelope only requires a project id; every other field is optional.
func DecodeEnvelope(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if strings.TrimSpace(env.ProjectID) == "" {
		return Event{}, fmt.Errorf("%w: project id is empty", ErrMalformedEnvelope)
	}
	return Event{
		ProjectID:  env.ProjectID,
		EventName:  env.EventName,
		UserID:     env.UserID,
		SessionID:  env.SessionID,
		Properties: env.Properties,
	}, nil
}
