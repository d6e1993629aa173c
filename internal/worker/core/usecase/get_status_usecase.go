package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"pulseboard/internal/worker/core/domain"
	"pulseboard/internal/worker/core/ports"
)

type GetStatusUseCase struct {
	reader ports.HeartbeatReaderPort
}

// NewGetStatusUseCase accepts a nil reader; the worker is then always
// reported inactive.
func NewGetStatusUseCase(reader ports.HeartbeatReaderPort) *GetStatusUseCase {
	return &GetStatusUseCase{reader: reader}
}

// Execute reports the worker alive iff the liveness record exists and its
// remaining TTL is positive right now.
func (uc *GetStatusUseCase) Execute(ctx context.Context) (domain.Status, error) {
	if uc.reader == nil {
		return domain.Status{}, nil
	}

	rec, err := uc.reader.Read(ctx)
	if err != nil {
		return domain.Status{}, fmt.Errorf("read heartbeat: %w", err)
	}

	st := domain.Status{Active: rec.Exists && rec.TTL > 0}

	if rec.TTL > 0 {
		secs := int64(math.Ceil(rec.TTL.Seconds()))
		st.TTLRemaining = &secs
	}

	if rec.Exists {
		if ms, err := strconv.ParseInt(rec.Value, 10, 64); err == nil {
			st.LastBeatAt = &ms
		}
	}

	return st, nil
}
