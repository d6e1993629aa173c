package domain

import "time"

// Event is the stored form the aggregator reads. A zero EventName or
// CreatedAt means the column was NULL.
type Event struct {
	EventName string
	CreatedAt time.Time
}

// WellFormed reports whether the row can take part in stats output.
func (e Event) WellFormed() bool {
	return e.EventName != "" && !e.CreatedAt.IsZero()
}

// TopEventRow is the per event name rollup. LastSeen is the most recent
// CreatedAt seen for the name.
type TopEventRow struct {
	EventName string
	Count     int64
	LastSeen  time.Time
}

type TopEvents struct {
	Top    []TopEventRow
	Events []Event
}

// TimeRange bounds are inclusive.
type TimeRange struct {
	From time.Time
	To   time.Time
}

func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}
