package store

import "time"

type SessionType string

const (
	SessionTypeTask  SessionType = "Task"
	SessionTypeBreak SessionType = "Break"
)

// TimelineRow is one audit-trail entry. RowIndex is assigned by the
// store, 1-based, and stable until a delete shifts the rows behind it.
type TimelineRow struct {
	RowIndex    int
	StartTime   time.Time
	EndTime     time.Time
	DurationMin float64
	Type        SessionType
	TaskName    string
	Reason      string
	EventID     string
}

// SummaryRow is one denormalized primary-log entry used for reporting.
// It carries no reference back to the timeline or the calendar.
type SummaryRow struct {
	LoggedAt      time.Time
	TaskName      string
	WorkMin       float64
	BreakMin      float64
	PredictedMin  float64
	Gap           string
	Depth         string
	Status        string
	SwitchCount   int
	Interruptions string
	Memo          string
}

// SummaryRef is the slice of a primary-log row the delete matcher
// reads: the store-internal id plus the two matchable fields.
type SummaryRef struct {
	ID       string
	LoggedAt time.Time
	TaskName string
}
