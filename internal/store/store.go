package store

import (
	"context"
	"errors"
	"time"
)

// ErrRowNotFound is returned by TimelineStore.Update and Delete when
// no row exists at the given index.
var ErrRowNotFound = errors.New("timeline row not found")

// TimelineUpdate carries the six editable fields of a timeline row.
// The event id column is deliberately absent: updates never touch it.
type TimelineUpdate struct {
	StartTime   time.Time
	EndTime     time.Time
	DurationMin float64
	Type        SessionType
	TaskName    string
	Reason      string
}

type TimelineStore interface {
	Append(ctx context.Context, row TimelineRow) (int, error)
	Get(ctx context.Context, rowIndex int) (*TimelineRow, error)
	Update(ctx context.Context, rowIndex int, fields TimelineUpdate) error
	Delete(ctx context.Context, rowIndex int) error
	Tail(ctx context.Context, n int) ([]TimelineRow, error)
}

type PrimaryLogStore interface {
	Append(ctx context.Context, row SummaryRow) error
	TaskNames(ctx context.Context) ([]string, error)
	Entries(ctx context.Context) ([]SummaryRef, error)
	Delete(ctx context.Context, id string) error
}

type StateStore interface {
	Save(ctx context.Context, userID string, blob []byte) error
	Load(ctx context.Context, userID string) ([]byte, error)
}

type FeedbackStore interface {
	Append(ctx context.Context, at time.Time, comment string) error
}
