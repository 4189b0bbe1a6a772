package calendar

import (
	"context"
	"time"
)

// Event is the provider-independent shape of one calendar entry.
// The provider assigns its own identifier on create.
type Event struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	ColorID     string
}

type Service interface {
	CreateEvent(ctx context.Context, event Event) (string, error)
	UpdateEvent(ctx context.Context, eventID string, event Event) error
	DeleteEvent(ctx context.Context, eventID string) error
}
