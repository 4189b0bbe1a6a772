package session

import (
	"time"

	"github.com/foxseedlab/focus-cockpit/internal/store"
)

// MatchPolicy decides whether a primary-log row corresponds to a
// timeline row. The two stores share no key, so correspondence is
// exact task name plus a bounded end-time delta.
type MatchPolicy struct {
	Tolerance time.Duration
}

func (p MatchPolicy) Matches(ref store.SummaryRef, taskName string, endTime time.Time) bool {
	if ref.TaskName != taskName {
		return false
	}
	diff := ref.LoggedAt.Sub(endTime)
	if diff < 0 {
		diff = -diff
	}
	return diff < p.Tolerance
}

type operation string

const (
	opCreate operation = "create"
	opUpdate operation = "update"
	opDelete operation = "delete"
)

// calendarFailureFatal is the per-operation failure policy for the
// external calendar. Create must not persist anything the calendar
// never saw; update and delete are best-effort against a possibly
// stale event and only warn.
var calendarFailureFatal = map[operation]bool{
	opCreate: true,
	opUpdate: false,
	opDelete: false,
}
