package session

import (
	"context"
	"strings"

	"github.com/foxseedlab/focus-cockpit/internal/store"
)

// recentTaskSkip drops the 15 most recent distinct names from the
// suggestion list. The web client depends on this exact slice. It
// looks inverted (callers presumably want the names being skipped)
// but is preserved until product intent is clarified.
const recentTaskSkip = 15

// RecentTaskNames returns distinct task names from the primary log,
// most recent first, blanks removed, minus the first recentTaskSkip.
func (m *Manager) RecentTaskNames(ctx context.Context) ([]string, error) {
	names, err := m.primaryLog.TaskNames(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	distinct := make([]string, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		name := strings.TrimSpace(names[i])
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		distinct = append(distinct, name)
	}

	if len(distinct) <= recentTaskSkip {
		return []string{}, nil
	}
	return distinct[recentTaskSkip:], nil
}

// TimelineWindow returns the last rows of the timeline, most recent
// first, each carrying the store row index needed for a later update
// or delete call.
func (m *Manager) TimelineWindow(ctx context.Context) ([]store.TimelineRow, error) {
	rows, err := m.timeline.Tail(ctx, m.cfg.TimelineWindowRows)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
