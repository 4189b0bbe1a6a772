package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/foxseedlab/focus-cockpit/internal/store"
)

func seedTaskNames(deps *testDeps, names ...string) {
	for i, name := range names {
		deps.primaryLog.rows = append(deps.primaryLog.rows, store.SummaryRow{
			LoggedAt: baseTime.Add(time.Duration(i) * time.Hour),
			TaskName: name,
		})
		deps.primaryLog.ids = append(deps.primaryLog.ids, fmt.Sprintf("summary-%d", i))
	}
}

// The first 15 distinct names are dropped from the result. This reads
// inverted (callers presumably want the most recent names) but is the
// contract the web client has always seen; see the note on
// recentTaskSkip.
func TestRecentTaskNames_DropsFifteenMostRecent(t *testing.T) {
	m, deps := newTestManager()
	names := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		names = append(names, fmt.Sprintf("Task %02d", i))
	}
	seedTaskNames(deps, names...)

	got, err := m.RecentTaskNames(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Most recent first is Task 20..Task 01; dropping 15 leaves Task 05..Task 01.
	want := []string{"Task 05", "Task 04", "Task 03", "Task 02", "Task 01"}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at %d expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRecentTaskNames_DeduplicatesAndSkipsBlanks(t *testing.T) {
	m, deps := newTestManager()
	names := []string{"A", "", "B", "A", "  ", "C"}
	for i := 1; i <= 16; i++ {
		names = append(names, fmt.Sprintf("Filler %02d", i))
	}
	seedTaskNames(deps, names...)

	got, err := m.RecentTaskNames(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Distinct most-recent-first: Filler 16..01, C, A, B (the later A
	// occurrence wins). 19 distinct names minus the first 15 leaves 4.
	want := []string{"Filler 01", "C", "A", "B"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at %d expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRecentTaskNames_ShortListIsEmpty(t *testing.T) {
	m, deps := newTestManager()
	seedTaskNames(deps, "A", "B", "C")

	got, err := m.RecentTaskNames(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("fewer than 16 distinct names yields an empty result, got %v", got)
	}
}

func TestTimelineWindow_MostRecentFirstWithRowIndexes(t *testing.T) {
	m, _ := newTestManager()
	for i := 0; i < 25; i++ {
		seedSession(t, m, fmt.Sprintf("Task %02d", i), baseTime.Add(time.Duration(i)*time.Hour))
	}

	rows, err := m.TimelineWindow(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 20 {
		t.Fatalf("expected a 20 row window, got %d", len(rows))
	}
	if rows[0].TaskName != "Task 24" || rows[0].RowIndex != 25 {
		t.Fatalf("expected the newest row first with its store index, got %+v", rows[0])
	}
	if rows[19].TaskName != "Task 05" || rows[19].RowIndex != 6 {
		t.Fatalf("expected the oldest row of the window last, got %+v", rows[19])
	}
}

func TestTimelineWindow_ShortStore(t *testing.T) {
	m, _ := newTestManager()
	seedSession(t, m, "Only", baseTime)

	rows, err := m.TimelineWindow(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].RowIndex != 1 {
		t.Fatalf("expected row index 1, got %d", rows[0].RowIndex)
	}
}
