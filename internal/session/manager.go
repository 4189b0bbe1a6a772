package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/foxseedlab/focus-cockpit/internal/calendar"
	"github.com/foxseedlab/focus-cockpit/internal/config"
	"github.com/foxseedlab/focus-cockpit/internal/store"
)

// Manager reconciles one logical session operation across the three
// stores: the external calendar, the timeline audit trail, and the
// denormalized primary log. The stores share no key and offer no
// transactional join, so each operation is a fixed ordered sequence of
// blocking calls; partial failure leaves the stores divergent and no
// repair pass exists.
type Manager struct {
	cfg        *config.Config
	timeline   store.TimelineStore
	primaryLog store.PrimaryLogStore
	state      store.StateStore
	feedback   store.FeedbackStore
	calendar   calendar.Service
	match      MatchPolicy
	now        func() time.Time
}

func NewManager(cfg *config.Config, timeline store.TimelineStore, primaryLog store.PrimaryLogStore, stateStore store.StateStore, feedback store.FeedbackStore, cal calendar.Service) *Manager {
	return &Manager{
		cfg:        cfg,
		timeline:   timeline,
		primaryLog: primaryLog,
		state:      stateStore,
		feedback:   feedback,
		calendar:   cal,
		match:      MatchPolicy{Tolerance: cfg.MatchTolerance()},
		now:        time.Now,
	}
}

type CreateInput struct {
	StartTime time.Time
	EndTime   time.Time
	Type      store.SessionType
	TaskName  string
	Reason    string
}

type ManualCreateInput struct {
	CreateInput
	PredictedMin float64
	IsDeepWork   bool
	Status       string
	Memo         string
}

// CreateSession records one completed session: calendar event first,
// then the timeline row carrying the calendar's event id. The order
// matters — a calendar failure aborts the whole create so no orphaned
// rows exist, while a timeline failure after a calendar success is an
// accepted divergence the caller may retry (at-least-once side
// effects).
func (m *Manager) CreateSession(ctx context.Context, input CreateInput) Result {
	rec := Record{
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Type:      input.Type,
		TaskName:  input.TaskName,
		Reason:    input.Reason,
	}
	if err := rec.validate(); err != nil {
		return fail(FailureInvalidDuration, err)
	}

	eventID, err := m.calendar.CreateEvent(ctx, calendar.Event{
		Title:       eventTitle(rec.Type, rec.TaskName),
		Description: "Reason: " + rec.Reason,
		StartTime:   rec.StartTime,
		EndTime:     rec.EndTime,
		ColorID:     eventColor(rec.Type),
	})
	if err != nil {
		if calendarFailureFatal[opCreate] {
			slog.Error("calendar create failed; aborting before any store write", "error", err, "task", rec.TaskName)
			return failf(FailureExternalService, "calendar create failed: %v", err)
		}
		slog.Warn("calendar create failed; recording session without an event id", "error", err, "task", rec.TaskName)
	}

	rowIndex, err := m.timeline.Append(ctx, store.TimelineRow{
		StartTime:   rec.StartTime,
		EndTime:     rec.EndTime,
		DurationMin: rec.DurationMinutes(),
		Type:        rec.Type,
		TaskName:    rec.TaskName,
		Reason:      rec.Reason,
		EventID:     eventID,
	})
	if err != nil {
		slog.Error("timeline append failed after calendar create; stores diverge until retried", "error", err, "event_id", eventID, "task", rec.TaskName)
		return failf(FailureStore, "timeline append failed: %v", err)
	}

	slog.Info("session recorded", "row_index", rowIndex, "event_id", eventID, "type", rec.Type, "task", rec.TaskName, "duration_min", rec.DurationMinutes())
	return ok(statusSynced)
}

// CreateManualSession is the user-entered variant: the same
// calendar-then-timeline sequence, plus one denormalized summary row
// appended to the primary log.
func (m *Manager) CreateManualSession(ctx context.Context, input ManualCreateInput) Result {
	input.Reason = manualEntryReason
	res := m.CreateSession(ctx, input.CreateInput)
	if !res.OK {
		return res
	}

	duration := minutesRounded(input.EndTime.Sub(input.StartTime))
	workMin, breakMin := 0.0, 0.0
	if input.Type == store.SessionTypeTask {
		workMin = duration
	} else {
		breakMin = duration
	}
	status := input.Status
	if status == "" {
		status = "Done"
	}

	if err := m.primaryLog.Append(ctx, store.SummaryRow{
		LoggedAt:      input.StartTime,
		TaskName:      input.TaskName,
		WorkMin:       workMin,
		BreakMin:      breakMin,
		PredictedMin:  input.PredictedMin,
		Gap:           gapPercent(workMin, input.PredictedMin),
		Depth:         depthLabel(input.IsDeepWork),
		Status:        status,
		SwitchCount:   0,
		Interruptions: "Manual",
		Memo:          input.Memo,
	}); err != nil {
		slog.Error("primary log append failed after timeline write", "error", err, "task", input.TaskName)
		return failf(FailureStore, "primary log append failed: %v", err)
	}

	return ok(statusManualSaved)
}

type SummaryInput struct {
	TaskName            string
	WorkDuration        time.Duration
	BreakDuration       time.Duration
	PredictedMin        float64
	IsDeepWork          bool
	Status              string
	SwitchCount         int
	InterruptionReasons []string
	Memo                string
}

// LogSummary appends one completion row to the primary log. The timer
// client calls this when an automatic session finishes; the row is an
// immutable historical fact from that point on.
func (m *Manager) LogSummary(ctx context.Context, input SummaryInput) Result {
	workMin := minutesRounded(input.WorkDuration)
	breakMin := minutesRounded(input.BreakDuration)

	if err := m.primaryLog.Append(ctx, store.SummaryRow{
		LoggedAt:      m.now(),
		TaskName:      input.TaskName,
		WorkMin:       workMin,
		BreakMin:      breakMin,
		PredictedMin:  input.PredictedMin,
		Gap:           gapPercent(workMin, input.PredictedMin),
		Depth:         depthLabel(input.IsDeepWork),
		Status:        input.Status,
		SwitchCount:   input.SwitchCount,
		Interruptions: strings.Join(input.InterruptionReasons, ", "),
		Memo:          input.Memo,
	}); err != nil {
		return failf(FailureStore, "primary log append failed: %v", err)
	}
	return ok(statusSummaryOK)
}

type UpdateInput struct {
	RowIndex  int
	EventID   string
	StartTime time.Time
	EndTime   time.Time
	Type      store.SessionType
	TaskName  string
	Reason    string
}

// UpdateSession rewrites a timeline row in place. The calendar update
// is best-effort; the primary log is never touched — summary rows are
// immutable once a session completes, only the audit view is editable.
func (m *Manager) UpdateSession(ctx context.Context, input UpdateInput) Result {
	rec := Record{
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Type:      input.Type,
		TaskName:  input.TaskName,
		Reason:    input.Reason,
	}

	if input.EventID != "" {
		err := m.calendar.UpdateEvent(ctx, input.EventID, calendar.Event{
			Title:     eventTitle(rec.Type, rec.TaskName),
			ColorID:   eventColor(rec.Type),
			StartTime: rec.StartTime,
			EndTime:   rec.EndTime,
		})
		if err != nil && calendarFailureFatal[opUpdate] {
			return failf(FailureExternalService, "calendar update failed: %v", err)
		}
		if err != nil {
			slog.Warn("calendar update failed", "error", err, "event_id", input.EventID, "row_index", input.RowIndex)
		}
	}

	err := m.timeline.Update(ctx, input.RowIndex, store.TimelineUpdate{
		StartTime:   rec.StartTime,
		EndTime:     rec.EndTime,
		DurationMin: rec.DurationMinutes(),
		Type:        rec.Type,
		TaskName:    rec.TaskName,
		Reason:      rec.Reason,
	})
	if errors.Is(err, store.ErrRowNotFound) {
		return failf(FailureNotFound, "no timeline row at index %d", input.RowIndex)
	}
	if err != nil {
		return failf(FailureStore, "timeline update failed: %v", err)
	}

	slog.Info("session updated", "row_index", input.RowIndex, "event_id", input.EventID, "task", rec.TaskName)
	return ok(statusUpdated)
}

// DeleteSession removes a session from all three stores. The timeline
// row is read first because the primary log has no key: its matching
// row can only be found by task name plus end-time proximity, scanning
// newest to oldest so repeated task names resolve to the most recent
// candidate. No primary-log match is not an error.
func (m *Manager) DeleteSession(ctx context.Context, rowIndex int, eventID string) Result {
	row, err := m.timeline.Get(ctx, rowIndex)
	if err != nil {
		return failf(FailureStore, "timeline read failed: %v", err)
	}
	if row == nil {
		return failf(FailureNotFound, "no timeline row at index %d", rowIndex)
	}

	if eventID != "" {
		if err := m.calendar.DeleteEvent(ctx, eventID); err != nil {
			if calendarFailureFatal[opDelete] {
				return failf(FailureExternalService, "calendar delete failed: %v", err)
			}
			slog.Warn("calendar delete failed", "error", err, "event_id", eventID, "row_index", rowIndex)
		}
	}

	entries, err := m.primaryLog.Entries(ctx)
	if err != nil {
		return failf(FailureStore, "primary log read failed: %v", err)
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if !m.match.Matches(entries[i], row.TaskName, row.EndTime) {
			continue
		}
		if err := m.primaryLog.Delete(ctx, entries[i].ID); err != nil {
			return failf(FailureStore, "primary log delete failed: %v", err)
		}
		slog.Info("primary log row matched and deleted", "summary_id", entries[i].ID, "task", row.TaskName)
		break
	}

	if err := m.timeline.Delete(ctx, rowIndex); err != nil {
		if errors.Is(err, store.ErrRowNotFound) {
			return failf(FailureNotFound, "no timeline row at index %d", rowIndex)
		}
		return failf(FailureStore, "timeline delete failed: %v", err)
	}

	slog.Info("session deleted", "row_index", rowIndex, "event_id", eventID, "task", row.TaskName)
	return ok(statusDeleted)
}
