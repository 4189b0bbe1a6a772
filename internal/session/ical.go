package session

import (
	"bytes"
	"context"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// TimelineICal renders the timeline window as an iCalendar feed so
// external calendar clients can subscribe to the audit trail directly.
// Rows whose calendar create never succeeded have no event id and get
// a generated UID instead.
func (m *Manager) TimelineICal(ctx context.Context) ([]byte, error) {
	rows, err := m.TimelineWindow(ctx)
	if err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//Focus Cockpit//Timeline//EN")

	now := m.now()
	for _, row := range rows {
		uid := row.EventID
		if uid == "" {
			uid = uuid.NewString()
		}
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, uid)
		ev.Props.SetDateTime(ical.PropDateTimeStamp, now)
		ev.Props.SetDateTime(ical.PropDateTimeStart, row.StartTime)
		ev.Props.SetDateTime(ical.PropDateTimeEnd, row.EndTime)
		ev.Props.SetText(ical.PropSummary, eventTitle(row.Type, row.TaskName))
		if row.Reason != "" {
			ev.Props.SetText(ical.PropDescription, row.Reason)
		}
		cal.Children = append(cal.Children, ev.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
