package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/foxseedlab/focus-cockpit/internal/calendar"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendar writes cockpit sessions into one Google calendar.
// Event identifiers are issued by Google on insert and are the only
// handle for later updates and deletes.
type GoogleCalendar struct {
	service    *gcal.Service
	calendarID string
	location   *time.Location
}

func NewGoogleCalendar(ctx context.Context, credentialsJSON, calendarID string, location *time.Location) (calendar.Service, error) {
	service, err := gcal.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &GoogleCalendar{
		service:    service,
		calendarID: calendarID,
		location:   location,
	}, nil
}

func (c *GoogleCalendar) CreateEvent(ctx context.Context, event calendar.Event) (string, error) {
	created, err := c.service.Events.Insert(c.calendarID, c.toGoogleEvent(event)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return created.Id, nil
}

func (c *GoogleCalendar) UpdateEvent(ctx context.Context, eventID string, event calendar.Event) error {
	if _, err := c.service.Events.Patch(c.calendarID, eventID, c.toGoogleEvent(event)).Context(ctx).Do(); err != nil {
		return fmt.Errorf("patch event %s: %w", eventID, err)
	}
	return nil
}

func (c *GoogleCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	if err := c.service.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

func (c *GoogleCalendar) toGoogleEvent(event calendar.Event) *gcal.Event {
	return &gcal.Event{
		Summary:     event.Title,
		Description: event.Description,
		ColorId:     event.ColorID,
		Start:       &gcal.EventDateTime{DateTime: event.StartTime.In(c.location).Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: event.EndTime.In(c.location).Format(time.RFC3339)},
	}
}
