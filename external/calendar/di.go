package calendar

import (
	"context"
	"time"

	"github.com/foxseedlab/focus-cockpit/internal/calendar"
	"github.com/foxseedlab/focus-cockpit/internal/config"
	"github.com/samber/do/v2"
)

const calendarInitTimeout = 15 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (calendar.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ctx, cancel := context.WithTimeout(context.Background(), calendarInitTimeout)
		defer cancel()
		return NewGoogleCalendar(ctx, cfg.GoogleCloudCredentialsJSON, cfg.GoogleCalendarID, cfg.Location())
	})
}
