package session

import (
	"github.com/foxseedlab/focus-cockpit/internal/calendar"
	"github.com/foxseedlab/focus-cockpit/internal/config"
	"github.com/foxseedlab/focus-cockpit/internal/store"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		timeline := do.MustInvoke[store.TimelineStore](i)
		primaryLog := do.MustInvoke[store.PrimaryLogStore](i)
		stateStore := do.MustInvoke[store.StateStore](i)
		feedback := do.MustInvoke[store.FeedbackStore](i)
		cal := do.MustInvoke[calendar.Service](i)
		return NewManager(cfg, timeline, primaryLog, stateStore, feedback, cal), nil
	})
}
