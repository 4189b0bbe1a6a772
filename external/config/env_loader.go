package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/focus-cockpit/internal/config"
)

type envConfig struct {
	Env                        string `env:"ENV" envDefault:"production"`
	ListenAddr                 string `env:"LISTEN_ADDR" envDefault:":8787"`
	DatabaseURL                string `env:"DATABASE_URL,required"`
	GoogleCalendarID           string `env:"GOOGLE_CALENDAR_ID,required"`
	GoogleCloudCredentialsJSON string `env:"GOOGLE_CLOUD_CREDENTIALS_JSON,required"`
	CockpitTimezone            string `env:"COCKPIT_TIMEZONE" envDefault:"Asia/Tokyo"`
	MatchToleranceMS           int    `env:"MATCH_TOLERANCE_MS" envDefault:"5000"`
	TimelineWindowRows         int    `env:"TIMELINE_WINDOW_ROWS" envDefault:"20"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		ListenAddr:                 raw.ListenAddr,
		DatabaseURL:                raw.DatabaseURL,
		GoogleCalendarID:           raw.GoogleCalendarID,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		CockpitTimezone:            raw.CockpitTimezone,
		MatchToleranceMS:           raw.MatchToleranceMS,
		TimelineWindowRows:         raw.TimelineWindowRows,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
