package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env                        string
	ListenAddr                 string
	DatabaseURL                string
	GoogleCalendarID           string
	GoogleCloudCredentialsJSON string
	CockpitTimezone            string
	MatchToleranceMS           int
	TimelineWindowRows         int
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.MatchToleranceMS <= 0 {
		return fmt.Errorf("MATCH_TOLERANCE_MS must be positive, got %d", c.MatchToleranceMS)
	}
	if c.TimelineWindowRows <= 0 {
		return fmt.Errorf("TIMELINE_WINDOW_ROWS must be positive, got %d", c.TimelineWindowRows)
	}
	if _, err := time.LoadLocation(c.CockpitTimezone); err != nil {
		return fmt.Errorf("COCKPIT_TIMEZONE is invalid: %w", err)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "LISTEN_ADDR", value: c.ListenAddr},
		{name: "DATABASE_URL", value: c.DatabaseURL},
		{name: "GOOGLE_CALENDAR_ID", value: c.GoogleCalendarID},
		{name: "GOOGLE_CLOUD_CREDENTIALS_JSON", value: c.GoogleCloudCredentialsJSON},
		{name: "COCKPIT_TIMEZONE", value: c.CockpitTimezone},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) MatchTolerance() time.Duration {
	return time.Duration(c.MatchToleranceMS) * time.Millisecond
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.CockpitTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
