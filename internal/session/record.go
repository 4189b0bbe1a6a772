package session

import (
	"fmt"
	"math"
	"time"

	"github.com/foxseedlab/focus-cockpit/internal/store"
)

const (
	manualEntryReason = "Manual Entry"
	recoveryTaskName  = "Recovery"

	// 表示専用の固定ラベル。Recovery は種別ではなくプレゼンテーション上の別名。
	breakDisplayTitle = "休憩"

	// Google Calendar colorId values: "2" is the pale green used for
	// breaks, "4" the pale red used for tasks.
	colorBreak = "2"
	colorTask  = "4"
)

// Record is the canonical in-memory representation of one session.
type Record struct {
	StartTime time.Time
	EndTime   time.Time
	Type      store.SessionType
	TaskName  string
	Reason    string
	EventID   string
}

// DurationMinutes is always derived from the timestamps, rounded to
// one decimal. It is never read back from a store as source of truth.
func (r Record) DurationMinutes() float64 {
	return minutesRounded(r.EndTime.Sub(r.StartTime))
}

func (r Record) validate() error {
	if r.EndTime.Before(r.StartTime) {
		return fmt.Errorf("end time %s is before start time %s", r.EndTime.Format(time.RFC3339), r.StartTime.Format(time.RFC3339))
	}
	return nil
}

func minutesRounded(d time.Duration) float64 {
	min := float64(d.Milliseconds()) / 60000.0
	return math.Round(min*10) / 10
}

// eventTitle maps a session onto its calendar title. A "Recovery"
// break renders as the fixed localized label; everything else keeps
// its task name verbatim.
func eventTitle(typ store.SessionType, taskName string) string {
	if typ == store.SessionTypeBreak && taskName == recoveryTaskName {
		return breakDisplayTitle
	}
	return taskName
}

func eventColor(typ store.SessionType) string {
	if typ == store.SessionTypeBreak {
		return colorBreak
	}
	return colorTask
}

func depthLabel(isDeepWork bool) string {
	if isDeepWork {
		return "🔥 Deep"
	}
	return "Shallow"
}

// gapPercent compares actual work minutes against the prediction.
// Without a prediction, or without any actual work, there is nothing
// to compare and the sentinel is returned.
func gapPercent(workMin, predictedMin float64) string {
	if predictedMin > 0 && workMin > 0 {
		return fmt.Sprintf("%.1f%%", (workMin-predictedMin)/predictedMin*100)
	}
	return "-"
}
