package session

import (
	"context"
	"log/slog"
)

// SaveState overwrites the caller's single state slot. The blob is
// opaque application state; last write wins, nothing is merged.
func (m *Manager) SaveState(ctx context.Context, userID string, blob []byte) (string, error) {
	if err := m.state.Save(ctx, userID, blob); err != nil {
		return "", err
	}
	return statusStateSynced, nil
}

// LoadState returns the caller's state slot, nil when it was never
// written.
func (m *Manager) LoadState(ctx context.Context, userID string) ([]byte, error) {
	return m.state.Load(ctx, userID)
}

func (m *Manager) SaveFeedback(ctx context.Context, comment string) (string, error) {
	if err := m.feedback.Append(ctx, m.now(), comment); err != nil {
		return "", err
	}
	slog.Info("feedback recorded", "length", len(comment))
	return statusFeedbackSent, nil
}
