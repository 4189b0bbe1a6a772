package store

import (
	"context"
	"time"

	"github.com/foxseedlab/focus-cockpit/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The four cockpit stores share one pool but stay deliberately
// unjoined: the primary log carries no reference to timeline rows or
// calendar events.

type PostgresTimeline struct {
	pool *pgxpool.Pool
}

func NewPostgresTimeline(pool *pgxpool.Pool) store.TimelineStore {
	return &PostgresTimeline{pool: pool}
}

func (s *PostgresTimeline) Append(ctx context.Context, row store.TimelineRow) (int, error) {
	var position int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO timeline (position, start_time, end_time, duration_min, session_type, task_name, reason, event_id)
		 VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM timeline), $1, $2, $3, $4, $5, $6, $7)
		 RETURNING position`,
		row.StartTime, row.EndTime, row.DurationMin, row.Type, row.TaskName, row.Reason, row.EventID).Scan(&position)
	if err != nil {
		return 0, err
	}
	return position, nil
}

func (s *PostgresTimeline) Get(ctx context.Context, rowIndex int) (*store.TimelineRow, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT position, start_time, end_time, duration_min, session_type, task_name, reason, event_id
		 FROM timeline WHERE position = $1`,
		rowIndex)
	var t store.TimelineRow
	err := row.Scan(&t.RowIndex, &t.StartTime, &t.EndTime, &t.DurationMin, &t.Type, &t.TaskName, &t.Reason, &t.EventID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *PostgresTimeline) Update(ctx context.Context, rowIndex int, fields store.TimelineUpdate) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE timeline
		 SET start_time = $2, end_time = $3, duration_min = $4, session_type = $5, task_name = $6, reason = $7
		 WHERE position = $1`,
		rowIndex, fields.StartTime, fields.EndTime, fields.DurationMin, fields.Type, fields.TaskName, fields.Reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrRowNotFound
	}
	return nil
}

// Delete removes the row at rowIndex and shifts every later row one
// position down, preserving the positional row-index contract.
func (s *PostgresTimeline) Delete(ctx context.Context, rowIndex int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM timeline WHERE position = $1`, rowIndex)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrRowNotFound
	}
	if _, err := tx.Exec(ctx, `UPDATE timeline SET position = position - 1 WHERE position > $1`, rowIndex); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresTimeline) Tail(ctx context.Context, n int) ([]store.TimelineRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT position, start_time, end_time, duration_min, session_type, task_name, reason, event_id
		 FROM (SELECT * FROM timeline ORDER BY position DESC LIMIT $1) tail
		 ORDER BY position ASC`,
		n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []store.TimelineRow
	for rows.Next() {
		var t store.TimelineRow
		if err := rows.Scan(&t.RowIndex, &t.StartTime, &t.EndTime, &t.DurationMin, &t.Type, &t.TaskName, &t.Reason, &t.EventID); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

type PostgresPrimaryLog struct {
	pool *pgxpool.Pool
}

func NewPostgresPrimaryLog(pool *pgxpool.Pool) store.PrimaryLogStore {
	return &PostgresPrimaryLog{pool: pool}
}

func (s *PostgresPrimaryLog) Append(ctx context.Context, row store.SummaryRow) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO primary_log (logged_at, task_name, work_min, break_min, predicted_min, gap, depth, status, switch_count, interruptions, memo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		row.LoggedAt, row.TaskName, row.WorkMin, row.BreakMin, row.PredictedMin, row.Gap, row.Depth, row.Status, row.SwitchCount, row.Interruptions, row.Memo)
	return err
}

func (s *PostgresPrimaryLog) TaskNames(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT task_name FROM primary_log ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *PostgresPrimaryLog) Entries(ctx context.Context) ([]store.SummaryRef, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, logged_at, task_name FROM primary_log ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var refs []store.SummaryRef
	for rows.Next() {
		var ref store.SummaryRef
		if err := rows.Scan(&ref.ID, &ref.LoggedAt, &ref.TaskName); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (s *PostgresPrimaryLog) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM primary_log WHERE id = $1`, id)
	return err
}

type PostgresState struct {
	pool *pgxpool.Pool
}

func NewPostgresState(pool *pgxpool.Pool) store.StateStore {
	return &PostgresState{pool: pool}
}

func (s *PostgresState) Save(ctx context.Context, userID string, blob []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_state (user_id, state, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()`,
		userID, blob)
	return err
}

func (s *PostgresState) Load(ctx context.Context, userID string) ([]byte, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx, `SELECT state FROM user_state WHERE user_id = $1`, userID).Scan(&blob)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return blob, nil
}

type PostgresFeedback struct {
	pool *pgxpool.Pool
}

func NewPostgresFeedback(pool *pgxpool.Pool) store.FeedbackStore {
	return &PostgresFeedback{pool: pool}
}

func (s *PostgresFeedback) Append(ctx context.Context, at time.Time, comment string) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO feedback (created_at, comment) VALUES ($1, $2)`, at, comment)
	return err
}
