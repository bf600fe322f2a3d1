// Package sqlite keeps weekly rules in an embedded SQLite file for local tooling.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS appointment_schedules (
	id          TEXT PRIMARY KEY,
	day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
	start_time  TEXT NOT NULL,
	end_time    TEXT NOT NULL,
	is_active   INTEGER NOT NULL DEFAULT 1,
	created_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS mentor_availability (
	id          TEXT PRIMARY KEY,
	mentor_id   TEXT NOT NULL,
	day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
	start_time  TEXT NOT NULL,
	end_time    TEXT NOT NULL,
	is_active   INTEGER NOT NULL DEFAULT 1,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS mentor_availability_weekday_idx ON mentor_availability (day_of_week, is_active);
`

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ storage.RuleStore = (*Store)(nil)

// Open connects to dsn (a file path or ":memory:") and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	if dsn != ":memory:" {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection so ":memory:" databases are shared and writers never contend.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: db, now: time.Now}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

type ruleRow struct {
	ID        string `db:"id"`
	MentorID  string `db:"mentor_id"`
	DayOfWeek int    `db:"day_of_week"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	IsActive  bool   `db:"is_active"`
	CreatedAt string `db:"created_at"`
}

func (r ruleRow) createdAt() time.Time {
	t, _ := time.Parse(time.RFC3339Nano, r.CreatedAt)
	return t
}

func (r ruleRow) schedule() model.GlobalSchedule {
	return model.GlobalSchedule{
		ID:        r.ID,
		DayOfWeek: time.Weekday(r.DayOfWeek),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		IsActive:  r.IsActive,
		CreatedAt: r.createdAt(),
	}
}

func (r ruleRow) availability() model.MentorAvailability {
	return model.MentorAvailability{
		ID:        r.ID,
		MentorID:  r.MentorID,
		DayOfWeek: time.Weekday(r.DayOfWeek),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		IsActive:  r.IsActive,
		CreatedAt: r.createdAt(),
	}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const scheduleSelect = `SELECT id, '' AS mentor_id, day_of_week, start_time, end_time, is_active, created_at FROM appointment_schedules`

func (s *Store) CreateSchedule(ctx context.Context, sch model.GlobalSchedule) (model.GlobalSchedule, error) {
	sch.ID = uuid.NewString()
	sch.CreatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointment_schedules (id, day_of_week, start_time, end_time, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sch.ID, int(sch.DayOfWeek), sch.StartTime, sch.EndTime, sch.IsActive, sch.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.GlobalSchedule{}, err
	}
	return sch, nil
}

func (s *Store) GetSchedule(ctx context.Context, id string) (model.GlobalSchedule, error) {
	var row ruleRow
	if err := s.db.GetContext(ctx, &row, scheduleSelect+` WHERE id = ?`, id); err != nil {
		return model.GlobalSchedule{}, notFound(err)
	}
	return row.schedule(), nil
}

func (s *Store) UpdateSchedule(ctx context.Context, sch model.GlobalSchedule) (model.GlobalSchedule, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE appointment_schedules
		SET day_of_week = ?, start_time = ?, end_time = ?, is_active = ?
		WHERE id = ?
	`, int(sch.DayOfWeek), sch.StartTime, sch.EndTime, sch.IsActive, sch.ID)
	if err != nil {
		return model.GlobalSchedule{}, err
	}
	if err := affected(res); err != nil {
		return model.GlobalSchedule{}, err
	}
	return s.GetSchedule(ctx, sch.ID)
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM appointment_schedules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (s *Store) ListSchedules(ctx context.Context) ([]model.GlobalSchedule, error) {
	return s.selectSchedules(ctx, scheduleSelect+` ORDER BY day_of_week, start_time, id`)
}

func (s *Store) ListActiveSchedulesForWeekday(ctx context.Context, weekday time.Weekday) ([]model.GlobalSchedule, error) {
	return s.selectSchedules(ctx, scheduleSelect+` WHERE is_active = 1 AND day_of_week = ? ORDER BY start_time, id`, int(weekday))
}

func (s *Store) selectSchedules(ctx context.Context, query string, args ...any) ([]model.GlobalSchedule, error) {
	var rows []ruleRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]model.GlobalSchedule, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.schedule())
	}
	return out, nil
}

const availabilitySelect = `SELECT id, mentor_id, day_of_week, start_time, end_time, is_active, created_at FROM mentor_availability`

func (s *Store) CreateMentorAvailability(ctx context.Context, a model.MentorAvailability) (model.MentorAvailability, error) {
	a.ID = uuid.NewString()
	a.CreatedAt = s.now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mentor_availability (id, mentor_id, day_of_week, start_time, end_time, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.MentorID, int(a.DayOfWeek), a.StartTime, a.EndTime, a.IsActive, a.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.MentorAvailability{}, err
	}
	return a, nil
}

func (s *Store) GetMentorAvailability(ctx context.Context, id string) (model.MentorAvailability, error) {
	var row ruleRow
	if err := s.db.GetContext(ctx, &row, availabilitySelect+` WHERE id = ?`, id); err != nil {
		return model.MentorAvailability{}, notFound(err)
	}
	return row.availability(), nil
}

func (s *Store) UpdateMentorAvailability(ctx context.Context, a model.MentorAvailability) (model.MentorAvailability, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE mentor_availability
		SET mentor_id = ?, day_of_week = ?, start_time = ?, end_time = ?, is_active = ?
		WHERE id = ?
	`, a.MentorID, int(a.DayOfWeek), a.StartTime, a.EndTime, a.IsActive, a.ID)
	if err != nil {
		return model.MentorAvailability{}, err
	}
	if err := affected(res); err != nil {
		return model.MentorAvailability{}, err
	}
	return s.GetMentorAvailability(ctx, a.ID)
}

func (s *Store) DeleteMentorAvailability(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM mentor_availability WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

func (s *Store) ListMentorAvailability(ctx context.Context, mentorID string) ([]model.MentorAvailability, error) {
	if mentorID == "" {
		return s.selectAvailability(ctx, availabilitySelect+` ORDER BY mentor_id, day_of_week, start_time, id`)
	}
	return s.selectAvailability(ctx, availabilitySelect+` WHERE mentor_id = ? ORDER BY day_of_week, start_time, id`, mentorID)
}

func (s *Store) ListActiveMentorAvailabilityForWeekday(ctx context.Context, weekday time.Weekday) ([]model.MentorAvailability, error) {
	return s.selectAvailability(ctx, availabilitySelect+` WHERE is_active = 1 AND day_of_week = ? ORDER BY mentor_id, start_time, id`, int(weekday))
}

func (s *Store) selectAvailability(ctx context.Context, query string, args ...any) ([]model.MentorAvailability, error) {
	var rows []ruleRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]model.MentorAvailability, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.availability())
	}
	return out, nil
}
