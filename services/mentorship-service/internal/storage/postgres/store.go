// Package postgres implements the service store on top of a pgx pool.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/md-rashed-zaman/mentorconnect/libs/db"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

//go:embed schema.sql
var schema string

type Store struct {
	pool *db.Pool
}

var (
	_ storage.Store         = (*Store)(nil)
	_ storage.CatalogSeeder = (*Store)(nil)
)

func New(pool *db.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate applies the idempotent schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close() { s.pool.Close() }

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

func affected(tagRows int64) error {
	if tagRows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const scheduleColumns = `id::text, day_of_week, start_time, end_time, is_active, created_at`

func scanSchedule(row pgx.Row) (model.GlobalSchedule, error) {
	var sch model.GlobalSchedule
	var day int16
	err := row.Scan(&sch.ID, &day, &sch.StartTime, &sch.EndTime, &sch.IsActive, &sch.CreatedAt)
	sch.DayOfWeek = time.Weekday(day)
	return sch, err
}

func (s *Store) CreateSchedule(ctx context.Context, sch model.GlobalSchedule) (model.GlobalSchedule, error) {
	return scanSchedule(s.pool.QueryRow(ctx, `
		INSERT INTO appointment_schedules (id, day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+scheduleColumns,
		uuid.NewString(), int16(sch.DayOfWeek), sch.StartTime, sch.EndTime, sch.IsActive))
}

func (s *Store) GetSchedule(ctx context.Context, id string) (model.GlobalSchedule, error) {
	sch, err := scanSchedule(s.pool.QueryRow(ctx, `
		SELECT `+scheduleColumns+`
		FROM appointment_schedules
		WHERE id = $1
	`, id))
	return sch, notFound(err)
}

func (s *Store) UpdateSchedule(ctx context.Context, sch model.GlobalSchedule) (model.GlobalSchedule, error) {
	out, err := scanSchedule(s.pool.QueryRow(ctx, `
		UPDATE appointment_schedules
		SET day_of_week = $2, start_time = $3, end_time = $4, is_active = $5
		WHERE id = $1
		RETURNING `+scheduleColumns,
		sch.ID, int16(sch.DayOfWeek), sch.StartTime, sch.EndTime, sch.IsActive))
	return out, notFound(err)
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM appointment_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(tag.RowsAffected())
}

func (s *Store) ListSchedules(ctx context.Context) ([]model.GlobalSchedule, error) {
	return s.querySchedules(ctx, `
		SELECT `+scheduleColumns+`
		FROM appointment_schedules
		ORDER BY day_of_week, start_time, id
	`)
}

func (s *Store) ListActiveSchedulesForWeekday(ctx context.Context, weekday time.Weekday) ([]model.GlobalSchedule, error) {
	return s.querySchedules(ctx, `
		SELECT `+scheduleColumns+`
		FROM appointment_schedules
		WHERE is_active AND day_of_week = $1
		ORDER BY start_time, id
	`, int16(weekday))
}

func (s *Store) querySchedules(ctx context.Context, sql string, args ...any) ([]model.GlobalSchedule, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.GlobalSchedule, 0)
	for rows.Next() {
		sch, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sch)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

const availabilityColumns = `id::text, mentor_id::text, day_of_week, start_time, end_time, is_active, created_at`

func scanAvailability(row pgx.Row) (model.MentorAvailability, error) {
	var a model.MentorAvailability
	var day int16
	err := row.Scan(&a.ID, &a.MentorID, &day, &a.StartTime, &a.EndTime, &a.IsActive, &a.CreatedAt)
	a.DayOfWeek = time.Weekday(day)
	return a, err
}

func (s *Store) CreateMentorAvailability(ctx context.Context, a model.MentorAvailability) (model.MentorAvailability, error) {
	return scanAvailability(s.pool.QueryRow(ctx, `
		INSERT INTO mentor_availability (id, mentor_id, day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+availabilityColumns,
		uuid.NewString(), a.MentorID, int16(a.DayOfWeek), a.StartTime, a.EndTime, a.IsActive))
}

func (s *Store) GetMentorAvailability(ctx context.Context, id string) (model.MentorAvailability, error) {
	a, err := scanAvailability(s.pool.QueryRow(ctx, `
		SELECT `+availabilityColumns+`
		FROM mentor_availability
		WHERE id = $1
	`, id))
	return a, notFound(err)
}

func (s *Store) UpdateMentorAvailability(ctx context.Context, a model.MentorAvailability) (model.MentorAvailability, error) {
	out, err := scanAvailability(s.pool.QueryRow(ctx, `
		UPDATE mentor_availability
		SET mentor_id = $2, day_of_week = $3, start_time = $4, end_time = $5, is_active = $6
		WHERE id = $1
		RETURNING `+availabilityColumns,
		a.ID, a.MentorID, int16(a.DayOfWeek), a.StartTime, a.EndTime, a.IsActive))
	return out, notFound(err)
}

func (s *Store) DeleteMentorAvailability(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM mentor_availability WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(tag.RowsAffected())
}

func (s *Store) ListMentorAvailability(ctx context.Context, mentorID string) ([]model.MentorAvailability, error) {
	if mentorID == "" {
		return s.queryAvailability(ctx, `
			SELECT `+availabilityColumns+`
			FROM mentor_availability
			ORDER BY mentor_id, day_of_week, start_time, id
		`)
	}
	return s.queryAvailability(ctx, `
		SELECT `+availabilityColumns+`
		FROM mentor_availability
		WHERE mentor_id = $1
		ORDER BY day_of_week, start_time, id
	`, mentorID)
}

func (s *Store) ListActiveMentorAvailabilityForWeekday(ctx context.Context, weekday time.Weekday) ([]model.MentorAvailability, error) {
	return s.queryAvailability(ctx, `
		SELECT `+availabilityColumns+`
		FROM mentor_availability
		WHERE is_active AND day_of_week = $1
		ORDER BY mentor_id, start_time, id
	`, int16(weekday))
}

func (s *Store) queryAvailability(ctx context.Context, sql string, args ...any) ([]model.MentorAvailability, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.MentorAvailability, 0)
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
