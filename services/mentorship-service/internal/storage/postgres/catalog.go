package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
)

func (s *Store) UpsertProgram(ctx context.Context, p model.Program) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO programs (id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			description = EXCLUDED.description
	`, p.ID, p.Name, p.Description)
	return err
}

func (s *Store) UpsertAppointmentType(ctx context.Context, t model.AppointmentType) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO appointment_types (id, name, duration_minutes, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			duration_minutes = EXCLUDED.duration_minutes,
			description = EXCLUDED.description
	`, t.ID, t.Name, t.DurationMinutes, t.Description)
	return err
}

func (s *Store) ListPrograms(ctx context.Context) ([]model.Program, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, name, description
		FROM programs
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Program, 0)
	for rows.Next() {
		var p model.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (s *Store) GetProgram(ctx context.Context, id string) (model.Program, error) {
	var p model.Program
	err := s.pool.QueryRow(ctx, `
		SELECT id::text, name, description
		FROM programs
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description)
	return p, notFound(err)
}

func (s *Store) ListAppointmentTypes(ctx context.Context) ([]model.AppointmentType, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, name, duration_minutes, description
		FROM appointment_types
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AppointmentType, 0)
	for rows.Next() {
		var t model.AppointmentType
		if err := rows.Scan(&t.ID, &t.Name, &t.DurationMinutes, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (s *Store) GetAppointmentType(ctx context.Context, id string) (model.AppointmentType, error) {
	var t model.AppointmentType
	err := s.pool.QueryRow(ctx, `
		SELECT id::text, name, duration_minutes, description
		FROM appointment_types
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.DurationMinutes, &t.Description)
	return t, notFound(err)
}

const userColumns = `id::text, email, password_hash, role, name`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.Name)
	u.Role = model.Role(role)
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return scanUser(s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, role, name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.Name))
}

func (s *Store) GetUser(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, notFound(err)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	return u, notFound(err)
}

func (s *Store) ListUsersByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = $1
		ORDER BY name
	`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
