package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
)

const appointmentColumns = `id::text, user_name, user_email, phone, program_id::text, number_document, date,
	appointment_type_id::text, details, status, COALESCE(mentor_id::text, ''), created_at`

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var a model.Appointment
	var status string
	err := row.Scan(&a.ID, &a.UserName, &a.UserEmail, &a.Phone, &a.ProgramID, &a.NumberDocument, &a.Date,
		&a.AppointmentTypeID, &a.Details, &status, &a.MentorID, &a.CreatedAt)
	a.Status = model.AppointmentStatus(status)
	return a, err
}

func (s *Store) CreateAppointment(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	return scanAppointment(s.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, user_name, user_email, phone, program_id, number_document, date,
			appointment_type_id, details, status, mentor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, '')::uuid)
		RETURNING `+appointmentColumns,
		uuid.NewString(), a.UserName, a.UserEmail, a.Phone, a.ProgramID, a.NumberDocument, a.Date,
		a.AppointmentTypeID, a.Details, string(a.Status), a.MentorID))
}

func (s *Store) GetAppointment(ctx context.Context, id string) (model.Appointment, error) {
	a, err := scanAppointment(s.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id))
	return a, notFound(err)
}

func (s *Store) UpdateAppointment(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	out, err := scanAppointment(s.pool.QueryRow(ctx, `
		UPDATE appointments
		SET user_name = $2, user_email = $3, phone = $4, program_id = $5, number_document = $6, date = $7,
			appointment_type_id = $8, details = $9, status = $10, mentor_id = NULLIF($11, '')::uuid
		WHERE id = $1
		RETURNING `+appointmentColumns,
		a.ID, a.UserName, a.UserEmail, a.Phone, a.ProgramID, a.NumberDocument, a.Date,
		a.AppointmentTypeID, a.Details, string(a.Status), a.MentorID))
	return out, notFound(err)
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(tag.RowsAffected())
}

func (s *Store) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	return s.queryAppointments(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		ORDER BY date, id
	`)
}

func (s *Store) ListAppointmentsByMentor(ctx context.Context, mentorID string) ([]model.Appointment, error) {
	return s.queryAppointments(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE mentor_id = $1
		ORDER BY date, id
	`, mentorID)
}

func (s *Store) queryAppointments(ctx context.Context, sql string, args ...any) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
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
