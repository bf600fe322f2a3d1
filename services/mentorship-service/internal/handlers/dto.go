package handlers

import (
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/booking"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
)

type scheduleJSON struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

func toScheduleJSON(s model.GlobalSchedule) scheduleJSON {
	return scheduleJSON{
		ID:        s.ID,
		DayOfWeek: int(s.DayOfWeek),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		IsActive:  s.IsActive,
		CreatedAt: formatTime(s.CreatedAt),
	}
}

type availabilityJSON struct {
	ID        string `json:"id"`
	MentorID  string `json:"mentor_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

func toAvailabilityJSON(a model.MentorAvailability) availabilityJSON {
	return availabilityJSON{
		ID:        a.ID,
		MentorID:  a.MentorID,
		DayOfWeek: int(a.DayOfWeek),
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		IsActive:  a.IsActive,
		CreatedAt: formatTime(a.CreatedAt),
	}
}

func toAvailabilityList(in []model.MentorAvailability) []availabilityJSON {
	out := make([]availabilityJSON, 0, len(in))
	for _, a := range in {
		out = append(out, toAvailabilityJSON(a))
	}
	return out
}

type appointmentJSON struct {
	ID                string `json:"id"`
	UserName          string `json:"user_name"`
	UserEmail         string `json:"user_email"`
	Phone             string `json:"phone"`
	ProgramID         string `json:"program_id"`
	NumberDocument    string `json:"number_document"`
	Date              string `json:"date"`
	AppointmentTypeID string `json:"appointment_type_id"`
	Details           string `json:"details"`
	Status            string `json:"status"`
	MentorID          string `json:"mentor_id,omitempty"`
	CreatedAt         string `json:"created_at"`
}

func toAppointmentJSON(a model.Appointment) appointmentJSON {
	return appointmentJSON{
		ID:                a.ID,
		UserName:          a.UserName,
		UserEmail:         a.UserEmail,
		Phone:             a.Phone,
		ProgramID:         a.ProgramID,
		NumberDocument:    a.NumberDocument,
		Date:              formatTime(a.Date),
		AppointmentTypeID: a.AppointmentTypeID,
		Details:           a.Details,
		Status:            string(a.Status),
		MentorID:          a.MentorID,
		CreatedAt:         formatTime(a.CreatedAt),
	}
}

type appointmentViewJSON struct {
	appointmentJSON
	Program         string `json:"program"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
	Mentor          string `json:"mentor,omitempty"`
}

func toViewList(in []booking.View) []appointmentViewJSON {
	out := make([]appointmentViewJSON, 0, len(in))
	for _, v := range in {
		out = append(out, appointmentViewJSON{
			appointmentJSON: toAppointmentJSON(v.Appointment),
			Program:         v.ProgramName,
			Type:            v.TypeName,
			DurationMinutes: v.DurationMinutes,
			Mentor:          v.MentorName,
		})
	}
	return out
}
