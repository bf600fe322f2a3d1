package model

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusAssigned  AppointmentStatus = "assigned"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID                string
	UserName          string
	UserEmail         string
	Phone             string
	ProgramID         string
	NumberDocument    string
	Date              time.Time
	AppointmentTypeID string
	Details           string
	Status            AppointmentStatus
	MentorID          string
	CreatedAt         time.Time
}
