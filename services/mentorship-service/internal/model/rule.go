package model

import "time"

// GlobalSchedule is a recurring window during which appointments may be booked at all.
type GlobalSchedule struct {
	ID        string
	DayOfWeek time.Weekday
	StartTime string // HH:MM
	EndTime   string // HH:MM
	IsActive  bool
	CreatedAt time.Time
}

// MentorAvailability is a recurring window scoped to one mentor.
type MentorAvailability struct {
	ID        string
	MentorID  string
	DayOfWeek time.Weekday
	StartTime string // HH:MM
	EndTime   string // HH:MM
	IsActive  bool
	CreatedAt time.Time
}

// RuleWindow is the read shape the resolver needs from either rule variant.
type RuleWindow struct {
	RuleID    string
	MentorID  string
	StartTime string
	EndTime   string
}

func (s GlobalSchedule) Window() RuleWindow {
	return RuleWindow{RuleID: s.ID, StartTime: s.StartTime, EndTime: s.EndTime}
}

func (a MentorAvailability) Window() RuleWindow {
	return RuleWindow{RuleID: a.ID, MentorID: a.MentorID, StartTime: a.StartTime, EndTime: a.EndTime}
}
