// Package seed loads the demo dataset: staff accounts, catalog, weekly rules and a few bookings.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

var namespace = uuid.MustParse("6f1c2d0e-8f7b-4b7e-9a35-3c2d7a5e9b10")

// StableID derives a deterministic id so repeated seeding does not duplicate catalog rows.
func StableID(kind, key string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+key)).String()
}

type staff struct {
	key, email, password, name string
	role                       model.Role
}

var staffAccounts = []staff{
	{key: "admin", email: "admin@mentorconnect.com", password: "admin123", name: "Admin User", role: model.RoleAdmin},
	{key: "carlos", email: "carlos@mentorconnect.com", password: "mentor123", name: "Carlos Ruiz", role: model.RoleMentor},
	{key: "ana", email: "ana@mentorconnect.com", password: "mentor123", name: "Ana López", role: model.RoleMentor},
	{key: "pedro", email: "pedro@mentorconnect.com", password: "mentor123", name: "Pedro Martín", role: model.RoleMentor},
}

var programs = []model.Program{
	{Name: "Full Stack Web Development", Description: "Frontend and backend web development track"},
	{Name: "Data Science & Analytics", Description: "Applied data analysis and data science"},
	{Name: "UX/UI Design", Description: "User experience and interface design"},
	{Name: "Digital Marketing", Description: "Marketing strategy on digital platforms"},
	{Name: "Entrepreneurship", Description: "Business and startup skills"},
}

var appointmentTypes = []model.AppointmentType{
	{Name: "Initial Consultation", DurationMinutes: 30, Description: "First meeting to discuss goals"},
	{Name: "Mentoring Session", DurationMinutes: 60, Description: "Full personalised mentoring session"},
	{Name: "Project Review", DurationMinutes: 45, Description: "Review and feedback on a project in progress"},
	{Name: "Express Consultation", DurationMinutes: 15, Description: "Quick call for a specific question"},
}

type window struct {
	mentor     string
	day        time.Weekday
	start, end string
}

var mentorWindows = []window{
	{"carlos", time.Monday, "09:00", "12:00"},
	{"carlos", time.Monday, "14:00", "17:00"},
	{"carlos", time.Wednesday, "10:00", "13:00"},
	{"carlos", time.Friday, "09:00", "11:30"},
	{"ana", time.Tuesday, "08:00", "12:00"},
	{"ana", time.Thursday, "13:00", "17:00"},
	{"ana", time.Saturday, "09:00", "12:00"},
	{"pedro", time.Monday, "15:00", "18:00"},
	{"pedro", time.Wednesday, "08:00", "11:00"},
	{"pedro", time.Friday, "14:00", "17:00"},
}

type Options struct {
	// Now anchors the sample bookings; they land a few days after it.
	Now      func() time.Time
	Location *time.Location
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Demo seeds an empty store. It is a no-op when the admin account already exists.
func Demo(ctx context.Context, store storage.Store, catalog storage.CatalogSeeder, opts Options, logger *slog.Logger) error {
	if _, err := store.GetUserByEmail(ctx, staffAccounts[0].email); err == nil {
		logger.Info("demo data already present")
		return nil
	} else if !storage.IsNotFound(err) {
		return fmt.Errorf("check admin: %w", err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	userIDs := map[string]string{}
	for _, s := range staffAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), opts.BcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u, err := store.CreateUser(ctx, model.User{
			ID:           StableID("user", s.key),
			Email:        s.email,
			PasswordHash: string(hash),
			Role:         s.role,
			Name:         s.name,
		})
		if err != nil {
			return fmt.Errorf("create user %s: %w", s.email, err)
		}
		userIDs[s.key] = u.ID
	}

	programIDs := make([]string, 0, len(programs))
	for _, p := range programs {
		p.ID = StableID("program", p.Name)
		if err := catalog.UpsertProgram(ctx, p); err != nil {
			return fmt.Errorf("upsert program: %w", err)
		}
		programIDs = append(programIDs, p.ID)
	}
	typeIDs := make([]string, 0, len(appointmentTypes))
	for _, t := range appointmentTypes {
		t.ID = StableID("appointment_type", t.Name)
		if err := catalog.UpsertAppointmentType(ctx, t); err != nil {
			return fmt.Errorf("upsert appointment type: %w", err)
		}
		typeIDs = append(typeIDs, t.ID)
	}

	for _, w := range mentorWindows {
		if _, err := store.CreateMentorAvailability(ctx, model.MentorAvailability{
			MentorID:  userIDs[w.mentor],
			DayOfWeek: w.day,
			StartTime: w.start,
			EndTime:   w.end,
			IsActive:  true,
		}); err != nil {
			return fmt.Errorf("create mentor availability: %w", err)
		}
	}

	// Monday to Friday 08:00-18:00, Saturday 09:00-13:00.
	for day := time.Monday; day <= time.Friday; day++ {
		if _, err := store.CreateSchedule(ctx, model.GlobalSchedule{DayOfWeek: day, StartTime: "08:00", EndTime: "18:00", IsActive: true}); err != nil {
			return fmt.Errorf("create schedule: %w", err)
		}
	}
	if _, err := store.CreateSchedule(ctx, model.GlobalSchedule{DayOfWeek: time.Saturday, StartTime: "09:00", EndTime: "13:00", IsActive: true}); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}

	today := opts.Now().In(opts.Location)
	at := func(days, hour, minute int) time.Time {
		return time.Date(today.Year(), today.Month(), today.Day()+days, hour, minute, 0, 0, opts.Location)
	}
	bookings := []model.Appointment{
		{UserName: "María González", UserEmail: "maria.gonzalez@email.com", Phone: "3151234567", ProgramID: programIDs[0], NumberDocument: "12345678", Date: at(2, 10, 0), AppointmentTypeID: typeIDs[0], Details: "Starting a web development career, basic HTML and CSS.", Status: model.StatusAssigned, MentorID: userIDs["carlos"]},
		{UserName: "Carlos Rodríguez", UserEmail: "carlos.rodriguez@email.com", Phone: "3009876543", ProgramID: programIDs[1], NumberDocument: "87654321", Date: at(3, 14, 30), AppointmentTypeID: typeIDs[1], Details: "Guidance on a predictive analytics project in Python.", Status: model.StatusAssigned, MentorID: userIDs["pedro"]},
		{UserName: "Ana Martínez", UserEmail: "ana.martinez@email.com", Phone: "3187654321", ProgramID: programIDs[2], NumberDocument: "11223344", Date: at(1, 9, 0), AppointmentTypeID: typeIDs[2], Details: "Portfolio review before job applications.", Status: model.StatusPending},
		{UserName: "Luis Hernández", UserEmail: "luis.hernandez@email.com", Phone: "3123456789", ProgramID: programIDs[0], NumberDocument: "55667788", Date: at(5, 11, 0), AppointmentTypeID: typeIDs[3], Details: "Interview preparation for JavaScript and React.", Status: model.StatusPending},
		{UserName: "Sofía Ramírez", UserEmail: "sofia.ramirez@email.com", Phone: "3045678901", ProgramID: programIDs[3], NumberDocument: "99887766", Date: at(4, 16, 0), AppointmentTypeID: typeIDs[1], Details: "Digital marketing strategy for a tech startup.", Status: model.StatusCompleted, MentorID: userIDs["ana"]},
		{UserName: "Diego Vargas", UserEmail: "diego.vargas@email.com", Phone: "3167890123", ProgramID: programIDs[4], NumberDocument: "33445566", Date: at(6, 15, 30), AppointmentTypeID: typeIDs[0], Details: "First consultation about a fintech business idea.", Status: model.StatusPending},
	}
	for _, b := range bookings {
		if _, err := store.CreateAppointment(ctx, b); err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
	}

	logger.Info("demo data seeded",
		"users", len(staffAccounts),
		"programs", len(programs),
		"appointment_types", len(appointmentTypes),
		"mentor_rules", len(mentorWindows),
		"appointments", len(bookings),
	)
	return nil
}
