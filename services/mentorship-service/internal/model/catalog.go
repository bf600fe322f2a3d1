package model

type Program struct {
	ID          string
	Name        string
	Description string
}

type AppointmentType struct {
	ID              string
	Name            string
	DurationMinutes int
	Description     string
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMentor Role = "mentor"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	Name         string
}
