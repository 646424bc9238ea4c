package domain

import (
	"context"
	"time"

	"medivault/internal/models"
)

// Store owns user and appointment persistence.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByRole(ctx context.Context, role string) ([]*models.User, error)

	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id, status string, rejectionReason *string) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	// minTime == nil returns the full history; otherwise only appointments
	// at or after minTime. Both are ordered by appointment_time ascending.
	ListAppointmentsByPatient(ctx context.Context, patientID string, minTime *time.Time) ([]*models.Appointment, error)
	ListAppointmentsByDoctor(ctx context.Context, doctorID string, minTime *time.Time) ([]*models.Appointment, error)
}

// Notifier delivers a subject/body message to an address. Transport-agnostic:
// the address is an email for the smtp implementation and a chat id for the
// telegram one.
type Notifier interface {
	Send(ctx context.Context, address, subject, body string) error
}

// EventPublisher fans out domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// DoctorsCache caches the doctor directory between reads.
type DoctorsCache interface {
	GetDoctors(ctx context.Context) ([]*models.User, bool, error)
	SetDoctors(ctx context.Context, doctors []*models.User) error
	Invalidate(ctx context.Context) error
}

// AppointmentService is the appointment lifecycle engine.
type AppointmentService interface {
	Schedule(ctx context.Context, callerEmail, doctorID string, at time.Time) (*models.AppointmentView, error)
	UpdateStatus(ctx context.Context, callerEmail, appointmentID, status string, rejectionReason *string) (*models.AppointmentView, error)
	Delete(ctx context.Context, appointmentID string) error
	ListForPatient(ctx context.Context, callerEmail string) ([]*models.AppointmentView, error)
	ListUpcomingForPatient(ctx context.Context, callerEmail string) ([]*models.AppointmentView, error)
	ListForDoctor(ctx context.Context, callerEmail string) ([]*models.AppointmentView, error)
	ListUpcomingForDoctor(ctx context.Context, callerEmail string) ([]*models.AppointmentView, error)
	ListDoctors(ctx context.Context) ([]models.Profile, error)
	ListPatientsForDoctor(ctx context.Context, doctorID string) ([]models.Profile, error)
}

// UserService handles signup and credential verification.
type UserService interface {
	Register(ctx context.Context, user *models.User, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
