package worker

import (
	"context"
	"fmt"
	"time"

	"medivault/internal/domain"
	"medivault/internal/models"

	"github.com/rs/zerolog"
)

const reminderSubject = "Appointment Reminder"

// appointmentSource is the slice of the store the reminder needs.
type appointmentSource interface {
	ListAppointmentsInRange(ctx context.Context, start, end time.Time, status string) ([]*models.Appointment, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Reminder sends next-day reminders for APPROVED appointments once a day.
// Reminder delivery retries with backoff; the lifecycle notification path
// never does.
type Reminder struct {
	store    appointmentSource
	notifier domain.Notifier
	policy   RetryPolicy
	at       string // HH:MM local time
	logger   *zerolog.Logger

	now func() time.Time
}

func NewReminder(store appointmentSource, notifier domain.Notifier, at string, logger *zerolog.Logger) *Reminder {
	return &Reminder{
		store:    store,
		notifier: notifier,
		at:       at,
		policy: RetryPolicy{
			MaxRetries:    3,
			InitialDelay:  2 * time.Second,
			MaxDelay:      30 * time.Second,
			BackoffFactor: 2,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Run blocks until ctx is done, firing once per day at the configured time.
func (r *Reminder) Run(ctx context.Context) {
	for {
		next, err := r.nextFire()
		if err != nil {
			r.logger.Error().Err(err).Str("time", r.at).Msg("invalid reminder time, worker stopped")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		if err := r.SendReminders(ctx, r.now().AddDate(0, 0, 1)); err != nil {
			r.logger.Error().Err(err).Msg("reminder run failed")
		}
	}
}

func (r *Reminder) nextFire() (time.Time, error) {
	at, err := time.Parse("15:04", r.at)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse reminder time %q: %w", r.at, err)
	}
	now := r.now()
	fire := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !fire.After(now) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire, nil
}

// SendReminders notifies every patient with an APPROVED appointment on the
// given day.
func (r *Reminder) SendReminders(ctx context.Context, day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	appointments, err := r.store.ListAppointmentsInRange(ctx, start, end, models.StatusApproved)
	if err != nil {
		return err
	}

	for _, appt := range appointments {
		patient, err := r.store.GetUserByID(ctx, appt.PatientID)
		if err != nil {
			r.logger.Error().Err(err).Str("appointment_id", appt.ID).Msg("reminder patient lookup failed")
			continue
		}
		doctor, err := r.store.GetUserByID(ctx, appt.DoctorID)
		if err != nil {
			r.logger.Error().Err(err).Str("appointment_id", appt.ID).Msg("reminder doctor lookup failed")
			continue
		}

		body := fmt.Sprintf("Dear %s,\n\nThis is a reminder of your appointment with Dr. %s on %s.",
			patient.Name, doctor.Name, appt.AppointmentTime.Format("2006-01-02 15:04"))

		sendErr := r.policy.Do(ctx, func() error {
			return r.notifier.Send(ctx, patient.Email, reminderSubject, body)
		})
		if sendErr != nil {
			r.logger.Error().Err(sendErr).Str("appointment_id", appt.ID).Msg("reminder delivery failed")
			continue
		}
		r.logger.Debug().Str("appointment_id", appt.ID).Msg("reminder sent")
	}
	return nil
}
