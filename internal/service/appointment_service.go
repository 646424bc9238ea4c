package service

import (
	"context"
	"fmt"
	"time"

	"medivault/internal/domain"
	"medivault/internal/events"
	"medivault/internal/metrics"
	"medivault/internal/models"

	"github.com/rs/zerolog"
)

// AppointmentService owns the appointment lifecycle: scheduling, status
// transitions with doctor authorization, guarded deletion and the listing
// projections. Status changes notify the patient after the row is durable.
type AppointmentService struct {
	store        domain.Store
	notifier     domain.Notifier
	eventBus     domain.EventPublisher
	doctorsCache domain.DoctorsCache
	logger       *zerolog.Logger

	// now is swappable in tests so the upcoming filters are deterministic.
	now func() time.Time
}

func NewAppointmentService(store domain.Store, notifier domain.Notifier, eventBus domain.EventPublisher, doctorsCache domain.DoctorsCache, logger *zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		store:        store,
		notifier:     notifier,
		eventBus:     eventBus,
		doctorsCache: doctorsCache,
		logger:       logger,
		now:          time.Now,
	}
}

// Schedule creates a PENDING appointment between the caller (patient) and the
// doctor. The appointment time is taken as-is; no range validation.
func (s *AppointmentService) Schedule(ctx context.Context, callerEmail, doctorID string, at time.Time) (*models.AppointmentView, error) {
	patient, err := s.store.GetUserByEmail(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	doctor, err := s.store.GetUserByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != models.RoleDoctor {
		return nil, ErrNotDoctor
	}

	appt := &models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentTime: at,
		Status:          models.StatusPending,
	}
	if err := s.store.CreateAppointment(ctx, appt); err != nil {
		return nil, err
	}

	metrics.IncScheduled()
	s.publishEvent(events.EventAppointmentScheduled, appt, patient.ID)

	return toView(appt, doctor, patient), nil
}

// UpdateStatus sets the status verbatim. Only the appointment's doctor may
// call it. A rejection reason is recorded only when the new status is
// REJECTED and the reason is non-nil; otherwise any stored reason stays.
// The patient is notified exactly once, after the update is durable; a
// transport failure propagates even though the mutation stays committed.
func (s *AppointmentService) UpdateStatus(ctx context.Context, callerEmail, appointmentID, status string, rejectionReason *string) (*models.AppointmentView, error) {
	doctor, err := s.store.GetUserByEmail(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	appt, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctor.ID {
		return nil, ErrNotAppointmentDoctor
	}

	var reason *string
	if status == models.StatusRejected && rejectionReason != nil {
		reason = rejectionReason
	}

	updated, err := s.store.UpdateAppointmentStatus(ctx, appointmentID, status, reason)
	if err != nil {
		return nil, err
	}

	metrics.IncTransition(status)
	s.publishEvent(events.EventAppointmentStatusChanged, updated, doctor.ID)

	patient, err := s.store.GetUserByID(ctx, updated.PatientID)
	if err != nil {
		return nil, err
	}

	body := statusUpdateBody(patient.Name, doctor.Name, updated.AppointmentTime, status, rejectionReason)
	if err := s.notifier.Send(ctx, patient.Email, statusUpdateSubject, body); err != nil {
		metrics.IncNotification("failed")
		s.logger.Error().Err(err).
			Str("appointment_id", updated.ID).
			Str("patient_email", patient.Email).
			Msg("patient notification failed after committed status update")
		return nil, fmt.Errorf("%w: %v", ErrNotifyFailed, err)
	}
	metrics.IncNotification("sent")

	return toView(updated, doctor, patient), nil
}

// Delete removes an appointment. Allowed only for REJECTED or FINISHED
// records. There is no caller check here; that matches the historical
// behavior and is tracked as a known gap.
func (s *AppointmentService) Delete(ctx context.Context, appointmentID string) error {
	appt, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !appt.Deletable() {
		return ErrNotDeletable
	}

	if err := s.store.DeleteAppointment(ctx, appointmentID); err != nil {
		return err
	}

	s.publishEvent(events.EventAppointmentDeleted, appt, "")
	return nil
}

func (s *AppointmentService) ListForPatient(ctx context.Context, callerEmail string) ([]*models.AppointmentView, error) {
	return s.listForCaller(ctx, callerEmail, s.store.ListAppointmentsByPatient, nil)
}

func (s *AppointmentService) ListUpcomingForPatient(ctx context.Context, callerEmail string) ([]*models.AppointmentView, error) {
	now := s.now()
	return s.listForCaller(ctx, callerEmail, s.store.ListAppointmentsByPatient, &now)
}

func (s *AppointmentService) ListForDoctor(ctx context.Context, callerEmail string) ([]*models.AppointmentView, error) {
	return s.listForCaller(ctx, callerEmail, s.store.ListAppointmentsByDoctor, nil)
}

func (s *AppointmentService) ListUpcomingForDoctor(ctx context.Context, callerEmail string) ([]*models.AppointmentView, error) {
	now := s.now()
	return s.listForCaller(ctx, callerEmail, s.store.ListAppointmentsByDoctor, &now)
}

type listFunc func(ctx context.Context, userID string, minTime *time.Time) ([]*models.Appointment, error)

func (s *AppointmentService) listForCaller(ctx context.Context, callerEmail string, list listFunc, minTime *time.Time) ([]*models.AppointmentView, error) {
	caller, err := s.store.GetUserByEmail(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	appointments, err := list(ctx, caller.ID, minTime)
	if err != nil {
		return nil, err
	}

	return s.assembleViews(ctx, appointments)
}

// ListDoctors returns every user with role DOCTOR, through the directory
// cache when one is configured.
func (s *AppointmentService) ListDoctors(ctx context.Context) ([]models.Profile, error) {
	if s.doctorsCache != nil {
		if doctors, ok, err := s.doctorsCache.GetDoctors(ctx); err == nil && ok {
			return profiles(doctors), nil
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("doctors cache read failed, falling back to store")
		}
	}

	doctors, err := s.store.GetUsersByRole(ctx, models.RoleDoctor)
	if err != nil {
		return nil, err
	}

	if s.doctorsCache != nil {
		if err := s.doctorsCache.SetDoctors(ctx, doctors); err != nil {
			s.logger.Warn().Err(err).Msg("doctors cache write failed")
		}
	}

	return profiles(doctors), nil
}

// ListPatientsForDoctor returns the distinct patients who have ever had an
// appointment with the doctor, in order of first appearance in the doctor's
// time-ascending appointment list.
func (s *AppointmentService) ListPatientsForDoctor(ctx context.Context, doctorID string) ([]models.Profile, error) {
	if _, err := s.store.GetUserByID(ctx, doctorID); err != nil {
		return nil, err
	}

	appointments, err := s.store.ListAppointmentsByDoctor(ctx, doctorID, nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(appointments))
	patients := make([]models.Profile, 0, len(appointments))
	for _, appt := range appointments {
		if seen[appt.PatientID] {
			continue
		}
		seen[appt.PatientID] = true

		patient, err := s.store.GetUserByID(ctx, appt.PatientID)
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient.Profile())
	}
	return patients, nil
}

func (s *AppointmentService) assembleViews(ctx context.Context, appointments []*models.Appointment) ([]*models.AppointmentView, error) {
	users := make(map[string]*models.User)
	lookup := func(id string) (*models.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		u, err := s.store.GetUserByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users[id] = u
		return u, nil
	}

	views := make([]*models.AppointmentView, 0, len(appointments))
	for _, appt := range appointments {
		doctor, err := lookup(appt.DoctorID)
		if err != nil {
			return nil, err
		}
		patient, err := lookup(appt.PatientID)
		if err != nil {
			return nil, err
		}
		views = append(views, toView(appt, doctor, patient))
	}
	return views, nil
}

func (s *AppointmentService) publishEvent(eventType string, appt *models.Appointment, changedBy string) {
	if s.eventBus == nil {
		return
	}

	payload := events.AppointmentEventPayload{
		AppointmentID:   appt.ID,
		PatientID:       appt.PatientID,
		DoctorID:        appt.DoctorID,
		Status:          appt.Status,
		AppointmentTime: appt.AppointmentTime,
		ChangedBy:       changedBy,
	}
	if appt.RejectionReason != nil {
		payload.RejectionReason = *appt.RejectionReason
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("appointment_id", appt.ID).Msg("publish event error")
	}
}

func toView(appt *models.Appointment, doctor, patient *models.User) *models.AppointmentView {
	return &models.AppointmentView{
		ID:              appt.ID,
		Doctor:          doctor.Profile(),
		Patient:         patient.Profile(),
		AppointmentTime: appt.AppointmentTime,
		Status:          appt.Status,
		RejectionReason: appt.RejectionReason,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}

func profiles(users []*models.User) []models.Profile {
	out := make([]models.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out
}
