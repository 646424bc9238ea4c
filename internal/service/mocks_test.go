package service

import (
	"context"
	"time"

	"medivault/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockStore) GetUsersByRole(ctx context.Context, role string) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *mockStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	return m.Called(ctx, appt).Error(0)
}
func (m *mockStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}
func (m *mockStore) UpdateAppointmentStatus(ctx context.Context, id, status string, rejectionReason *string) (*models.Appointment, error) {
	args := m.Called(ctx, id, status, rejectionReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}
func (m *mockStore) DeleteAppointment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) ListAppointmentsByPatient(ctx context.Context, patientID string, minTime *time.Time) ([]*models.Appointment, error) {
	args := m.Called(ctx, patientID, minTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}
func (m *mockStore) ListAppointmentsByDoctor(ctx context.Context, doctorID string, minTime *time.Time) ([]*models.Appointment, error) {
	args := m.Called(ctx, doctorID, minTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Appointment), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, address, subject, body string) error {
	return m.Called(ctx, address, subject, body).Error(0)
}

type mockDoctorsCache struct {
	mock.Mock
}

func (m *mockDoctorsCache) GetDoctors(ctx context.Context) ([]*models.User, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Bool(1), args.Error(2)
}
func (m *mockDoctorsCache) SetDoctors(ctx context.Context, doctors []*models.User) error {
	return m.Called(ctx, doctors).Error(0)
}
func (m *mockDoctorsCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
