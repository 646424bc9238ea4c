package database

import (
	"context"
	"os"
	"testing"

	"medivault/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(os.Stdout)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(email, role string) *models.User {
	return &models.User{
		Name:         "Test User",
		Email:        email,
		Role:         role,
		PasswordHash: "hash",
	}
}

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := &models.User{
		Name:         "Dr. House",
		Email:        "house@clinic.test",
		PasswordHash: "hash",
		Phone:        "+100200300",
		Role:         models.RoleDoctor,
		Gender:       "male",
		Age:          50,
		Specialty:    "Diagnostics",
		ClinicName:   "Princeton",
	}
	err := db.CreateUser(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. House", byID.Name)
	assert.Equal(t, models.RoleDoctor, byID.Role)
	assert.Equal(t, "Diagnostics", byID.Specialty)

	byEmail, err := db.GetUserByEmail(ctx, "house@clinic.test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.GetUserByEmail(ctx, "missing@nowhere.test")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, newTestUser("dup@clinic.test", models.RolePatient)))
	err := db.CreateUser(ctx, newTestUser("dup@clinic.test", models.RolePatient))
	assert.Error(t, err)
}

func TestGetUsersByRole(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, newTestUser("p1@clinic.test", models.RolePatient)))
	require.NoError(t, db.CreateUser(ctx, newTestUser("d1@clinic.test", models.RoleDoctor)))
	require.NoError(t, db.CreateUser(ctx, newTestUser("d2@clinic.test", models.RoleDoctor)))

	doctors, err := db.GetUsersByRole(ctx, models.RoleDoctor)
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	for _, d := range doctors {
		assert.Equal(t, models.RoleDoctor, d.Role)
	}

	patients, err := db.GetUsersByRole(ctx, models.RolePatient)
	require.NoError(t, err)
	require.Len(t, patients, 1)
}
