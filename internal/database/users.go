package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"medivault/internal/models"

	"github.com/google/uuid"
)

const userColumns = `id, name, email, password_hash, phone, role, gender, age,
                 specialty, license_number, years_of_experience, bio,
                 clinic_name, clinic_location, available_hours,
                 created_at, updated_at`

func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	query := `INSERT INTO users (` + userColumns + `)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.Gender,
		user.Age,
		user.Specialty,
		user.LicenseNumber,
		user.YearsOfExperience,
		user.Bio,
		user.ClinicName,
		user.ClinicLocation,
		user.AvailableHours,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return db.queryUser(ctx, query, id)
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return db.queryUser(ctx, query, email)
}

func (db *DB) GetUsersByRole(ctx context.Context, role string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = ? ORDER BY name ASC`
	rows, err := db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by role: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func (db *DB) queryUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	row := db.QueryRowContext(ctx, query, args...)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var phone, gender, specialty, license, bio, clinicName, clinicLocation, hours sql.NullString
	var age, years sql.NullInt64
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &phone,
		&user.Role, &gender, &age,
		&specialty, &license, &years, &bio,
		&clinicName, &clinicLocation, &hours,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Phone = phone.String
	user.Gender = gender.String
	user.Age = int(age.Int64)
	user.Specialty = specialty.String
	user.LicenseNumber = license.String
	user.YearsOfExperience = int(years.Int64)
	user.Bio = bio.String
	user.ClinicName = clinicName.String
	user.ClinicLocation = clinicLocation.String
	user.AvailableHours = hours.String
	return &user, nil
}
