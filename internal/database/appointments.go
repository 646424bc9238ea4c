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

const appointmentColumns = `id, patient_id, doctor_id, appointment_time, status,
                 rejection_reason, created_at, updated_at`

func (db *DB) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now()
	query := `INSERT INTO appointments (` + appointmentColumns + `)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		appt.ID,
		appt.PatientID,
		appt.DoctorID,
		appt.AppointmentTime,
		appt.Status,
		appt.RejectionReason,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	appt.CreatedAt = now
	appt.UpdatedAt = now
	return nil
}

func (db *DB) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = ?`
	row := db.QueryRowContext(ctx, query, id)
	appt, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appt, nil
}

// UpdateAppointmentStatus sets the status verbatim inside a single
// transaction and returns the updated row. A nil rejectionReason leaves the
// previously stored reason untouched.
func (db *DB) UpdateAppointmentStatus(ctx context.Context, id, status string, rejectionReason *string) (*models.Appointment, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	var result sql.Result
	if rejectionReason != nil {
		result, err = tx.ExecContext(ctx,
			`UPDATE appointments SET status = ?, rejection_reason = ?, updated_at = ? WHERE id = ?`,
			status, *rejectionReason, now, id,
		)
	} else {
		result, err = tx.ExecContext(ctx,
			`UPDATE appointments SET status = ?, updated_at = ? WHERE id = ?`,
			status, now, id,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}

	row := tx.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)
	appt, err := scanAppointment(row)
	if err != nil {
		return nil, fmt.Errorf("failed to reload appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	return appt, nil
}

func (db *DB) DeleteAppointment(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) ListAppointmentsByPatient(ctx context.Context, patientID string, minTime *time.Time) ([]*models.Appointment, error) {
	return db.listAppointments(ctx, "patient_id", patientID, minTime)
}

func (db *DB) ListAppointmentsByDoctor(ctx context.Context, doctorID string, minTime *time.Time) ([]*models.Appointment, error) {
	return db.listAppointments(ctx, "doctor_id", doctorID, minTime)
}

func (db *DB) listAppointments(ctx context.Context, column, userID string, minTime *time.Time) ([]*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE ` + column + ` = ?`
	args := []interface{}{userID}
	if minTime != nil {
		query += ` AND appointment_time >= ?`
		args = append(args, *minTime)
	}
	query += ` ORDER BY appointment_time ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, appt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return appointments, nil
}

// ListAppointmentsInRange returns appointments with the given status whose
// time falls in [start, end), ordered ascending. Used by the reminder worker.
func (db *DB) ListAppointmentsInRange(ctx context.Context, start, end time.Time, status string) ([]*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
              WHERE appointment_time >= ? AND appointment_time < ? AND status = ?
              ORDER BY appointment_time ASC`
	rows, err := db.QueryContext(ctx, query, start, end, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments in range: %w", err)
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, appt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return appointments, nil
}

func scanAppointment(row rowScanner) (*models.Appointment, error) {
	var appt models.Appointment
	var reason sql.NullString
	err := row.Scan(
		&appt.ID, &appt.PatientID, &appt.DoctorID, &appt.AppointmentTime,
		&appt.Status, &reason, &appt.CreatedAt, &appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reason.Valid {
		appt.RejectionReason = &reason.String
	}
	return &appt, nil
}
