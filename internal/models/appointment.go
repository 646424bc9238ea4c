package models

import "time"

type Appointment struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	Status          string    `json:"status"` // PENDING, APPROVED, REJECTED, FINISHED
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AppointmentView is the wire shape: full doctor and patient profiles are
// embedded instead of bare ids.
type AppointmentView struct {
	ID              string    `json:"id"`
	Doctor          Profile   `json:"doctor"`
	Patient         Profile   `json:"patient"`
	AppointmentTime time.Time `json:"appointment_time"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Deletable reports whether the deletion guard allows removing the record.
func (a *Appointment) Deletable() bool {
	return a.Status == StatusRejected || a.Status == StatusFinished
}
