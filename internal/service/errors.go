package service

import "errors"

var (
	// ErrNotDoctor: the schedule target resolves to a user whose role is not DOCTOR.
	ErrNotDoctor = errors.New("selected user is not a doctor")

	// ErrNotAppointmentDoctor: the caller is not the doctor on the appointment.
	ErrNotAppointmentDoctor = errors.New("unauthorized to update this appointment")

	// ErrNotDeletable: deletion guard violated.
	ErrNotDeletable = errors.New("only rejected or finished appointments can be deleted")

	// ErrNotifyFailed: the status change is committed but the notification
	// transport failed.
	ErrNotifyFailed = errors.New("notification dispatch failed")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrUnknownRole        = errors.New("role must be PATIENT or DOCTOR")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
