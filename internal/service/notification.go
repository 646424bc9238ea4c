package service

import (
	"fmt"
	"time"

	"medivault/internal/models"
)

const statusUpdateSubject = "Appointment Status Update"

const appointmentTimeLayout = "2006-01-02 15:04"

// statusUpdateBody renders the patient-facing text for a status change.
// For REJECTED the reason passed by the caller is rendered even when empty;
// a nil reason renders as an empty string, matching the historical messages.
func statusUpdateBody(patientName, doctorName string, at time.Time, status string, reason *string) string {
	switch status {
	case models.StatusApproved:
		return fmt.Sprintf("Dear %s,\n\nYour appointment with Dr. %s on %s has been APPROVED.",
			patientName, doctorName, at.Format(appointmentTimeLayout))
	case models.StatusRejected:
		r := ""
		if reason != nil {
			r = *reason
		}
		return fmt.Sprintf("Dear %s,\n\nYour appointment with Dr. %s on %s has been REJECTED. Reason: %s",
			patientName, doctorName, at.Format(appointmentTimeLayout), r)
	default:
		return fmt.Sprintf("Dear %s,\n\nYour appointment status has been updated to: %s.",
			patientName, status)
	}
}
