package api

import (
	"errors"
	"net/http"

	"medivault/internal/database"
	"medivault/internal/service"
)

// statusFor maps engine errors onto distinct HTTP status codes. A notify
// failure maps to 502: the status change is already committed at that point,
// only the patient notification was lost.
func statusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotAppointmentDoctor):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotDoctor), errors.Is(err, service.ErrUnknownRole):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotDeletable), errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotifyFailed):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("internal error")
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
