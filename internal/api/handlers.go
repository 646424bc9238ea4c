package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medivault/internal/export"
	"medivault/internal/models"
)

const appointmentsPrefix = "/api/appointments/"

type scheduleRequest struct {
	DoctorID        string    `json:"doctorId"`
	AppointmentTime time.Time `json:"appointmentTime"`
}

type statusUpdateRequest struct {
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejectionReason"`
}

func (s *HTTPServer) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	identity, ok := callerIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.DoctorID == "" {
		writeError(w, http.StatusBadRequest, "doctorId is required")
		return
	}
	if req.AppointmentTime.IsZero() {
		writeError(w, http.StatusBadRequest, "appointmentTime is required")
		return
	}

	view, err := s.appointments.Schedule(r.Context(), identity.Email, req.DoctorID, req.AppointmentTime)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// handleAppointmentByID dispatches PUT /api/appointments/{id}/status and
// DELETE /api/appointments/{id}.
func (s *HTTPServer) handleAppointmentByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, appointmentsPrefix)
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 2 && parts[1] == "status":
		s.handleUpdateStatus(w, r, parts[0])
	case len(parts) == 1 && parts[0] != "":
		s.handleDelete(w, r, parts[0])
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleUpdateStatus(w http.ResponseWriter, r *http.Request, appointmentID string) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	identity, ok := callerIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	view, err := s.appointments.UpdateStatus(r.Context(), identity.Email, appointmentID, req.Status, req.RejectionReason)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleDelete(w http.ResponseWriter, r *http.Request, appointmentID string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.appointments.Delete(r.Context(), appointmentID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleListForPatient(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, s.appointments.ListForPatient)
}

func (s *HTTPServer) handleListUpcomingForPatient(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, s.appointments.ListUpcomingForPatient)
}

func (s *HTTPServer) handleListForDoctor(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, s.appointments.ListForDoctor)
}

func (s *HTTPServer) handleListUpcomingForDoctor(w http.ResponseWriter, r *http.Request) {
	s.handleList(w, r, s.appointments.ListUpcomingForDoctor)
}

func (s *HTTPServer) handleList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, callerEmail string) ([]*models.AppointmentView, error)) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	identity, ok := callerIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	views, err := list(r.Context(), identity.Email)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if views == nil {
		views = []*models.AppointmentView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleListDoctors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	doctors, err := s.appointments.ListDoctors(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if doctors == nil {
		doctors = []models.Profile{}
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (s *HTTPServer) handleListPatientsForDoctor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	doctorID := strings.TrimSpace(r.URL.Query().Get("doctorId"))
	if doctorID == "" {
		writeError(w, http.StatusBadRequest, "doctorId is required")
		return
	}

	patients, err := s.appointments.ListPatientsForDoctor(r.Context(), doctorID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if patients == nil {
		patients = []models.Profile{}
	}
	writeJSON(w, http.StatusOK, patients)
}

func (s *HTTPServer) handleExportAppointments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	identity, ok := callerIdentity(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	if identity.Role != models.RoleDoctor {
		writeError(w, http.StatusForbidden, "export is limited to doctors")
		return
	}

	views, err := s.appointments.ListForDoctor(r.Context(), identity.Email)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	workbook, err := export.AppointmentsWorkbook(views)
	if err != nil {
		s.logger.Error().Err(err).Msg("export workbook build failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	filename := fmt.Sprintf("appointments_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := workbook.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("export write failed")
	}
}
