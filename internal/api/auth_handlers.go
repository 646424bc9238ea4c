package api

import (
	"encoding/json"
	"net/http"
	"time"

	"medivault/internal/auth"
	"medivault/internal/models"
)

type signupRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	Role           string `json:"role"`
	Gender         string `json:"gender"`
	Age            int    `json:"age"`
	Specialty      string `json:"specialty"`
	LicenseNumber  string `json:"licenseNumber"`
	YearsOfExp     int    `json:"yearsOfExperience"`
	Bio            string `json:"bio"`
	ClinicName     string `json:"clinicName"`
	ClinicLocation string `json:"clinicLocation"`
	AvailableHours string `json:"availableHours"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	user := &models.User{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Role:              req.Role,
		Gender:            req.Gender,
		Age:               req.Age,
		Specialty:         req.Specialty,
		LicenseNumber:     req.LicenseNumber,
		YearsOfExperience: req.YearsOfExp,
		Bio:               req.Bio,
		ClinicName:        req.ClinicName,
		ClinicLocation:    req.ClinicLocation,
		AvailableHours:    req.AvailableHours,
	}

	created, err := s.users.Register(r.Context(), user, req.Password)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	token, err := s.issueToken(created)
	if err != nil {
		s.logger.Error().Err(err).Msg("token issue failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: created.Profile()})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("token issue failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user.Profile()})
}

func (s *HTTPServer) issueToken(user *models.User) (string, error) {
	ttl := time.Duration(s.authCfg.TokenTTL) * time.Minute
	return auth.MakeToken(user.ID, user.Email, user.Role, s.authCfg.JWTSecret, ttl)
}
