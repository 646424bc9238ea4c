package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"` // PATIENT, DOCTOR
	Gender       string    `json:"gender"`
	Age          int       `json:"age"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Поля профиля врача, пустые для пациентов
	Specialty         string `json:"specialty,omitempty"`
	LicenseNumber     string `json:"license_number,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`
	Bio               string `json:"bio,omitempty"`
	ClinicName        string `json:"clinic_name,omitempty"`
	ClinicLocation    string `json:"clinic_location,omitempty"`
	AvailableHours    string `json:"available_hours,omitempty"`
}

// Profile is the wire representation of a user embedded into appointment
// responses. Password hash and timestamps are never exposed there.
type Profile struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Role              string `json:"role"`
	Gender            string `json:"gender"`
	Age               int    `json:"age"`
	Specialty         string `json:"specialty,omitempty"`
	LicenseNumber     string `json:"license_number,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`
	Bio               string `json:"bio,omitempty"`
	ClinicName        string `json:"clinic_name,omitempty"`
	ClinicLocation    string `json:"clinic_location,omitempty"`
	AvailableHours    string `json:"available_hours,omitempty"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		Role:              u.Role,
		Gender:            u.Gender,
		Age:               u.Age,
		Specialty:         u.Specialty,
		LicenseNumber:     u.LicenseNumber,
		YearsOfExperience: u.YearsOfExperience,
		Bio:               u.Bio,
		ClinicName:        u.ClinicName,
		ClinicLocation:    u.ClinicLocation,
		AvailableHours:    u.AvailableHours,
	}
}
