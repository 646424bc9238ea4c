package service

import (
	"context"
	"errors"
	"strings"

	"medivault/internal/auth"
	"medivault/internal/database"
	"medivault/internal/domain"
	"medivault/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	store        domain.Store
	doctorsCache domain.DoctorsCache
	logger       *zerolog.Logger
}

func NewUserService(store domain.Store, doctorsCache domain.DoctorsCache, logger *zerolog.Logger) *UserService {
	return &UserService{store: store, doctorsCache: doctorsCache, logger: logger}
}

// Register creates a user with a hashed password. Role defaults to PATIENT.
func (s *UserService) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))
	if user.Role == "" {
		user.Role = models.RolePatient
	}
	if user.Role != models.RolePatient && user.Role != models.RoleDoctor {
		return nil, ErrUnknownRole
	}

	_, err := s.store.GetUserByEmail(ctx, user.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// New doctors must show up in the directory right away.
	if user.Role == models.RoleDoctor && s.doctorsCache != nil {
		if err := s.doctorsCache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("doctors cache invalidation failed")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// Authenticate verifies credentials and returns the stored user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.GetUserByEmail(ctx, email)
}
