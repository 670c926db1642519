package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/event-booking/internal/apperror"
	"github.com/sakif/event-booking/internal/auth"
	"github.com/sakif/event-booking/internal/metrics"
	"github.com/sakif/event-booking/internal/model"
	"github.com/sakif/event-booking/internal/repository"
)

// Validation limits for user input.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// PasswordHasher is the part of auth.PasswordService the user service needs.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// CreateUserInput carries registration data exactly as the caller sent it.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     int64
}

// UserService handles account registration.
type UserService struct {
	users     repository.UserRepository
	passwords PasswordHasher
	validate  *validator.Validate
	timeout   time.Duration
	logger    *slog.Logger
}

func NewUserService(users repository.UserRepository, passwords PasswordHasher, timeout time.Duration, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		validate:  validator.New(),
		timeout:   timeout,
		logger:    logger,
	}
}

// NormalizeEmail is the canonical form used for storage and uniqueness:
// surrounding space removed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a new user.
//
// STEPS:
//  1. Normalize and validate. Nothing is written on failure.
//  2. Look the email up. A hit is reported as DuplicateEmail right away.
//  3. Hash the password with the fixed bcrypt cost.
//  4. Insert. The store's unique index may still reject the email if a
//     concurrent registration won the race; that is also DuplicateEmail.
//
// The returned user never carries the password hash.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	user := &model.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     NormalizeEmail(in.Email),
		Phone:     in.Phone,
	}
	if err := s.validateUser(user, in.Password); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, user.Email); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperror.ValidationFailed("password",
				fmt.Sprintf("password must be %d bytes or fewer", auth.MaxPasswordBytes))
		}
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = hash

	storeCtx, cancel := storeContext(ctx, s.timeout)
	defer cancel()
	if err := s.users.CreateUser(storeCtx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicateEmail) {
			s.logger.Info("registration lost email race", slog.String("email", user.Email))
			return nil, err
		}
		return nil, storeError(s.logger, "create user", err)
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("email", user.Email),
	)

	public := user.Public()
	return &public, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	storeCtx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	_, err := s.users.GetUserByEmail(storeCtx, email)
	switch {
	case err == nil:
		return apperror.DuplicateEmail(email)
	case errors.Is(err, apperror.ErrNotFound):
		return nil
	default:
		return storeError(s.logger, "look up user by email", err)
	}
}

func (s *UserService) validateUser(u *model.User, password string) error {
	if err := requireText("firstName", u.FirstName, MaxNameLength); err != nil {
		return err
	}
	if err := requireText("lastName", u.LastName, MaxNameLength); err != nil {
		return err
	}
	if err := requireText("email", u.Email, MaxEmailLength); err != nil {
		return err
	}
	if err := s.validate.Var(u.Email, "email"); err != nil {
		return apperror.ValidationFailed("email", "email must be a valid email address")
	}
	if password == "" {
		return apperror.ValidationFailed("password", "password is required")
	}
	if u.Phone <= 0 {
		return apperror.ValidationFailed("phone", "phone must be a positive number")
	}
	return nil
}

// requireText checks an already trimmed value is present and not too long.
func requireText(field, value string, max int) error {
	if value == "" {
		return apperror.ValidationFailed(field, field+" is required")
	}
	if len([]rune(value)) > max {
		return apperror.ValidationFailed(field,
			fmt.Sprintf("%s must be %d characters or less", field, max))
	}
	return nil
}
