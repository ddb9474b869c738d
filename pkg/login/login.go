package login

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// LoginUser is the account record returned by a successful credential check
type LoginUser struct {
	ID    uuid.UUID
	Name  string
	Email string
	Roles []string
}

// LoginRepository resolves credentials and role assignments
type LoginRepository interface {
	FindUserByEmail(ctx context.Context, email string) (LoginRecord, error)
	FindUserRoles(ctx context.Context, userId uuid.UUID) ([]string, error)
}

// LoginRecord carries the stored credential for verification
type LoginRecord struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash []byte
}

type LoginService struct {
	repo LoginRepository
}

func NewLoginService(repo LoginRepository) *LoginService {
	return &LoginService{
		repo: repo,
	}
}

// Login verifies the email/password pair and returns the account with its
// roles. The same failure is reported for an unknown email and a wrong
// password so the form does not leak which accounts exist.
func (s *LoginService) Login(ctx context.Context, email, password string) (LoginUser, error) {
	record, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		slog.Warn("Login failed", "email", email)
		return LoginUser{}, fmt.Errorf("invalid email or password")
	}

	match, err := CheckPasswordHash(password, string(record.PasswordHash))
	if err != nil || !match {
		slog.Warn("Login failed", "email", email)
		return LoginUser{}, fmt.Errorf("invalid email or password")
	}

	roles, err := s.repo.FindUserRoles(ctx, record.ID)
	if err != nil {
		return LoginUser{}, fmt.Errorf("failed to load roles: %w", err)
	}

	return LoginUser{
		ID:    record.ID,
		Name:  record.Name,
		Email: record.Email,
		Roles: roles,
	}, nil
}

// HashPassword hashes a password with bcrypt at the default cost
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPasswordHash checks if a password matches a bcrypt hash
func CheckPasswordHash(password, hashedPassword string) (bool, error) {
	if password == "" || hashedPassword == "" {
		return false, errors.New("password and hashed password cannot be empty")
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
