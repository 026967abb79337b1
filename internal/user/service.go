package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength = 254
	bcryptCost     = 12
)

var (
	ErrInvalidEmail       = fmt.Errorf("email address is not valid")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEmptyCredentials   = errors.New("email, username and password are required")
)

type User struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	Username     string              `json:"userName"`
	PasswordHash string              `json:"-"`
	MonthLimit   decimal.NullDecimal `json:"monthLimit"`
	CreatedAt    time.Time           `json:"createdAt"`
}

type Service interface {
	Register(ctx context.Context, password, username, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// UserIDByEmail returns ErrUserNotFound when nobody registered the email.
	UserIDByEmail(ctx context.Context, email string) (string, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

type service struct {
	repo Repository
	cost int
}

func NewUserService(repo Repository) Service {
	return &service{
		repo: repo,
		cost: bcryptCost,
	}
}

func hashPassword(password string, cost int) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hashedPasswordBytes), err
}

func validateEmailAddress(email string) error {
	if len(email) > maxEmailLength {
		return ErrInvalidEmail
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Register(ctx context.Context, password, username, email string) (*User, error) {
	if password == "" || username == "" || email == "" {
		return nil, ErrEmptyCredentials
	}
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}

	exists, err := s.repo.emailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := hashPassword(password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
	}

	// A concurrent registration can still win the race; the unique email
	// constraint reports it as ErrEmailAlreadyExists.
	if err := s.repo.createUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User registered", "user_id", user.ID)
	return user, nil
}

func (s *service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.emailExists(ctx, email)
}

func (s *service) UserIDByEmail(ctx context.Context, email string) (string, error) {
	return s.repo.getUserIDByEmail(ctx, email)
}

func (s *service) UserExists(ctx context.Context, userID string) (bool, error) {
	return s.repo.userExists(ctx, userID)
}
