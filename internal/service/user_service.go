package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mufaddal-lashkar/safirah-server/internal/auth"
	"github.com/mufaddal-lashkar/safirah-server/internal/config"
	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"
	"github.com/mufaddal-lashkar/safirah-server/pkg/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserSvc struct {
	users UserRepository
	cfg   config.AuthConfig
}

func NewUserService(users UserRepository, cfg config.AuthConfig) *UserSvc {
	return &UserSvc{users: users, cfg: cfg}
}

func (s *UserSvc) Register(ctx context.Context, req domain.RegisterUserRequest) (*domain.User, error) {
	const op = "service.User.Register"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, fieldErrors(err), e.ErrInvalidInput)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%s: email already registered: %w", op, e.ErrInvalidInput)
	} else if !errors.Is(err, e.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, e.Wrap(op+": hash password", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         "user",
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, e.ErrUniqueViolation) {
			return nil, fmt.Errorf("%s: email already registered: %w", op, e.ErrInvalidInput)
		}
		return nil, err
	}

	return user, nil
}

func (s *UserSvc) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	const op = "service.User.Login"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, fieldErrors(err), e.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, e.Wrap(op+": lookup user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%s: invalid credentials: %w", op, e.ErrInvalidInput)
	}

	token, err := auth.IssueToken([]byte(s.cfg.JWTSecret), user.ID, user.Email, user.Role, s.cfg.TokenTTL)
	if err != nil {
		return nil, e.Wrap(op+": issue token", err)
	}

	return &domain.LoginResponse{Token: token, User: *user}, nil
}

func (s *UserSvc) Current(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
