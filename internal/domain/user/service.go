package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"smartmoney/internal/domain/tenant"
)

type Servicer interface {
	Register(ctx context.Context, email, username, password string) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
	ChangeUsername(ctx context.Context, email, newUsername string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	renamer   tenant.Renamer
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, renamer tenant.Renamer, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		renamer:   renamer,
		log:       log.With("component", "user_service"),
	}
}

func (s *Service) Register(ctx context.Context, email, username, password string) (User, error) {
	if err := s.validator.ValidateRegister(email, username, password); err != nil {
		s.log.Debug("validation failed", "email", email, "error", err)
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.ensureUsernameFree(ctx, email, username); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := User{
		Email:     email,
		Username:  username,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}

	s.log.Info("user registered", "email", email, "username", username)
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if err := s.validator.ValidateEmail(email); err != nil {
		return User{}, ErrInvalidAuth
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, ErrInvalidAuth
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	return user, nil
}

// ChangeUsername переносит локальные данные под новое имя и только после
// успешного переноса сохраняет имя в учетной записи. Смена только регистра
// букв ничего не делает.
func (s *Service) ChangeUsername(ctx context.Context, email, newUsername string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}

	if strings.EqualFold(u.Username, newUsername) {
		return u, nil
	}

	if err := s.validator.ValidateUsername(newUsername); err != nil {
		return User{}, &DomainError{Err: ErrInvalidInput, Message: err.Error(), Code: "invalid_username"}
	}

	if err := s.ensureUsernameFree(ctx, email, newUsername); err != nil {
		return User{}, err
	}

	oldUsername := u.Username
	if err := s.renamer.Rename(ctx, oldUsername, newUsername); err != nil {
		s.log.Error("failed to move local data", "from", oldUsername, "to", newUsername, "error", err)
		if errors.Is(err, tenant.ErrRenameConflict) {
			return User{}, &DomainError{
				Err:     err,
				Message: "data for this username already exists locally, choose another username",
				Code:    "username_conflict",
			}
		}
		return User{}, fmt.Errorf("move local data: %w", err)
	}

	u.Username = newUsername
	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		s.log.Error("failed to save new username, moving data back", "email", email, "error", err)
		if rbErr := s.renamer.Rename(ctx, newUsername, oldUsername); rbErr != nil {
			s.log.Error("failed to move data back", "from", newUsername, "to", oldUsername, "error", rbErr)
			return User{}, errors.Join(fmt.Errorf("save username: %w", err), rbErr)
		}
		return User{}, fmt.Errorf("save username: %w", err)
	}

	s.log.Info("username changed", "email", email, "from", oldUsername, "to", newUsername)
	return u, nil
}

func (s *Service) ensureUsernameFree(ctx context.Context, email, username string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.Email != email:
		return &DomainError{Err: ErrUsernameTaken, Message: "username is already taken", Code: "username_taken"}
	}
	return nil
}
