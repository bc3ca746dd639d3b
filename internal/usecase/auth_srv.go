package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSessionExpiry = 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error

	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
	StartSession(ctx context.Context, userID uuid.UUID, name string) (*entity.Session, error)
}

type authService struct {
	repo   *repository.Repository // user + session
	expiry time.Duration
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	expiry := defaultSessionExpiry
	if config != nil && config.Session.ExpiryHours > 0 {
		expiry = time.Duration(config.Session.ExpiryHours) * time.Hour
	}

	return &authService{
		repo:   repo,
		expiry: expiry,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and signs the new user in.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	email := normalizeEmail(req.Email)

	existingUser, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: s.now(),
		},
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	session, err := s.StartSession(ctx, user.ID, user.Name)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	session, err := s.StartSession(ctx, user.ID, user.Name)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// Authenticate resolves credentials to a user. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		s.log.Warn("User not found for login")
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// StartSession binds a fresh opaque token to the user.
func (s *authService) StartSession(ctx context.Context, userID uuid.UUID, name string) (*entity.Session, error) {
	now := s.now()
	session := &entity.Session{
		Token:     utils.GenerateSessionToken(),
		UserID:    userID,
		UserName:  name,
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("start session: %w", err)
	}

	return session, nil
}

// Logout ends the session behind token. Ending an unknown session succeeds.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}
