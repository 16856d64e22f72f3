package services

import (
	"context"
	"strings"
	"time"

	"github.com/lcharvet/flashlingo/internal/auth"
	"github.com/lcharvet/flashlingo/internal/errors"
	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
)

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginInput is the payload for password authentication.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService handles account creation, login and profile management
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, string, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenIssuer
	bcryptCost int
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenIssuer, bcryptCost int) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, bcryptCost: bcryptCost}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("registering user: username=%s", input.Username)

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, errors.NewValidationError("email", "must be a valid email address")
	}
	if len(input.Username) < 3 {
		return nil, errors.NewValidationError("username", "must be at least 3 characters")
	}
	if len(input.Password) < 8 {
		return nil, errors.NewValidationError("password", "must be at least 8 characters")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, input.Email); err != nil {
		return nil, errors.NewInternalError(err)
	} else if existing != nil {
		return nil, errors.NewConflictError("email already registered")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, input.Username); err != nil {
		return nil, errors.NewInternalError(err)
	} else if existing != nil {
		return nil, errors.NewConflictError("username already taken")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, errors.NewInternalError(err)
	}

	id, err := s.userRepo.Insert(ctx, models.User{
		Email:          input.Email,
		Username:       input.Username,
		HashedPassword: hash,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		IsActive:       true,
	})
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("user registered: id=%d, username=%s", id, user.Username)
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	log := logger.FromContext(ctx)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	log.Debug("login attempt: email=%s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.NewInternalError(err)
	}
	if user == nil || !auth.VerifyPassword(input.Password, user.HashedPassword) {
		// Same response for unknown email and bad password
		log.Debug("login rejected: email=%s", email)
		return nil, "", errors.NewUnauthorizedError("invalid email or password")
	}
	if !user.IsActive {
		return nil, "", errors.NewUnauthorizedError("account is disabled")
	}

	now := time.Now().UTC()
	token, err := s.tokens.Issue(user.ID, now)
	if err != nil {
		log.Error("failed to issue token: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Warn("failed to update last login: %v", err)
	}
	user.LastLogin = &now

	log.Info("user logged in: id=%d", user.ID)
	return user, token, nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating profile: user_id=%d", id)

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}

	if err := s.userRepo.UpdateProfile(ctx, id, upd); err != nil {
		log.Error("failed to update profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.userRepo.Get(ctx, id)
}
