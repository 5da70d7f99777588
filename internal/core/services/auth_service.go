package services

import (
	"context"
	"errors"
	"log"

	"loandesk/internal/adapters/persistence/models"
	"loandesk/internal/adapters/persistence/repositories"
	"loandesk/internal/config"
	"loandesk/internal/core/domain"
	"loandesk/internal/pkg/jwt"
	"loandesk/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles registration, login and token issuance
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string
	Password string
}

// LoginInput represents login input
type LoginInput struct {
	Username string
	Password string
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Register registers a new user and mints a session token for it.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}
	if exists {
		return nil, domain.NewDuplicateUser()
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: input.Username,
		Password: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.TokenMinutes)
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	log.Printf("User registered: %s", user.Username)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// Login authenticates a user. Unknown username and wrong password return
// the same error so usernames cannot be enumerated. Every login mints a
// fresh token; previously issued tokens stay valid until they expire.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewInvalidCredentials()
		}
		return nil, domain.NewPersistenceError(err)
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.NewInvalidCredentials()
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.TokenMinutes)
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	log.Printf("User logged in: %s", user.Username)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}
