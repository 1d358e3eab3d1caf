package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"cantine-backend/internal/common/logger"
	"cantine-backend/internal/common/token"
	"cantine-backend/internal/features/auth/models"
	usermodels "cantine-backend/internal/features/user/models"
	userrepo "cantine-backend/internal/features/user/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService interface {
	Register(ctx context.Context, input *models.RegisterInput) (*models.AuthResponse, error)
	Login(ctx context.Context, input *models.LoginInput) (*models.AuthResponse, error)
}

type authService struct {
	users  userrepo.UserRepository
	tokens *token.Manager
}

func NewAuthService(users userrepo.UserRepository, tokens *token.Manager) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
	}
}

func (s *authService) Register(ctx context.Context, input *models.RegisterInput) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &usermodels.User{
		ID:                 uuid.New().String(),
		Name:               input.Name,
		Email:              email,
		EmailVerified:      false,
		IsAdmin:            false,
		PasswordHash:       string(hash),
		DietaryConstraints: []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("user_id", user.ID).Msg("Account registered")

	return s.respond(user)
}

func (s *authService) Login(ctx context.Context, input *models.LoginInput) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.respond(user)
}

func (s *authService) respond(user *usermodels.User) (*models.AuthResponse, error) {
	signed, err := s.tokens.Generate(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	constraints := user.DietaryConstraints
	if constraints == nil {
		constraints = []string{}
	}

	return &models.AuthResponse{
		Token: signed,
		User: &usermodels.UserResponse{
			ID:                 user.ID,
			Name:               user.Name,
			Email:              user.Email,
			EmailVerified:      user.EmailVerified,
			IsAdmin:            user.IsAdmin,
			Phone:              user.Phone,
			DietaryConstraints: constraints,
			CreatedAt:          user.CreatedAt,
		},
	}, nil
}
