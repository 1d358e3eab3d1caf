package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"cantine-backend/internal/features/user/models"
	"cantine-backend/internal/features/user/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	GetUser(ctx context.Context, id string) (*models.UserResponse, error)
	UpdateDietaryConstraints(ctx context.Context, id string, constraints []string) (*models.UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{
		repo: repo,
	}
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return toUserResponse(user), nil
}

func (s *userService) UpdateDietaryConstraints(ctx context.Context, id string, constraints []string) (*models.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.DietaryConstraints = normalizeConstraints(constraints)
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

// normalizeConstraints trims, lowercases and de-duplicates the labels while
// keeping their submission order.
func normalizeConstraints(constraints []string) []string {
	seen := make(map[string]struct{}, len(constraints))
	out := make([]string, 0, len(constraints))
	for _, c := range constraints {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func toUserResponse(user *models.User) *models.UserResponse {
	constraints := user.DietaryConstraints
	if constraints == nil {
		constraints = []string{}
	}
	return &models.UserResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		EmailVerified:      user.EmailVerified,
		IsAdmin:            user.IsAdmin,
		Phone:              user.Phone,
		DietaryConstraints: constraints,
		CreatedAt:          user.CreatedAt,
	}
}
