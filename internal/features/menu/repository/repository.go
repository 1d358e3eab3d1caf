package repository

import (
	"context"
	"errors"

	"cantine-backend/internal/features/menu/models"
)

var (
	ErrDishNotFound  = errors.New("dish not found")
	ErrMenuNotFound  = errors.New("weekly menu not found")
	ErrImageNotFound = errors.New("dish image not found")
)

type MenuRepository interface {
	CreateDish(ctx context.Context, dish *models.Dish) error
	GetDish(ctx context.Context, id string) (*models.Dish, error)
	GetDishes(ctx context.Context, ids []string) ([]models.Dish, error)
	UpdateDish(ctx context.Context, dish *models.Dish) error
	DeleteDish(ctx context.Context, id string) error
	ListDishes(ctx context.Context) ([]models.Dish, error)

	SetWeeklyMenu(ctx context.Context, menu *models.WeeklyMenuRecord) error
	GetWeeklyMenu(ctx context.Context) (*models.WeeklyMenuRecord, error)

	SetQueueInfo(ctx context.Context, info *models.QueueInfo) error
	GetQueueInfo(ctx context.Context) (*models.QueueInfo, error)
}

// ImageStore associates an uploaded image byte stream with a dish.
type ImageStore interface {
	Put(ctx context.Context, dishID, contentType string, data []byte) error
	Get(ctx context.Context, dishID string) (contentType string, data []byte, err error)
	Delete(ctx context.Context, dishID string) error
}
