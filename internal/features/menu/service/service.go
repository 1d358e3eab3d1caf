package service

import (
	"context"
	"errors"
	"fmt"

	"cantine-backend/internal/common/logger"
	"cantine-backend/internal/features/menu/models"
	"cantine-backend/internal/features/menu/repository"

	"github.com/google/uuid"
)

var (
	ErrDishNotFound  = errors.New("dish not found")
	ErrMenuNotFound  = errors.New("weekly menu not found")
	ErrImageNotFound = errors.New("dish image not found")
)

type MenuService interface {
	GetWeeklyMenu(ctx context.Context) (*models.WeeklyMenu, error)
	GetDish(ctx context.Context, id string) (*models.Dish, error)
	GetQueueInfo(ctx context.Context) (*models.QueueInfo, error)

	CreateDish(ctx context.Context, input *models.DishCreate, date string) (*models.Dish, error)
	UpdateDish(ctx context.Context, id string, input *models.DishUpdate) (*models.Dish, error)
	DeleteDish(ctx context.Context, id string) error
	ListDishes(ctx context.Context) ([]models.Dish, error)

	UploadDishImage(ctx context.Context, dishID, contentType string, data []byte) error
	GetDishImage(ctx context.Context, dishID string) (contentType string, data []byte, err error)
}

type menuService struct {
	repo   repository.MenuRepository
	images repository.ImageStore
}

func NewMenuService(repo repository.MenuRepository, images repository.ImageStore) MenuService {
	return &menuService{
		repo:   repo,
		images: images,
	}
}

func (s *menuService) GetWeeklyMenu(ctx context.Context) (*models.WeeklyMenu, error) {
	record, err := s.repo.GetWeeklyMenu(ctx)
	if err != nil {
		if err == repository.ErrMenuNotFound {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}

	menu := &models.WeeklyMenu{
		Week:  record.Week,
		Menus: make([]models.DailyMenu, 0, len(record.Menus)),
	}
	for _, day := range record.Menus {
		volaille, err := s.repo.GetDishes(ctx, day.Volaille)
		if err != nil {
			return nil, err
		}
		viande, err := s.repo.GetDishes(ctx, day.Viande)
		if err != nil {
			return nil, err
		}
		poisson, err := s.repo.GetDishes(ctx, day.Poisson)
		if err != nil {
			return nil, err
		}
		menu.Menus = append(menu.Menus, models.DailyMenu{
			Date:     day.Date,
			Volaille: volaille,
			Viande:   viande,
			Poisson:  poisson,
		})
	}

	return menu, nil
}

func (s *menuService) GetDish(ctx context.Context, id string) (*models.Dish, error) {
	dish, err := s.repo.GetDish(ctx, id)
	if err != nil {
		if err == repository.ErrDishNotFound {
			return nil, ErrDishNotFound
		}
		return nil, err
	}
	return dish, nil
}

func (s *menuService) GetQueueInfo(ctx context.Context) (*models.QueueInfo, error) {
	return s.repo.GetQueueInfo(ctx)
}

func (s *menuService) CreateDish(ctx context.Context, input *models.DishCreate, date string) (*models.Dish, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	dish := &models.Dish{
		ID:                 uuid.New().String(),
		Name:               input.Name,
		Description:        input.Description,
		Price:              input.Price,
		Category:           input.Category,
		Allergens:          input.Allergens,
		Sourcing:           input.Sourcing,
		NutritionalInfo:    input.NutritionalInfo,
		AvailableForDinner: input.AvailableForDinner,
	}
	if dish.Allergens == nil {
		dish.Allergens = []string{}
	}

	if err := s.repo.CreateDish(ctx, dish); err != nil {
		return nil, err
	}

	// When a date is given, the dish also goes onto that day's stand.
	if date != "" {
		if err := s.attachToMenu(ctx, dish, date); err != nil {
			return nil, err
		}
	}

	logger.Info().Str("dish_id", dish.ID).Str("category", string(dish.Category)).Msg("Dish created")
	return dish, nil
}

func (s *menuService) attachToMenu(ctx context.Context, dish *models.Dish, date string) error {
	record, err := s.repo.GetWeeklyMenu(ctx)
	if err != nil {
		if err != repository.ErrMenuNotFound {
			return err
		}
		record = &models.WeeklyMenuRecord{Week: fmt.Sprintf("Semaine du %s", date)}
	}

	attached := false
	for i := range record.Menus {
		if record.Menus[i].Date == date {
			appendDishID(&record.Menus[i], dish)
			attached = true
			break
		}
	}
	if !attached {
		day := models.DailyMenuRecord{Date: date}
		appendDishID(&day, dish)
		record.Menus = append(record.Menus, day)
	}

	return s.repo.SetWeeklyMenu(ctx, record)
}

func appendDishID(day *models.DailyMenuRecord, dish *models.Dish) {
	switch dish.Category {
	case models.CategoryVolaille:
		day.Volaille = append(day.Volaille, dish.ID)
	case models.CategoryViande:
		day.Viande = append(day.Viande, dish.ID)
	case models.CategoryPoisson:
		day.Poisson = append(day.Poisson, dish.ID)
	}
}

func (s *menuService) UpdateDish(ctx context.Context, id string, input *models.DishUpdate) (*models.Dish, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	dish, err := s.repo.GetDish(ctx, id)
	if err != nil {
		if err == repository.ErrDishNotFound {
			return nil, ErrDishNotFound
		}
		return nil, err
	}

	dish.Name = input.Name
	dish.Description = input.Description
	dish.Price = input.Price
	dish.Category = input.Category
	dish.Allergens = input.Allergens
	dish.Sourcing = input.Sourcing
	dish.NutritionalInfo = input.NutritionalInfo
	dish.AvailableForDinner = input.AvailableForDinner
	if dish.Allergens == nil {
		dish.Allergens = []string{}
	}

	if err := s.repo.UpdateDish(ctx, dish); err != nil {
		return nil, err
	}

	return dish, nil
}

func (s *menuService) DeleteDish(ctx context.Context, id string) error {
	if _, err := s.repo.GetDish(ctx, id); err != nil {
		if err == repository.ErrDishNotFound {
			return ErrDishNotFound
		}
		return err
	}

	if err := s.repo.DeleteDish(ctx, id); err != nil {
		return err
	}

	// Drop the id from the weekly menu so it no longer renders.
	record, err := s.repo.GetWeeklyMenu(ctx)
	if err != nil {
		if err == repository.ErrMenuNotFound {
			return nil
		}
		return err
	}
	for i := range record.Menus {
		record.Menus[i].Volaille = removeID(record.Menus[i].Volaille, id)
		record.Menus[i].Viande = removeID(record.Menus[i].Viande, id)
		record.Menus[i].Poisson = removeID(record.Menus[i].Poisson, id)
	}
	return s.repo.SetWeeklyMenu(ctx, record)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (s *menuService) ListDishes(ctx context.Context) ([]models.Dish, error) {
	return s.repo.ListDishes(ctx)
}

func (s *menuService) UploadDishImage(ctx context.Context, dishID, contentType string, data []byte) error {
	dish, err := s.repo.GetDish(ctx, dishID)
	if err != nil {
		if err == repository.ErrDishNotFound {
			return ErrDishNotFound
		}
		return err
	}

	if err := s.images.Put(ctx, dishID, contentType, data); err != nil {
		return err
	}

	dish.ImageURL = fmt.Sprintf("/api/v1/menu/dishes/%s/image", dishID)
	return s.repo.UpdateDish(ctx, dish)
}

func (s *menuService) GetDishImage(ctx context.Context, dishID string) (string, []byte, error) {
	contentType, data, err := s.images.Get(ctx, dishID)
	if err != nil {
		if err == repository.ErrImageNotFound {
			return "", nil, ErrImageNotFound
		}
		return "", nil, err
	}
	return contentType, data, nil
}
