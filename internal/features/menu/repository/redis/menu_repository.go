package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"cantine-backend/internal/features/menu/models"
	"cantine-backend/internal/features/menu/repository"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefixDish      = "dish:"
	keyPrefixDishImage = "dish:image:"
	keyDishIndex       = "dishes:all"
	keyWeeklyMenu      = "menu:week"
	keyQueueInfo       = "menu:queues"
)

type menuRepository struct {
	client *redis.Client
}

func NewMenuRepository(client *redis.Client) repository.MenuRepository {
	return &menuRepository{client: client}
}

func makeDishKey(id string) string {
	return keyPrefixDish + id
}

func (r *menuRepository) CreateDish(ctx context.Context, dish *models.Dish) error {
	data, err := json.Marshal(dish)
	if err != nil {
		return fmt.Errorf("failed to marshal dish: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeDishKey(dish.ID), data, 0)
	pipe.SAdd(ctx, keyDishIndex, dish.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *menuRepository) GetDish(ctx context.Context, id string) (*models.Dish, error) {
	data, err := r.client.Get(ctx, makeDishKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrDishNotFound
		}
		return nil, err
	}

	var dish models.Dish
	if err := json.Unmarshal(data, &dish); err != nil {
		return nil, err
	}

	return &dish, nil
}

func (r *menuRepository) GetDishes(ctx context.Context, ids []string) ([]models.Dish, error) {
	dishes := make([]models.Dish, 0, len(ids))
	for _, id := range ids {
		dish, err := r.GetDish(ctx, id)
		if err != nil {
			if err == repository.ErrDishNotFound {
				// Deleted dishes silently drop out of menus.
				continue
			}
			return nil, err
		}
		dishes = append(dishes, *dish)
	}
	return dishes, nil
}

func (r *menuRepository) UpdateDish(ctx context.Context, dish *models.Dish) error {
	exists, err := r.client.SIsMember(ctx, keyDishIndex, dish.ID).Result()
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrDishNotFound
	}

	data, err := json.Marshal(dish)
	if err != nil {
		return fmt.Errorf("failed to marshal dish: %w", err)
	}
	return r.client.Set(ctx, makeDishKey(dish.ID), data, 0).Err()
}

func (r *menuRepository) DeleteDish(ctx context.Context, id string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, makeDishKey(id))
	pipe.Del(ctx, keyPrefixDishImage+id)
	pipe.SRem(ctx, keyDishIndex, id)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *menuRepository) ListDishes(ctx context.Context) ([]models.Dish, error) {
	ids, err := r.client.SMembers(ctx, keyDishIndex).Result()
	if err != nil {
		return nil, err
	}
	return r.GetDishes(ctx, ids)
}

func (r *menuRepository) SetWeeklyMenu(ctx context.Context, menu *models.WeeklyMenuRecord) error {
	data, err := json.Marshal(menu)
	if err != nil {
		return fmt.Errorf("failed to marshal weekly menu: %w", err)
	}
	return r.client.Set(ctx, keyWeeklyMenu, data, 0).Err()
}

func (r *menuRepository) GetWeeklyMenu(ctx context.Context) (*models.WeeklyMenuRecord, error) {
	data, err := r.client.Get(ctx, keyWeeklyMenu).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrMenuNotFound
		}
		return nil, err
	}

	var menu models.WeeklyMenuRecord
	if err := json.Unmarshal(data, &menu); err != nil {
		return nil, err
	}

	return &menu, nil
}

func (r *menuRepository) SetQueueInfo(ctx context.Context, info *models.QueueInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal queue info: %w", err)
	}
	return r.client.Set(ctx, keyQueueInfo, data, 0).Err()
}

func (r *menuRepository) GetQueueInfo(ctx context.Context) (*models.QueueInfo, error) {
	data, err := r.client.Get(ctx, keyQueueInfo).Bytes()
	if err != nil {
		if err == redis.Nil {
			// No collector has published yet; show empty queues.
			return &models.QueueInfo{}, nil
		}
		return nil, err
	}

	var info models.QueueInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}

	return &info, nil
}
