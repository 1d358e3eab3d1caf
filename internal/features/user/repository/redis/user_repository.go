package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cantine-backend/internal/features/user/models"
	"cantine-backend/internal/features/user/repository"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefixUser      = "user:"
	keyPrefixUserEmail = "user:email:"
)

type userRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) repository.UserRepository {
	return &userRepository{
		client: client,
	}
}

func makeUserKey(id string) string {
	return keyPrefixUser + id
}

func makeEmailKey(email string) string {
	return keyPrefixUserEmail + strings.ToLower(email)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeUserKey(user.ID), userJSON, 0)
	pipe.Set(ctx, makeEmailKey(user.Email), user.ID, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	userJSON, err := r.client.Get(ctx, makeUserKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	id, err := r.client.Get(ctx, makeEmailKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, makeUserKey(user.ID), userJSON, 0).Err()
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, makeUserKey(id))
	pipe.Del(ctx, makeEmailKey(user.Email))
	_, err = pipe.Exec(ctx)
	return err
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	iter := r.client.Scan(ctx, 0, fmt.Sprintf("%s*", keyPrefixUser), 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, keyPrefixUserEmail) {
			continue
		}

		userJSON, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}

		var user models.User
		if err := json.Unmarshal(userJSON, &user); err != nil {
			continue
		}

		users = append(users, &user)
	}

	return users, iter.Err()
}
