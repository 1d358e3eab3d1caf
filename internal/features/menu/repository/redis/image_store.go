package redis

import (
	"context"

	"cantine-backend/internal/features/menu/repository"

	"github.com/redis/go-redis/v9"
)

type imageStore struct {
	client *redis.Client
}

// NewImageStore keeps uploaded dish photos in Redis. Payloads are small
// (admin-uploaded thumbnails); an object store would replace this at scale.
func NewImageStore(client *redis.Client) repository.ImageStore {
	return &imageStore{client: client}
}

func makeImageKey(dishID string) string {
	return keyPrefixDishImage + dishID
}

func makeImageTypeKey(dishID string) string {
	return keyPrefixDishImage + dishID + ":type"
}

func (s *imageStore) Put(ctx context.Context, dishID, contentType string, data []byte) error {
	pipe := s.client.Pipeline()
	pipe.Set(ctx, makeImageKey(dishID), data, 0)
	pipe.Set(ctx, makeImageTypeKey(dishID), contentType, 0)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *imageStore) Get(ctx context.Context, dishID string) (string, []byte, error) {
	data, err := s.client.Get(ctx, makeImageKey(dishID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return "", nil, repository.ErrImageNotFound
		}
		return "", nil, err
	}

	contentType, err := s.client.Get(ctx, makeImageTypeKey(dishID)).Result()
	if err != nil && err != redis.Nil {
		return "", nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return contentType, data, nil
}

func (s *imageStore) Delete(ctx context.Context, dishID string) error {
	return s.client.Del(ctx, makeImageKey(dishID), makeImageTypeKey(dishID)).Err()
}
