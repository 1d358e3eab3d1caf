package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"cantine-backend/internal/features/reservation/models"
	"cantine-backend/internal/features/reservation/repository"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefixReservation = "reservation:"
	keyPrefixUserIndex   = "reservations:user:"
	keyAllReservations   = "reservations:all"
)

type reservationRepository struct {
	client *redis.Client
}

func NewReservationRepository(client *redis.Client) repository.ReservationRepository {
	return &reservationRepository{client: client}
}

func makeReservationKey(id string) string {
	return keyPrefixReservation + id
}

func makeUserIndexKey(userID string) string {
	return keyPrefixUserIndex + userID
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	data, err := json.Marshal(reservation)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeReservationKey(reservation.ID), data, 0)
	pipe.SAdd(ctx, makeUserIndexKey(reservation.UserID), reservation.ID)
	pipe.SAdd(ctx, keyAllReservations, reservation.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	data, err := r.client.Get(ctx, makeReservationKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrReservationNotFound
		}
		return nil, err
	}

	var reservation models.Reservation
	if err := json.Unmarshal(data, &reservation); err != nil {
		return nil, err
	}

	return &reservation, nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	data, err := json.Marshal(reservation)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation: %w", err)
	}
	return r.client.Set(ctx, makeReservationKey(reservation.ID), data, 0).Err()
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Reservation, error) {
	ids, err := r.client.SMembers(ctx, makeUserIndexKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	return r.getMany(ctx, ids)
}

func (r *reservationRepository) ListAll(ctx context.Context) ([]*models.Reservation, error) {
	ids, err := r.client.SMembers(ctx, keyAllReservations).Result()
	if err != nil {
		return nil, err
	}
	return r.getMany(ctx, ids)
}

func (r *reservationRepository) getMany(ctx context.Context, ids []string) ([]*models.Reservation, error) {
	reservations := make([]*models.Reservation, 0, len(ids))
	for _, id := range ids {
		reservation, err := r.GetByID(ctx, id)
		if err != nil {
			if err == repository.ErrReservationNotFound {
				continue
			}
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	// Set members come back unordered; newest first is what every caller wants.
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})

	return reservations, nil
}
