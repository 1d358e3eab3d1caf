package repository

import (
	"context"
	"errors"

	"cantine-backend/internal/features/reservation/models"
)

var ErrReservationNotFound = errors.New("reservation not found")

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	Update(ctx context.Context, reservation *models.Reservation) error
	ListByUser(ctx context.Context, userID string) ([]*models.Reservation, error)
	ListAll(ctx context.Context) ([]*models.Reservation, error)
}
