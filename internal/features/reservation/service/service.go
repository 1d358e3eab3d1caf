package service

import (
	"context"
	"errors"
	"time"

	"cantine-backend/internal/common/logger"
	menuservice "cantine-backend/internal/features/menu/service"
	"cantine-backend/internal/features/reservation/export"
	"cantine-backend/internal/features/reservation/models"
	"cantine-backend/internal/features/reservation/repository"
	userrepo "cantine-backend/internal/features/user/repository"

	"github.com/google/uuid"
)

var (
	ErrDishNotFound          = errors.New("dish not found")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrNotOwner              = errors.New("reservation belongs to another user")
	ErrNotAvailableForDinner = models.ErrNotAvailableForDinner
	ErrDinnerAlreadyBooked   = models.ErrDinnerAlreadyBooked
)

type ReservationService interface {
	Reserve(ctx context.Context, userID string, input *models.ReservationCreate) (*models.ReservationResponse, error)
	ListMine(ctx context.Context, userID string) ([]*models.Reservation, error)
	Cancel(ctx context.Context, userID, reservationID string) (*models.Reservation, error)

	ListAdmin(ctx context.Context, filter models.AdminFilter) ([]models.AdminRow, error)
	ExportAdmin(ctx context.Context, filter models.AdminFilter) (string, error)
}

type reservationService struct {
	repo       repository.ReservationRepository
	users      userrepo.UserRepository
	menu       menuservice.MenuService
	serializer export.RowSerializer
}

func NewReservationService(
	repo repository.ReservationRepository,
	users userrepo.UserRepository,
	menu menuservice.MenuService,
	serializer export.RowSerializer,
) ReservationService {
	return &reservationService{
		repo:       repo,
		users:      users,
		menu:       menu,
		serializer: serializer,
	}
}

func (s *reservationService) Reserve(ctx context.Context, userID string, input *models.ReservationCreate) (*models.ReservationResponse, error) {
	dish, err := s.menu.GetDish(ctx, input.DishID)
	if err != nil {
		if err == menuservice.ErrDishNotFound {
			return nil, ErrDishNotFound
		}
		return nil, err
	}

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	warning := dish.HasConflict(user.DietaryConstraints)

	// A second booking of the same dish is a no-op, not a new entity.
	if active := models.ActiveDinner(existing); active != nil && active.DishID == dish.ID {
		return &models.ReservationResponse{
			Reservation:     active,
			AllergenWarning: warning,
			AlreadyReserved: true,
		}, nil
	}

	if !models.CanReserve(dish, existing) {
		if !dish.AvailableForDinner {
			return nil, ErrNotAvailableForDinner
		}
		return nil, ErrDinnerAlreadyBooked
	}

	now := time.Now()
	reservation := &models.Reservation{
		ID:        uuid.New().String(),
		UserID:    userID,
		DishID:    dish.ID,
		Date:      now.Format("2006-01-02"),
		MealType:  models.MealTypeDinner,
		Status:    models.StatusConfirmed,
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	logger.Info().
		Str("reservation_id", reservation.ID).
		Str("user_id", userID).
		Str("dish_id", dish.ID).
		Bool("allergen_warning", warning).
		Msg("Dinner reservation created")

	// An allergen conflict never blocks: the user chose to reserve anyway.
	return &models.ReservationResponse{
		Reservation:     reservation,
		AllergenWarning: warning,
	}, nil
}

func (s *reservationService) ListMine(ctx context.Context, userID string) ([]*models.Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *reservationService) Cancel(ctx context.Context, userID, reservationID string) (*models.Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	if reservation.UserID != userID {
		return nil, ErrNotOwner
	}

	reservation.Status = models.StatusCancelled
	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	return reservation, nil
}

func (s *reservationService) ListAdmin(ctx context.Context, filter models.AdminFilter) ([]models.AdminRow, error) {
	reservations, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.AdminRow, 0, len(reservations))
	for _, r := range reservations {
		if filter.Date != "" && r.Date != filter.Date {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}

		row := models.AdminRow{
			ID:     r.ID,
			Date:   r.Date,
			Time:   r.CreatedAt.Format("15:04"),
			Status: r.Status,
		}

		if user, err := s.users.GetByID(ctx, r.UserID); err == nil {
			row.Client = user.Name
			row.Email = user.Email
			row.Phone = user.Phone
		}
		if dish, err := s.menu.GetDish(ctx, r.DishID); err == nil {
			row.Dish = dish.Name
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (s *reservationService) ExportAdmin(ctx context.Context, filter models.AdminFilter) (string, error) {
	rows, err := s.ListAdmin(ctx, filter)
	if err != nil {
		return "", err
	}

	return s.serializer.Serialize(export.Header, export.Rows(rows)), nil
}
