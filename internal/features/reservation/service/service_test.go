package service

import (
	"context"
	"strings"
	"testing"
	"time"

	menumodels "cantine-backend/internal/features/menu/models"
	menuservice "cantine-backend/internal/features/menu/service"
	"cantine-backend/internal/features/reservation/export"
	"cantine-backend/internal/features/reservation/models"
	"cantine-backend/internal/features/reservation/repository"
	usermodels "cantine-backend/internal/features/user/models"
	userrepo "cantine-backend/internal/features/user/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReservationRepository struct {
	byID map[string]*models.Reservation
}

func newFakeReservationRepository() *fakeReservationRepository {
	return &fakeReservationRepository{byID: make(map[string]*models.Reservation)}
}

func (r *fakeReservationRepository) Create(_ context.Context, reservation *models.Reservation) error {
	r.byID[reservation.ID] = reservation
	return nil
}

func (r *fakeReservationRepository) GetByID(_ context.Context, id string) (*models.Reservation, error) {
	reservation, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return reservation, nil
}

func (r *fakeReservationRepository) Update(_ context.Context, reservation *models.Reservation) error {
	r.byID[reservation.ID] = reservation
	return nil
}

func (r *fakeReservationRepository) ListByUser(_ context.Context, userID string) ([]*models.Reservation, error) {
	var out []*models.Reservation
	for _, reservation := range r.byID {
		if reservation.UserID == userID {
			out = append(out, reservation)
		}
	}
	return out, nil
}

func (r *fakeReservationRepository) ListAll(context.Context) ([]*models.Reservation, error) {
	var out []*models.Reservation
	for _, reservation := range r.byID {
		out = append(out, reservation)
	}
	return out, nil
}

type fakeUserRepository struct {
	byID map[string]*usermodels.User
}

func (r *fakeUserRepository) Create(_ context.Context, user *usermodels.User) error {
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id string) (*usermodels.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, userrepo.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) GetByEmail(context.Context, string) (*usermodels.User, error) {
	return nil, userrepo.ErrUserNotFound
}

func (r *fakeUserRepository) Update(_ context.Context, user *usermodels.User) error {
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepository) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepository) List(context.Context) ([]*usermodels.User, error) { return nil, nil }

type fakeMenuService struct {
	dishes map[string]*menumodels.Dish
}

func (s *fakeMenuService) GetDish(_ context.Context, id string) (*menumodels.Dish, error) {
	dish, ok := s.dishes[id]
	if !ok {
		return nil, menuservice.ErrDishNotFound
	}
	return dish, nil
}

func (s *fakeMenuService) GetWeeklyMenu(context.Context) (*menumodels.WeeklyMenu, error) {
	return nil, nil
}

func (s *fakeMenuService) GetQueueInfo(context.Context) (*menumodels.QueueInfo, error) {
	return nil, nil
}

func (s *fakeMenuService) CreateDish(context.Context, *menumodels.DishCreate, string) (*menumodels.Dish, error) {
	return nil, nil
}

func (s *fakeMenuService) UpdateDish(context.Context, string, *menumodels.DishUpdate) (*menumodels.Dish, error) {
	return nil, nil
}

func (s *fakeMenuService) DeleteDish(context.Context, string) error { return nil }

func (s *fakeMenuService) ListDishes(context.Context) ([]menumodels.Dish, error) { return nil, nil }

func (s *fakeMenuService) UploadDishImage(context.Context, string, string, []byte) error { return nil }

func (s *fakeMenuService) GetDishImage(context.Context, string) (string, []byte, error) {
	return "", nil, nil
}

func newTestService() (ReservationService, *fakeReservationRepository, *fakeUserRepository, *fakeMenuService) {
	repo := newFakeReservationRepository()
	users := &fakeUserRepository{byID: map[string]*usermodels.User{
		"user-1": {
			ID:                 "user-1",
			Name:               "Marie Dupont",
			Email:              "marie.dupont@mines-albi.fr",
			Phone:              "+33 6 12 34 56 78",
			DietaryConstraints: []string{"gluten", "poisson"},
		},
	}}
	menu := &fakeMenuService{dishes: map[string]*menumodels.Dish{
		"dish-1": {
			ID:                 "dish-1",
			Name:               "Poulet aux herbes de Provence",
			Allergens:          []string{"lactose"},
			AvailableForDinner: true,
		},
		"dish-2": {
			ID:                 "dish-2",
			Name:               "Escalope de dinde panée",
			Allergens:          []string{"gluten"},
			AvailableForDinner: false,
		},
		"dish-4": {
			ID:                 "dish-4",
			Name:               "Saumon grillé au citron",
			Allergens:          []string{"poisson"},
			AvailableForDinner: true,
		},
	}}
	return NewReservationService(repo, users, menu, export.CommaSerializer{}), repo, users, menu
}

func TestReserve(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Reserve(ctx, "user-1", &models.ReservationCreate{DishID: "dish-1"})
	require.NoError(t, err)

	assert.False(t, resp.AlreadyReserved)
	assert.False(t, resp.AllergenWarning)
	assert.Equal(t, models.MealTypeDinner, resp.Reservation.MealType)
	assert.Equal(t, models.StatusConfirmed, resp.Reservation.Status)
	assert.Equal(t, "dish-1", resp.Reservation.DishID)
	assert.Len(t, repo.byID, 1)
}

func TestReserveWithAllergenWarning(t *testing.T) {
	svc, _, _, _ := newTestService()

	// Saumon carries "poisson", which is among the user's constraints. The
	// reservation still goes through; the conflict is only flagged.
	resp, err := svc.Reserve(context.Background(), "user-1", &models.ReservationCreate{DishID: "dish-4"})
	require.NoError(t, err)
	assert.True(t, resp.AllergenWarning)
	assert.Equal(t, models.StatusConfirmed, resp.Reservation.Status)
}

func TestReserveSameDishTwice(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Reserve(ctx, "user-1", &models.ReservationCreate{DishID: "dish-1"})
	require.NoError(t, err)

	second, err := svc.Reserve(ctx, "user-1", &models.ReservationCreate{DishID: "dish-1"})
	require.NoError(t, err)

	assert.True(t, second.AlreadyReserved)
	assert.Equal(t, first.Reservation.ID, second.Reservation.ID)
	assert.Len(t, repo.byID, 1, "re-reserving must not create a second entity")
}

func TestReserveSecondDishRejected(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "user-1", &models.ReservationCreate{DishID: "dish-1"})
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, "user-1", &models.ReservationCreate{DishID: "dish-4"})
	require.ErrorIs(t, err, ErrDinnerAlreadyBooked)
}

func TestReserveNotAvailableForDinner(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Reserve(context.Background(), "user-1", &models.ReservationCreate{DishID: "dish-2"})
	require.ErrorIs(t, err, ErrNotAvailableForDinner)
}

func TestReserveUnknownDish(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Reserve(context.Background(), "user-1", &models.ReservationCreate{DishID: "missing"})
	require.ErrorIs(t, err, ErrDishNotFound)
}

func TestReserveAgainAfterCancel(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Reserve(ctx, "user-1", &models.ReservationCreate{DishID: "dish-1"})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, "user-1", first.Reservation.ID)
	require.NoError(t, err)

	resp, err := svc.Reserve(ctx, "user-1", &models.ReservationCreate{DishID: "dish-4"})
	require.NoError(t, err)
	assert.False(t, resp.AlreadyReserved)
}

func TestCancelNotOwner(t *testing.T) {
	svc, repo, users, _ := newTestService()
	ctx := context.Background()
	users.byID["user-2"] = &usermodels.User{ID: "user-2", Name: "Autre"}

	first, err := svc.Reserve(ctx, "user-1", &models.ReservationCreate{DishID: "dish-1"})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, "user-2", first.Reservation.ID)
	require.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, models.StatusConfirmed, repo.byID[first.Reservation.ID].Status)
}

func TestCancelUnknownReservation(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Cancel(context.Background(), "user-1", "missing")
	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestListAdmin(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	created := time.Date(2025, time.January, 12, 14, 30, 0, 0, time.UTC)
	repo.byID["r1"] = &models.Reservation{
		ID:        "r1",
		UserID:    "user-1",
		DishID:    "dish-1",
		Date:      "2025-01-13",
		MealType:  models.MealTypeDinner,
		Status:    models.StatusConfirmed,
		CreatedAt: created,
	}
	repo.byID["r2"] = &models.Reservation{
		ID:       "r2",
		UserID:   "user-1",
		DishID:   "dish-4",
		Date:     "2025-01-14",
		MealType: models.MealTypeDinner,
		Status:   models.StatusCancelled,
	}

	rows, err := svc.ListAdmin(ctx, models.AdminFilter{Date: "2025-01-13"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Marie Dupont", row.Client)
	assert.Equal(t, "marie.dupont@mines-albi.fr", row.Email)
	assert.Equal(t, "+33 6 12 34 56 78", row.Phone)
	assert.Equal(t, "Poulet aux herbes de Provence", row.Dish)
	assert.Equal(t, "14:30", row.Time)
	assert.Equal(t, models.StatusConfirmed, row.Status)

	rows, err = svc.ListAdmin(ctx, models.AdminFilter{Status: models.StatusCancelled})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "r2", rows[0].ID)
}

func TestExportAdmin(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.byID["r1"] = &models.Reservation{
		ID:        "r1",
		UserID:    "user-1",
		DishID:    "dish-1",
		Date:      "2025-01-13",
		MealType:  models.MealTypeDinner,
		Status:    models.StatusConfirmed,
		CreatedAt: time.Date(2025, time.January, 12, 14, 30, 0, 0, time.UTC),
	}

	out, err := svc.ExportAdmin(context.Background(), models.AdminFilter{})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Client,Email,Phone,Dish,Date,Time,Status", lines[0])
	assert.Equal(t, "Marie Dupont,marie.dupont@mines-albi.fr,+33 6 12 34 56 78,Poulet aux herbes de Provence,2025-01-13,14:30,confirmed", lines[1])
}
