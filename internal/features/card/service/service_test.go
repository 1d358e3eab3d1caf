package service

import (
	"context"
	"testing"

	cardmodels "cantine-backend/internal/features/card/models"
	"cantine-backend/internal/features/card/repository"
	menumodels "cantine-backend/internal/features/menu/models"
	menuservice "cantine-backend/internal/features/menu/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCardRepository struct {
	logs   map[string][]cardmodels.Transaction
	locked map[string]bool
}

func newFakeCardRepository() *fakeCardRepository {
	return &fakeCardRepository{
		logs:   make(map[string][]cardmodels.Transaction),
		locked: make(map[string]bool),
	}
}

func (r *fakeCardRepository) Prepend(_ context.Context, userID string, tx *cardmodels.Transaction) error {
	r.logs[userID] = append([]cardmodels.Transaction{*tx}, r.logs[userID]...)
	return nil
}

func (r *fakeCardRepository) List(_ context.Context, userID string) ([]cardmodels.Transaction, error) {
	return r.logs[userID], nil
}

func (r *fakeCardRepository) AcquireRechargeLock(_ context.Context, userID string) error {
	if r.locked[userID] {
		return repository.ErrRechargeInProgress
	}
	r.locked[userID] = true
	return nil
}

func (r *fakeCardRepository) ReleaseRechargeLock(_ context.Context, userID string) error {
	r.locked[userID] = false
	return nil
}

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

func newTestService(repo repository.CardRepository, menu menuservice.MenuService) CardService {
	return NewCardService(repo, menu, 0)
}

func TestRecharge(t *testing.T) {
	repo := newFakeCardRepository()
	svc := newTestService(repo, &fakeMenuService{})

	input := &cardmodels.RechargeInput{
		CardNumber: "5555 5555 5555 4444",
		CardHolder: "Marie Dupont",
		Expiry:     "12/30",
		CVV:        "123",
		Amount:     20,
	}

	result, err := svc.Recharge(context.Background(), "user-1", input)
	require.NoError(t, err)

	assert.Equal(t, cardmodels.TransactionRecharge, result.Transaction.Type)
	assert.Equal(t, 20.0, result.Transaction.Amount)
	assert.Equal(t, "Rechargement carte via ****4444", result.Transaction.Description)
	assert.NotEmpty(t, result.Transaction.ID)
	assert.Equal(t, 20.0, result.Balance)

	require.Len(t, repo.logs["user-1"], 1)
	assert.False(t, repo.locked["user-1"], "lock must be released after the recharge")
}

func TestRechargeInvalidInputWritesNothing(t *testing.T) {
	repo := newFakeCardRepository()
	svc := newTestService(repo, &fakeMenuService{})

	input := &cardmodels.RechargeInput{
		CardNumber: "1234",
		Expiry:     "12/30",
		CVV:        "123",
		Amount:     20,
	}

	_, err := svc.Recharge(context.Background(), "user-1", input)
	require.ErrorIs(t, err, cardmodels.ErrInvalidCardNumber)
	assert.Empty(t, repo.logs["user-1"])
}

func TestRechargeInProgress(t *testing.T) {
	repo := newFakeCardRepository()
	repo.locked["user-1"] = true
	svc := newTestService(repo, &fakeMenuService{})

	input := &cardmodels.RechargeInput{
		CardNumber: "5555 5555 5555 4444",
		Expiry:     "12/30",
		CVV:        "123",
		Amount:     20,
	}

	_, err := svc.Recharge(context.Background(), "user-1", input)
	require.ErrorIs(t, err, ErrRechargeInProgress)
	assert.Empty(t, repo.logs["user-1"])
}

func TestGetCardDerivesBalance(t *testing.T) {
	repo := newFakeCardRepository()
	ctx := context.Background()
	repo.Prepend(ctx, "user-1", &cardmodels.Transaction{ID: "a", Type: cardmodels.TransactionRecharge, Amount: 50})
	repo.Prepend(ctx, "user-1", &cardmodels.Transaction{ID: "b", Type: cardmodels.TransactionPayment, Amount: -4.20})

	svc := newTestService(repo, &fakeMenuService{})

	card, err := svc.GetCard(ctx, "user-1")
	require.NoError(t, err)
	assert.InDelta(t, 45.80, card.Balance, 1e-9)
	require.Len(t, card.Transactions, 2)
	assert.Equal(t, "b", card.Transactions[0].ID, "history is most recent first")
}

func TestPay(t *testing.T) {
	repo := newFakeCardRepository()
	ctx := context.Background()
	repo.Prepend(ctx, "user-1", &cardmodels.Transaction{ID: "a", Type: cardmodels.TransactionRecharge, Amount: 10})

	menu := &fakeMenuService{dishes: map[string]*menumodels.Dish{
		"dish-1": {ID: "dish-1", Name: "Saumon grillé au citron", Price: 4.20},
	}}
	svc := newTestService(repo, menu)

	result, err := svc.Pay(ctx, "user-1", &cardmodels.PaymentInput{DishID: "dish-1"})
	require.NoError(t, err)

	assert.Equal(t, cardmodels.TransactionPayment, result.Transaction.Type)
	assert.Equal(t, -4.20, result.Transaction.Amount)
	assert.Equal(t, "Saumon grillé au citron", result.Transaction.Description)
	assert.InDelta(t, 5.80, result.Balance, 1e-9)
}

func TestPayInsufficientBalance(t *testing.T) {
	repo := newFakeCardRepository()
	menu := &fakeMenuService{dishes: map[string]*menumodels.Dish{
		"dish-1": {ID: "dish-1", Name: "Saumon grillé au citron", Price: 4.20},
	}}
	svc := newTestService(repo, menu)

	_, err := svc.Pay(context.Background(), "user-1", &cardmodels.PaymentInput{DishID: "dish-1"})
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Empty(t, repo.logs["user-1"])
}

func TestPayUnknownDish(t *testing.T) {
	svc := newTestService(newFakeCardRepository(), &fakeMenuService{})

	_, err := svc.Pay(context.Background(), "user-1", &cardmodels.PaymentInput{DishID: "missing"})
	require.ErrorIs(t, err, ErrDishNotFound)
}
