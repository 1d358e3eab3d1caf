package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cantine-backend/internal/common/logger"
	"cantine-backend/internal/features/card/models"
	"cantine-backend/internal/features/card/repository"
	menuservice "cantine-backend/internal/features/menu/service"

	"github.com/google/uuid"
)

var (
	ErrRechargeInProgress  = repository.ErrRechargeInProgress
	ErrInsufficientBalance = errors.New("card balance does not cover the dish price")
	ErrDishNotFound        = errors.New("dish not found")
)

type CardService interface {
	GetCard(ctx context.Context, userID string) (*models.CardResponse, error)
	Recharge(ctx context.Context, userID string, input *models.RechargeInput) (*models.TransactionResult, error)
	Pay(ctx context.Context, userID string, input *models.PaymentInput) (*models.TransactionResult, error)
}

type cardService struct {
	repo  repository.CardRepository
	menu  menuservice.MenuService
	delay time.Duration
}

// NewCardService builds the meal-card service. delay is the simulated
// payment-processing latency applied to successful recharges.
func NewCardService(repo repository.CardRepository, menu menuservice.MenuService, delay time.Duration) CardService {
	return &cardService{
		repo:  repo,
		menu:  menu,
		delay: delay,
	}
}

func (s *cardService) GetCard(ctx context.Context, userID string) (*models.CardResponse, error) {
	transactions, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.CardResponse{
		Balance:      balanceOf(transactions),
		Transactions: transactions,
	}, nil
}

// balanceOf derives the card balance as the signed sum of the log. The
// balance is never stored, so it cannot drift from the history.
func balanceOf(transactions []models.Transaction) float64 {
	var sum float64
	for _, tx := range transactions {
		sum += tx.Amount
	}
	return sum
}

func (s *cardService) Recharge(ctx context.Context, userID string, input *models.RechargeInput) (*models.TransactionResult, error) {
	if err := input.Validate(time.Now()); err != nil {
		return nil, err
	}

	// One in-flight recharge per user; the form is disabled client-side but
	// the server enforces it too.
	if err := s.repo.AcquireRechargeLock(ctx, userID); err != nil {
		return nil, err
	}
	defer s.repo.ReleaseRechargeLock(ctx, userID)

	// Simulated processing latency. The operation always completes once
	// validation has passed: the mock gateway never declines.
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	tx := &models.Transaction{
		ID:          uuid.New().String(),
		Type:        models.TransactionRecharge,
		Amount:      input.Amount,
		Description: fmt.Sprintf("Rechargement carte via ****%s", input.Last4()),
		Date:        time.Now(),
	}

	if err := s.repo.Prepend(ctx, userID, tx); err != nil {
		return nil, err
	}

	transactions, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", userID).
		Float64("amount", input.Amount).
		Msg("Card recharged")

	return &models.TransactionResult{
		Transaction: *tx,
		Balance:     balanceOf(transactions),
	}, nil
}

func (s *cardService) Pay(ctx context.Context, userID string, input *models.PaymentInput) (*models.TransactionResult, error) {
	dish, err := s.menu.GetDish(ctx, input.DishID)
	if err != nil {
		if err == menuservice.ErrDishNotFound {
			return nil, ErrDishNotFound
		}
		return nil, err
	}

	transactions, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balanceOf(transactions) < dish.Price {
		return nil, ErrInsufficientBalance
	}

	tx := &models.Transaction{
		ID:          uuid.New().String(),
		Type:        models.TransactionPayment,
		Amount:      -dish.Price,
		Description: dish.Name,
		Date:        time.Now(),
	}

	if err := s.repo.Prepend(ctx, userID, tx); err != nil {
		return nil, err
	}

	return &models.TransactionResult{
		Transaction: *tx,
		Balance:     balanceOf(transactions) - dish.Price,
	}, nil
}
