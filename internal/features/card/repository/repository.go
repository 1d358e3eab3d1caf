package repository

import (
	"context"
	"errors"

	"cantine-backend/internal/features/card/models"
)

var ErrRechargeInProgress = errors.New("a recharge is already being processed")

type CardRepository interface {
	// Prepend writes a transaction at the head of the user's log.
	Prepend(ctx context.Context, userID string, tx *models.Transaction) error
	// List returns the transaction log, most recent first.
	List(ctx context.Context, userID string) ([]models.Transaction, error)

	// AcquireRechargeLock guards the single in-flight recharge per user.
	AcquireRechargeLock(ctx context.Context, userID string) error
	ReleaseRechargeLock(ctx context.Context, userID string) error
}
