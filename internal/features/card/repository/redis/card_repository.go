package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cantine-backend/internal/features/card/models"
	"cantine-backend/internal/features/card/repository"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefixTransactions = "card:tx:"
	keyPrefixRechargeLock = "card:recharge:lock:"

	// The simulated payment delay is ~1s; the lock TTL only has to outlive
	// a crashed handler.
	rechargeLockTTL = 30 * time.Second
)

type cardRepository struct {
	client *redis.Client
}

func NewCardRepository(client *redis.Client) repository.CardRepository {
	return &cardRepository{client: client}
}

func makeTransactionsKey(userID string) string {
	return keyPrefixTransactions + userID
}

func makeRechargeLockKey(userID string) string {
	return keyPrefixRechargeLock + userID
}

func (r *cardRepository) Prepend(ctx context.Context, userID string, tx *models.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	return r.client.LPush(ctx, makeTransactionsKey(userID), data).Err()
}

func (r *cardRepository) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	entries, err := r.client.LRange(ctx, makeTransactionsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(entries))
	for _, entry := range entries {
		var tx models.Transaction
		if err := json.Unmarshal([]byte(entry), &tx); err != nil {
			continue
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func (r *cardRepository) AcquireRechargeLock(ctx context.Context, userID string) error {
	ok, err := r.client.SetNX(ctx, makeRechargeLockKey(userID), "1", rechargeLockTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrRechargeInProgress
	}
	return nil
}

func (r *cardRepository) ReleaseRechargeLock(ctx context.Context, userID string) error {
	return r.client.Del(ctx, makeRechargeLockKey(userID)).Err()
}
