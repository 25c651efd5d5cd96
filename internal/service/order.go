package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/superfruitcenter/fruitmart/internal/logger"
	"github.com/superfruitcenter/fruitmart/internal/models"
	"go.uber.org/zap"
)

const (
	// maximum number of create attempts per placement
	maxPlaceAttempts = 3
	// maximum number of verification queries per pass
	maxVerifyAttempts = 3
	// base delay between verification queries, scaled by query index
	verifyDelay = 2 * time.Second
	// only orders created within this window can match a draft
	verifyMatchWindow = 5 * time.Minute
	// journaled attempts older than this are dropped without verification
	attemptStaleAfter = 10 * time.Minute
	// journaled attempts younger than this may still be actively retried
	// and are skipped by the recovery pass
	attemptRecoverGrace = time.Minute
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts new order to database
	CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.Order, error)
	// RecentOrdersByUser returns user orders created since given time, newest first
	RecentOrdersByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.OrderSummary, error)
	// OrdersByUser returns all user orders, newest first
	OrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// AttemptRepository is interface for the placement attempt journal.
// One record is kept per user, it survives restarts.
type AttemptRepository interface {
	// SaveAttempt stores or replaces the user's in-flight attempt record
	SaveAttempt(ctx context.Context, attempt models.OrderAttempt) error
	// LoadAttempt returns the user's attempt record or ErrDataNotFound
	LoadAttempt(ctx context.Context, userID uuid.UUID) (*models.OrderAttempt, error)
	// ClearAttempt removes the user's attempt record
	ClearAttempt(ctx context.Context, userID uuid.UUID) error
	// PendingAttempts returns all journaled attempt records
	PendingAttempts(ctx context.Context) ([]models.OrderAttempt, error)
}

// OrderService places order drafts against an eventually-consistent
// store. A create call may fail after the write actually landed, so
// every failure is reconciled by re-querying recent orders before the
// retry budget is spent.
type OrderService struct {
	orders   OrderRepository
	attempts AttemptRepository

	// injectable time source and delay for tests
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
	onAttempt func(attempt, max int)
}

// NewOrderService creates new OrderService instance
func NewOrderService(orders OrderRepository, attempts AttemptRepository) *OrderService {
	return &OrderService{
		orders:   orders,
		attempts: attempts,
		now:      time.Now,
		sleep:    sleepCtx,
		onAttempt: func(attempt, max int) {
			logger.Log.Info("placing order", zap.Int("attempt", attempt), zap.Int("max_attempts", max))
		},
	}
}

// sleepCtx waits for d or until ctx is cancelled
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// PlaceOrder persists the draft as exactly one order. Transient create
// failures are retried with exponential backoff, and after every failed
// call the store is re-queried to detect a write that landed despite
// the error. A placement is rejected while another attempt record for
// the same user is still journaled.
func (os *OrderService) PlaceOrder(ctx context.Context, draft models.OrderDraft) (uuid.UUID, error) {
	if err := draft.Validate(); err != nil {
		return uuid.Nil, err
	}

	if _, err := os.attempts.LoadAttempt(ctx, draft.UserID); err == nil {
		return uuid.Nil, models.ErrPlacementInFlight
	}

	return os.placeAttempt(ctx, draft, 1)
}

// placeAttempt runs one create attempt and recurses on retryable failure
func (os *OrderService) placeAttempt(ctx context.Context, draft models.OrderDraft, attempt int) (uuid.UUID, error) {
	os.onAttempt(attempt, maxPlaceAttempts)

	record := models.OrderAttempt{
		UserID:        draft.UserID,
		AttemptNumber: attempt,
		Draft:         draft,
		StartedAt:     os.now(),
	}
	// journaling is best-effort, a failed save only loses crash recovery
	if err := os.attempts.SaveAttempt(ctx, record); err != nil {
		logger.Log.Warn("cannot journal order attempt", zap.Error(err))
	}

	order, createErr := os.orders.CreateOrder(ctx, draft)
	if createErr == nil {
		// confidence check only, the create call already confirmed the id
		if id, ok := os.verifyPlacement(ctx, draft); ok {
			os.clearAttempt(ctx, draft.UserID)
			return id, nil
		}
		os.clearAttempt(ctx, draft.UserID)
		return order.ID, nil
	}

	if !isRetryable(createErr) {
		os.clearAttempt(ctx, draft.UserID)
		return uuid.Nil, fmt.Errorf("order rejected: %w", createErr)
	}

	logger.Log.Warn("order create failed",
		zap.Int("attempt", attempt),
		zap.Error(createErr))

	// the failed call may have actually written
	if id, ok := os.verifyPlacement(ctx, draft); ok {
		os.clearAttempt(ctx, draft.UserID)
		return id, nil
	}

	if attempt < maxPlaceAttempts {
		backoff := (1 << attempt) * time.Second
		if err := os.sleep(ctx, backoff); err != nil {
			return uuid.Nil, err
		}
		// cheap safety check before consuming another attempt
		if id, ok := os.verifyPlacement(ctx, draft); ok {
			os.clearAttempt(ctx, draft.UserID)
			return id, nil
		}
		return os.placeAttempt(ctx, draft, attempt+1)
	}

	os.clearAttempt(ctx, draft.UserID)
	return uuid.Nil, fmt.Errorf("%w: %v", models.ErrPlacementExhausted, createErr)
}

// verifyPlacement queries recent orders looking for one matching the
// draft by total amount and item count. The match is heuristic, drafts
// carry no idempotency key. Up to maxVerifyAttempts queries are made
// with increasing delay to tolerate read-after-write lag.
func (os *OrderService) verifyPlacement(ctx context.Context, draft models.OrderDraft) (uuid.UUID, bool) {
	for i := 1; i <= maxVerifyAttempts; i++ {
		since := os.now().Add(-verifyMatchWindow)

		recent, err := os.orders.RecentOrdersByUser(ctx, draft.UserID, since)
		if err != nil {
			logger.Log.Warn("cannot query recent orders", zap.Error(err))
		}

		// first match in store order wins
		for _, summary := range recent {
			if summary.TotalAmount.Equal(draft.TotalAmount) && summary.ItemCount == len(draft.Items) {
				return summary.ID, true
			}
		}

		if i < maxVerifyAttempts {
			if err := os.sleep(ctx, time.Duration(i)*verifyDelay); err != nil {
				return uuid.Nil, false
			}
		}
	}

	return uuid.Nil, false
}

// clearAttempt drops the journaled attempt record
func (os *OrderService) clearAttempt(ctx context.Context, userID uuid.UUID) {
	if err := os.attempts.ClearAttempt(ctx, userID); err != nil {
		logger.Log.Warn("cannot clear order attempt", zap.Error(err))
	}
}

// ListUserOrders returns list of user orders
func (os *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return os.orders.OrdersByUser(ctx, userID)
}

// RecoverAbandonedAttempts reconciles attempt records left behind by a
// crash or restart. Fresh records are verified against recent orders
// and reported as recovered placements when a match is found. Every
// inspected record is dropped, an unverified attempt is never retried
// automatically.
func (os *OrderService) RecoverAbandonedAttempts(ctx context.Context) ([]models.RecoveredPlacement, error) {
	pending, err := os.attempts.PendingAttempts(ctx)
	if err != nil {
		return nil, err
	}

	var recovered []models.RecoveredPlacement

	for _, attempt := range pending {
		age := os.now().Sub(attempt.StartedAt)
		if age < attemptRecoverGrace {
			// may still be actively retried
			continue
		}

		if age >= attemptStaleAfter {
			logger.Log.Info("dropping stale order attempt",
				zap.String("user_id", attempt.UserID.String()),
				zap.Duration("age", age))
			os.clearAttempt(ctx, attempt.UserID)
			continue
		}

		if id, ok := os.verifyPlacement(ctx, attempt.Draft); ok {
			logger.Log.Info("recovered interrupted order placement",
				zap.String("user_id", attempt.UserID.String()),
				zap.String("order_id", id.String()))
			recovered = append(recovered, models.RecoveredPlacement{
				UserID:  attempt.UserID,
				OrderID: id,
			})
		}
		os.clearAttempt(ctx, attempt.UserID)
	}

	return recovered, nil
}
