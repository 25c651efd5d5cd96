package worker

import (
	"context"
	"time"

	"github.com/superfruitcenter/fruitmart/internal/logger"
	"github.com/superfruitcenter/fruitmart/internal/models"
	"go.uber.org/zap"
)

const recoveryInterval = 5 * time.Minute

// OrderRecoverer reconciles interrupted placement attempts
type OrderRecoverer interface {
	RecoverAbandonedAttempts(ctx context.Context) ([]models.RecoveredPlacement, error)
}

// AttemptRecovery is worker that reconciles placement attempts left
// behind by a crash or restart
type AttemptRecovery struct {
	svc      OrderRecoverer
	interval time.Duration
}

// NewAttemptRecovery creates new attempt recovery worker
func NewAttemptRecovery(svc OrderRecoverer) *AttemptRecovery {
	return &AttemptRecovery{
		svc:      svc,
		interval: recoveryInterval,
	}
}

// Run performs a recovery pass immediately and then on every tick until
// the context is cancelled
func (ar *AttemptRecovery) Run(ctx context.Context) {
	ar.recover(ctx)

	ticker := time.NewTicker(ar.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("attempt recovery is done")
			return
		case <-ticker.C:
			ar.recover(ctx)
		}
	}
}

func (ar *AttemptRecovery) recover(ctx context.Context) {
	recovered, err := ar.svc.RecoverAbandonedAttempts(ctx)
	if err != nil {
		logger.Log.Error("error recovering order attempts", zap.Error(err))
		return
	}

	for _, placement := range recovered {
		logger.Log.Info("interrupted order placement recovered",
			zap.String("user_id", placement.UserID.String()),
			zap.String("order_id", placement.OrderID.String()))
	}
}
