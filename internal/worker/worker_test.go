package worker

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

type fakeRecoverer struct {
	calls     chan struct{}
	recovered []models.RecoveredPlacement
}

func (f *fakeRecoverer) RecoverAbandonedAttempts(_ context.Context) ([]models.RecoveredPlacement, error) {
	f.calls <- struct{}{}
	return f.recovered, nil
}

func TestAttemptRecovery_RunsImmediately(t *testing.T) {
	recoverer := &fakeRecoverer{
		calls: make(chan struct{}, 1),
		recovered: []models.RecoveredPlacement{
			{UserID: uuid.New(), OrderID: uuid.New()},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ar := NewAttemptRecovery(recoverer)
	ar.interval = time.Hour // only the startup pass should fire

	done := make(chan struct{})
	go func() {
		ar.Run(ctx)
		close(done)
	}()

	select {
	case <-recoverer.calls:
	case <-time.After(time.Second):
		t.Fatal("recovery pass did not run on start")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}

	assert.Empty(t, recoverer.calls)
}
