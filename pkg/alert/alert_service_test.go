package alert

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/BalajiReddy1/FreshTrack/pkg/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweepRepository stubs only the method the scheduler calls.
type sweepRepository struct {
	product.ProductRepository
	getExpiringFn func(ctx context.Context, daysThreshold int) ([]domain.Product, error)
}

func (r *sweepRepository) GetExpiringProducts(ctx context.Context, daysThreshold int) ([]domain.Product, error) {
	return r.getExpiringFn(ctx, daysThreshold)
}

type recordingNotifier struct {
	mu       sync.Mutex
	received [][]domain.Product
}

func (n *recordingNotifier) Notify(_ context.Context, products []domain.Product) {
	n.mu.Lock()
	n.received = append(n.received, products)
	n.mu.Unlock()
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.received)
}

func TestNewSchedulerDefaultsNonPositiveSettings(t *testing.T) {
	s := NewScheduler(nil, LogNotifier{}, 0, -1)

	assert.Equal(t, defaultInterval, s.interval)
	assert.Equal(t, defaultDaysAhead, s.daysAhead)
}

func TestSchedulerSweepsImmediatelyAndNotifies(t *testing.T) {
	repo := &sweepRepository{
		getExpiringFn: func(_ context.Context, daysThreshold int) ([]domain.Product, error) {
			assert.Equal(t, 3, daysThreshold)
			return []domain.Product{{ID: "p1", Name: "Milk"}}, nil
		},
	}
	notifier := &recordingNotifier{}
	s := NewScheduler(repo, notifier, time.Hour, 3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return notifier.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}

func TestSchedulerSkipsNotifyWhenNothingExpires(t *testing.T) {
	swept := make(chan struct{}, 1)
	repo := &sweepRepository{
		getExpiringFn: func(context.Context, int) ([]domain.Product, error) {
			select {
			case swept <- struct{}{}:
			default:
			}
			return nil, nil
		},
	}
	notifier := &recordingNotifier{}
	s := NewScheduler(repo, notifier, time.Hour, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep never ran")
	}
	assert.Zero(t, notifier.count())
}
