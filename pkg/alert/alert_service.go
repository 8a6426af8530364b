// Package alert periodically collects products that are about to expire and
// hands them to a Notifier. Delivery itself (push, local notifications) lives
// outside the engine; the bundled notifier just logs.
package alert

import (
	"context"
	"log"
	"time"

	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/BalajiReddy1/FreshTrack/pkg/product"
)

// Notifier receives the expiring products found by a scheduler sweep.
type Notifier interface {
	Notify(ctx context.Context, products []domain.Product)
}

// LogNotifier writes one line per expiring product.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, products []domain.Product) {
	now := time.Now()
	for _, p := range products {
		log.Printf("alert: %q expires in %d day(s)", p.Name, p.DaysUntilExpiry(now))
	}
}

// Scheduler sweeps the expiring-products window on a fixed interval.
type Scheduler struct {
	productRepository product.ProductRepository
	notifier          Notifier
	interval          time.Duration
	daysAhead         int
}

const (
	defaultInterval  = time.Hour
	defaultDaysAhead = 3
)

// NewScheduler falls back to hourly sweeps over a 3-day window when given a
// non-positive interval or window, so a missing config key cannot produce a
// zero-interval ticker.
func NewScheduler(productRepository product.ProductRepository, notifier Notifier, interval time.Duration, daysAhead int) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if daysAhead < 0 {
		daysAhead = defaultDaysAhead
	}
	return &Scheduler{
		productRepository: productRepository,
		notifier:          notifier,
		interval:          interval,
		daysAhead:         daysAhead,
	}
}

// Start runs sweeps until ctx is cancelled. The first sweep happens
// immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	products, err := s.productRepository.GetExpiringProducts(ctx, s.daysAhead)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("alert: expiring products sweep failed: %v", err)
		}
		return
	}
	if len(products) == 0 {
		return
	}
	s.notifier.Notify(ctx, products)
}
