// Package dashboard combines the active-products, expired-products, and
// active-count streams into one summary that refreshes whenever any of the
// three emits.
package dashboard

import (
	"context"
	"time"

	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/BalajiReddy1/FreshTrack/pkg/product"
	"github.com/BalajiReddy1/FreshTrack/pkg/stream"
)

type (
	DashboardService interface {
		// WatchSummary returns an independent live cursor over the dashboard
		// summary. Close it to stop delivery.
		WatchSummary(ctx context.Context) *stream.Subscription[domain.DashboardSummary]
		// GetSummary waits for the first combined snapshot.
		GetSummary(ctx context.Context) (domain.DashboardSummary, error)
	}

	dashboardService struct {
		productRepository product.ProductRepository
		now               func() time.Time
	}
)

func NewDashboardService(productRepository product.ProductRepository) DashboardService {
	return &dashboardService{
		productRepository: productRepository,
		now:               time.Now,
	}
}

func (s *dashboardService) WatchSummary(ctx context.Context) *stream.Subscription[domain.DashboardSummary] {
	return stream.CombineLatest3(
		s.productRepository.WatchActiveProducts(ctx),
		s.productRepository.WatchExpiredProducts(ctx),
		s.productRepository.WatchActiveProductCount(ctx),
		func(active []domain.Product, expired []domain.Product, count int64) domain.DashboardSummary {
			return BuildSummary(active, expired, count, s.now())
		},
	)
}

func (s *dashboardService) GetSummary(ctx context.Context) (domain.DashboardSummary, error) {
	sub := s.WatchSummary(ctx)
	defer sub.Close()
	select {
	case summary := <-sub.C:
		return summary, nil
	case <-ctx.Done():
		return domain.DashboardSummary{}, ctx.Err()
	}
}

// BuildSummary derives the day buckets from an active-products snapshot as of
// now. A product may appear in more than one bucket; nothing is deduplicated.
func BuildSummary(active []domain.Product, expired []domain.Product, count int64, now time.Time) domain.DashboardSummary {
	summary := domain.DashboardSummary{
		TotalActiveProducts: count,
		ExpiringToday:       []domain.Product{},
		ExpiringThisWeek:    []domain.Product{},
		ExpiredProducts:     expired,
		CriticalItems:       []domain.Product{},
	}
	for _, p := range active {
		days := p.DaysUntilExpiry(now)
		if days == 0 {
			summary.ExpiringToday = append(summary.ExpiringToday, p)
		}
		if days >= 1 && days <= 7 {
			summary.ExpiringThisWeek = append(summary.ExpiringThisWeek, p)
		}
		if p.Urgency(now) == domain.UrgencyCritical {
			summary.CriticalItems = append(summary.CriticalItems, p)
		}
	}
	return summary
}
