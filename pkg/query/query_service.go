// Package query derives a filtered, sorted product list view from the live
// active-products stream and three pieces of user-controlled state: filter,
// sort, and selected category. The view recomputes on every change to any of
// the four inputs.
package query

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/BalajiReddy1/FreshTrack/pkg/product"
	"github.com/BalajiReddy1/FreshTrack/pkg/stream"
)

type (
	QueryService interface {
		SetFilter(filter domain.ProductFilter)
		SetSort(sort domain.ProductSort)
		// SelectCategory picks the category for BY_CATEGORY filtering. A
		// non-nil selection also forces the filter to BY_CATEGORY.
		SelectCategory(category *string)
		View() (domain.ProductFilter, domain.ProductSort, *string)

		// WatchProducts subscribes to the derived view. The current snapshot
		// is delivered immediately once the underlying stream has produced.
		WatchProducts() *stream.Subscription[[]domain.Product]
		Close()
	}

	queryService struct {
		mu       sync.Mutex
		filter   domain.ProductFilter
		sortBy   domain.ProductSort
		category *string
		latest   []domain.Product
		hasData  bool

		out    *stream.Hub[[]domain.Product]
		source *stream.Subscription[[]domain.Product]
		now    func() time.Time
	}
)

func NewQueryService(ctx context.Context, productRepository product.ProductRepository) QueryService {
	s := &queryService{
		filter: domain.FilterAll,
		sortBy: domain.SortExpiryDateAsc,
		out:    stream.NewHub[[]domain.Product](),
		source: productRepository.WatchActiveProducts(ctx),
		now:    time.Now,
	}
	go s.run()
	return s
}

func (s *queryService) run() {
	for {
		select {
		case <-s.source.Done():
			return
		case products := <-s.source.C:
			s.mu.Lock()
			s.latest = products
			s.hasData = true
			view, _ := s.viewLocked()
			s.mu.Unlock()
			s.out.Publish(view)
		}
	}
}

func (s *queryService) SetFilter(filter domain.ProductFilter) {
	s.mu.Lock()
	s.filter = filter
	view, ok := s.viewLocked()
	s.mu.Unlock()
	if ok {
		s.out.Publish(view)
	}
}

func (s *queryService) SetSort(sortBy domain.ProductSort) {
	s.mu.Lock()
	s.sortBy = sortBy
	view, ok := s.viewLocked()
	s.mu.Unlock()
	if ok {
		s.out.Publish(view)
	}
}

func (s *queryService) SelectCategory(category *string) {
	s.mu.Lock()
	s.category = category
	if category != nil {
		s.filter = domain.FilterByCategory
	}
	view, ok := s.viewLocked()
	s.mu.Unlock()
	if ok {
		s.out.Publish(view)
	}
}

func (s *queryService) View() (domain.ProductFilter, domain.ProductSort, *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter, s.sortBy, s.category
}

// viewLocked recomputes the derived view under s.mu. The bool is false until
// the source stream has produced its first snapshot; callers publish outside
// the lock.
func (s *queryService) viewLocked() ([]domain.Product, bool) {
	if !s.hasData {
		return nil, false
	}
	return Apply(s.latest, s.filter, s.sortBy, s.category, s.now()), true
}

func (s *queryService) WatchProducts() *stream.Subscription[[]domain.Product] {
	s.mu.Lock()
	sub := s.out.Subscribe()
	view, ok := s.viewLocked()
	s.mu.Unlock()
	if ok {
		sub.Push(view)
	}
	return sub
}

func (s *queryService) Close() {
	s.source.Close()
}

// Apply filters then sorts a product snapshot. Filtering and sorting commute
// here, and equal sort keys keep their input order, so a fixed snapshot always
// yields the same view.
func Apply(products []domain.Product, filter domain.ProductFilter, sortBy domain.ProductSort, category *string, now time.Time) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, filter, category, now) {
			filtered = append(filtered, p)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch sortBy {
		case domain.SortExpiryDateDesc:
			return a.ExpiryDate > b.ExpiryDate
		case domain.SortNameAsc:
			return a.Name < b.Name
		case domain.SortNameDesc:
			return a.Name > b.Name
		case domain.SortAddedDateDesc:
			return a.AddedDate > b.AddedDate
		default: // SortExpiryDateAsc
			return a.ExpiryDate < b.ExpiryDate
		}
	})
	return filtered
}

func matches(p domain.Product, filter domain.ProductFilter, category *string, now time.Time) bool {
	switch filter {
	case domain.FilterExpiringSoon:
		days := p.DaysUntilExpiry(now)
		return days >= 0 && days <= 7
	case domain.FilterExpired:
		return p.IsExpired(now)
	case domain.FilterByCategory:
		if category == nil {
			return true
		}
		return p.Category == *category
	default: // FilterAll
		return true
	}
}
