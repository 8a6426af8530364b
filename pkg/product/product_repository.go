package product

import (
	"context"
	"errors"
	"time"

	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/BalajiReddy1/FreshTrack/entities"
	"github.com/BalajiReddy1/FreshTrack/pkg/stream"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// ProductRepository is the sole gateway between the domain and product
	// storage. Watch methods return live subscriptions that push the current
	// result immediately and a fresh snapshot after every write; Get methods
	// are one-shot. Missing rows on lookups are returned as nil, not errors.
	ProductRepository interface {
		WatchActiveProducts(ctx context.Context) *stream.Subscription[[]domain.Product]
		WatchProductsByCategory(ctx context.Context, category string) *stream.Subscription[[]domain.Product]
		WatchProductByID(ctx context.Context, id string) *stream.Subscription[*domain.Product]
		WatchExpiredProducts(ctx context.Context) *stream.Subscription[[]domain.Product]
		WatchActiveProductCount(ctx context.Context) *stream.Subscription[int64]

		GetProductByIDOnce(ctx context.Context, id string) (*domain.Product, error)
		GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
		GetExpiringProducts(ctx context.Context, daysThreshold int) ([]domain.Product, error)

		InsertProduct(ctx context.Context, product domain.Product) error
		InsertProducts(ctx context.Context, products []domain.Product) error
		UpdateProduct(ctx context.Context, product domain.Product) error
		DeleteProduct(ctx context.Context, id string) error
		DeleteAllProducts(ctx context.Context) error
		MarkAsConsumed(ctx context.Context, id string) error
		MarkAsDiscarded(ctx context.Context, id string) error
	}

	productRepository struct {
		db      *gorm.DB
		changes *stream.Hub[struct{}]
		now     func() time.Time
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{
		db:      db,
		changes: stream.NewHub[struct{}](),
		now:     time.Now,
	}
}

// notify re-runs every live product query. Called after each committed write
// so subscribers see read-your-writes snapshots.
func (r *productRepository) notify() {
	r.changes.Publish(struct{}{})
}

const activeCondition = "is_consumed = ? AND is_discarded = ?"

func toDomainSlice(rows []entities.Product) []domain.Product {
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, domain.ProductToDomain(row))
	}
	return products
}

func (r *productRepository) WatchActiveProducts(ctx context.Context) *stream.Subscription[[]domain.Product] {
	return stream.Watch(ctx, r.changes.Subscribe(), func(ctx context.Context) ([]domain.Product, error) {
		var rows []entities.Product
		if err := r.db.WithContext(ctx).
			Where(activeCondition, false, false).
			Order("expiry_date asc").
			Find(&rows).Error; err != nil {
			return nil, err
		}
		return toDomainSlice(rows), nil
	})
}

func (r *productRepository) WatchProductsByCategory(ctx context.Context, category string) *stream.Subscription[[]domain.Product] {
	return stream.Watch(ctx, r.changes.Subscribe(), func(ctx context.Context) ([]domain.Product, error) {
		var rows []entities.Product
		if err := r.db.WithContext(ctx).
			Where("category = ? AND "+activeCondition, category, false, false).
			Order("expiry_date asc").
			Find(&rows).Error; err != nil {
			return nil, err
		}
		return toDomainSlice(rows), nil
	})
}

func (r *productRepository) WatchProductByID(ctx context.Context, id string) *stream.Subscription[*domain.Product] {
	return stream.Watch(ctx, r.changes.Subscribe(), func(ctx context.Context) (*domain.Product, error) {
		return r.findOne(ctx, "id = ?", id)
	})
}

func (r *productRepository) WatchExpiredProducts(ctx context.Context) *stream.Subscription[[]domain.Product] {
	return stream.Watch(ctx, r.changes.Subscribe(), func(ctx context.Context) ([]domain.Product, error) {
		var rows []entities.Product
		if err := r.db.WithContext(ctx).
			Where("expiry_date < ? AND "+activeCondition, r.now().UnixMilli(), false, false).
			Order("expiry_date desc").
			Find(&rows).Error; err != nil {
			return nil, err
		}
		return toDomainSlice(rows), nil
	})
}

func (r *productRepository) WatchActiveProductCount(ctx context.Context) *stream.Subscription[int64] {
	return stream.Watch(ctx, r.changes.Subscribe(), func(ctx context.Context) (int64, error) {
		var count int64
		err := r.db.WithContext(ctx).
			Model(&entities.Product{}).
			Where(activeCondition, false, false).
			Count(&count).Error
		return count, err
	})
}

func (r *productRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.Product, error) {
	var row entities.Product
	if err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	product := domain.ProductToDomain(row)
	return &product, nil
}

func (r *productRepository) GetProductByIDOnce(ctx context.Context, id string) (*domain.Product, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *productRepository) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	return r.findOne(ctx, "barcode = ?", barcode)
}

// GetExpiringProducts returns active, notification-enabled products whose
// expiry date falls within [now, now+daysThreshold days], ascending. Both
// bounds are computed here, once, so callers never pre-expand the window.
func (r *productRepository) GetExpiringProducts(ctx context.Context, daysThreshold int) ([]domain.Product, error) {
	currentTime := r.now().UnixMilli()
	thresholdTime := currentTime + int64(daysThreshold)*domain.MillisPerDay

	var rows []entities.Product
	if err := r.db.WithContext(ctx).
		Where("expiry_date >= ? AND expiry_date <= ? AND notification_enabled = ? AND "+activeCondition,
			currentTime, thresholdTime, true, false, false).
		Order("expiry_date asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(rows), nil
}

// InsertProduct upserts by primary key: inserting an existing id replaces the
// stored record with the new payload.
func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) error {
	row := product.ToEntity()
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&row).Error; err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *productRepository) InsertProducts(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([]entities.Product, 0, len(products))
	for _, p := range products {
		rows = append(rows, p.ToEntity())
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&rows).Error; err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	row := product.ToEntity()
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Product{}).Error; err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *productRepository) DeleteAllProducts(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&entities.Product{}).Error; err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *productRepository) setFlag(ctx context.Context, id, column string) error {
	if err := r.db.WithContext(ctx).
		Model(&entities.Product{}).
		Where("id = ?", id).
		Update(column, true).Error; err != nil {
		return err
	}
	r.notify()
	return nil
}

// MarkAsConsumed sets the one-way consumed flag; the record stays in storage
// but drops out of active queries.
func (r *productRepository) MarkAsConsumed(ctx context.Context, id string) error {
	return r.setFlag(ctx, id, "is_consumed")
}

// MarkAsDiscarded sets the one-way discarded flag.
func (r *productRepository) MarkAsDiscarded(ctx context.Context, id string) error {
	return r.setFlag(ctx, id, "is_discarded")
}
