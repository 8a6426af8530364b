package category

import (
	"context"
	"errors"

	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/BalajiReddy1/FreshTrack/entities"
	"github.com/BalajiReddy1/FreshTrack/pkg/stream"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// CategoryRepository is the storage gateway for categories. Name is the
	// primary key; deleting a category never cascades to products.
	CategoryRepository interface {
		WatchAllCategories(ctx context.Context) *stream.Subscription[[]domain.Category]
		GetAllCategoriesOnce(ctx context.Context) ([]domain.Category, error)
		GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)
		InsertCategory(ctx context.Context, category domain.Category) error
		UpdateCategory(ctx context.Context, category domain.Category) error
		DeleteCategory(ctx context.Context, name string) error
	}

	categoryRepository struct {
		db      *gorm.DB
		changes *stream.Hub[struct{}]
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{
		db:      db,
		changes: stream.NewHub[struct{}](),
	}
}

func (r *categoryRepository) notify() {
	r.changes.Publish(struct{}{})
}

func (r *categoryRepository) WatchAllCategories(ctx context.Context) *stream.Subscription[[]domain.Category] {
	return stream.Watch(ctx, r.changes.Subscribe(), func(ctx context.Context) ([]domain.Category, error) {
		return r.GetAllCategoriesOnce(ctx)
	})
}

func (r *categoryRepository) GetAllCategoriesOnce(ctx context.Context) ([]domain.Category, error) {
	var rows []entities.Category
	if err := r.db.WithContext(ctx).Order("sort_order asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.CategoryToDomain(row))
	}
	return categories, nil
}

func (r *categoryRepository) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var row entities.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	category := domain.CategoryToDomain(row)
	return &category, nil
}

// InsertCategory upserts by name.
func (r *categoryRepository) InsertCategory(ctx context.Context, category domain.Category) error {
	row := category.ToEntity()
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, UpdateAll: true}).
		Create(&row).Error; err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	row := category.ToEntity()
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, name string) error {
	if err := r.db.WithContext(ctx).Where("name = ?", name).Delete(&entities.Category{}).Error; err != nil {
		return err
	}
	r.notify()
	return nil
}
