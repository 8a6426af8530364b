package category

import (
	"context"
	"regexp"
	"strings"

	"github.com/BalajiReddy1/FreshTrack/domain"
)

var colorHexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type (
	CategoryService interface {
		AddCategory(ctx context.Context, req domain.AddCategoryRequest) (domain.Category, error)
		UpdateCategory(ctx context.Context, name string, req domain.UpdateCategoryRequest) (domain.Category, error)
		DeleteCategory(ctx context.Context, name string) error
		GetCategories(ctx context.Context) ([]domain.Category, error)
		GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

func (s *categoryService) AddCategory(ctx context.Context, req domain.AddCategoryRequest) (domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Category{}, domain.ErrCategoryNameRequired
	}
	if !colorHexPattern.MatchString(req.ColorHex) {
		return domain.Category{}, domain.ErrInvalidColorHex
	}

	category := domain.Category{
		Name:      name,
		ColorHex:  req.ColorHex,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	}
	if err := s.categoryRepository.InsertCategory(ctx, category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

// UpdateCategory mutates everything but the name. Renaming is delete+insert
// by the caller; products referencing the old name are left orphaned.
func (s *categoryService) UpdateCategory(ctx context.Context, name string, req domain.UpdateCategoryRequest) (domain.Category, error) {
	category, err := s.categoryRepository.GetCategoryByName(ctx, name)
	if err != nil {
		return domain.Category{}, err
	}
	if category == nil {
		return domain.Category{}, domain.ErrCategoryNotFound
	}

	if req.ColorHex != "" {
		if !colorHexPattern.MatchString(req.ColorHex) {
			return domain.Category{}, domain.ErrInvalidColorHex
		}
		category.ColorHex = req.ColorHex
	}
	if req.Icon != "" {
		category.Icon = req.Icon
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := s.categoryRepository.UpdateCategory(ctx, *category); err != nil {
		return domain.Category{}, err
	}
	return *category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, name string) error {
	category, err := s.categoryRepository.GetCategoryByName(ctx, name)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}
	return s.categoryRepository.DeleteCategory(ctx, name)
}

func (s *categoryService) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepository.GetAllCategoriesOnce(ctx)
}

func (s *categoryService) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	return s.categoryRepository.GetCategoryByName(ctx, name)
}
