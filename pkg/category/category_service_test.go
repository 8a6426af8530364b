package category

import (
	"context"
	"testing"

	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/BalajiReddy1/FreshTrack/pkg/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	insertFn    func(ctx context.Context, category domain.Category) error
	updateFn    func(ctx context.Context, category domain.Category) error
	deleteFn    func(ctx context.Context, name string) error
	getByNameFn func(ctx context.Context, name string) (*domain.Category, error)
}

func (m *mockRepository) WatchAllCategories(context.Context) *stream.Subscription[[]domain.Category] {
	return nil
}
func (m *mockRepository) GetAllCategoriesOnce(context.Context) ([]domain.Category, error) {
	return nil, nil
}
func (m *mockRepository) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, nil
}
func (m *mockRepository) InsertCategory(ctx context.Context, category domain.Category) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, category)
	}
	return nil
}
func (m *mockRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, category)
	}
	return nil
}
func (m *mockRepository) DeleteCategory(ctx context.Context, name string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, name)
	}
	return nil
}

func TestAddCategoryValidatesColor(t *testing.T) {
	svc := NewCategoryService(&mockRepository{})

	_, err := svc.AddCategory(context.Background(), domain.AddCategoryRequest{
		Name: "Spices", ColorHex: "red", Icon: "spa",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidColorHex)

	_, err = svc.AddCategory(context.Background(), domain.AddCategoryRequest{
		Name: "Spices", ColorHex: "#FF573", Icon: "spa",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidColorHex)
}

func TestAddCategoryRequiresName(t *testing.T) {
	svc := NewCategoryService(&mockRepository{})

	_, err := svc.AddCategory(context.Background(), domain.AddCategoryRequest{
		Name: "  ", ColorHex: "#FF5733", Icon: "spa",
	})
	assert.ErrorIs(t, err, domain.ErrCategoryNameRequired)
}

func TestAddCategoryTrimsName(t *testing.T) {
	var stored domain.Category
	svc := NewCategoryService(&mockRepository{
		insertFn: func(_ context.Context, c domain.Category) error {
			stored = c
			return nil
		},
	})

	res, err := svc.AddCategory(context.Background(), domain.AddCategoryRequest{
		Name: " Spices ", ColorHex: "#FF5733", Icon: "spa", SortOrder: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, "Spices", stored.Name)
	assert.Equal(t, "Spices", res.Name)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	svc := NewCategoryService(&mockRepository{})

	_, err := svc.UpdateCategory(context.Background(), "Missing", domain.UpdateCategoryRequest{Icon: "x"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestUpdateCategoryKeepsUnsetFields(t *testing.T) {
	existing := domain.Category{Name: "Food", ColorHex: "#4CAF50", Icon: "restaurant", SortOrder: 0}
	var stored domain.Category
	svc := NewCategoryService(&mockRepository{
		getByNameFn: func(context.Context, string) (*domain.Category, error) {
			c := existing
			return &c, nil
		},
		updateFn: func(_ context.Context, c domain.Category) error {
			stored = c
			return nil
		},
	})

	order := 2
	_, err := svc.UpdateCategory(context.Background(), "Food", domain.UpdateCategoryRequest{SortOrder: &order})
	require.NoError(t, err)

	assert.Equal(t, "Food", stored.Name)
	assert.Equal(t, "#4CAF50", stored.ColorHex)
	assert.Equal(t, "restaurant", stored.Icon)
	assert.Equal(t, 2, stored.SortOrder)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	svc := NewCategoryService(&mockRepository{})

	err := svc.DeleteCategory(context.Background(), "Missing")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
