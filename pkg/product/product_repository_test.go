package product

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	migration "github.com/BalajiReddy1/FreshTrack/cmd/database/migrate"
	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/BalajiReddy1/FreshTrack/pkg/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Shared cache keeps one in-memory database across pooled connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))
	return db
}

func newTestRepository(t *testing.T, now func() time.Time) *productRepository {
	t.Helper()
	if now == nil {
		now = time.Now
	}
	return &productRepository{
		db:      newTestDB(t),
		changes: stream.NewHub[struct{}](),
		now:     now,
	}
}

// waitUntil reads snapshots until pred holds, tolerating conflated deliveries.
func waitUntil[T any](t *testing.T, sub *stream.Subscription[T], pred func(T) bool) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case v := <-sub.C:
			if pred(v) {
				return v
			}
		case <-deadline:
			t.Fatal("timed out waiting for stream condition")
			panic("unreachable")
		}
	}
}

func testProduct(id, name string, expiry time.Time) domain.Product {
	return domain.Product{
		ID:                  id,
		Name:                name,
		Category:            "Food",
		ExpiryDate:          expiry.UnixMilli(),
		AddedDate:           time.Now().UnixMilli(),
		Quantity:            1,
		NotificationEnabled: true,
	}
}

func TestInsertProductUpsertsByID(t *testing.T) {
	repo := newTestRepository(t, nil)
	ctx := context.Background()
	expiry := time.Now().Add(48 * time.Hour)

	first := testProduct("p1", "Milk", expiry)
	require.NoError(t, repo.InsertProduct(ctx, first))

	second := first
	second.Name = "Whole Milk"
	second.Quantity = 3
	require.NoError(t, repo.InsertProduct(ctx, second))

	got, err := repo.GetProductByIDOnce(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Whole Milk", got.Name)
	assert.Equal(t, 3, got.Quantity)

	count := waitUntil(t, repo.WatchActiveProductCount(ctx), func(n int64) bool { return n == 1 })
	assert.Equal(t, int64(1), count)
}

func TestGetProductByIDOnceMissingIsNil(t *testing.T) {
	repo := newTestRepository(t, nil)

	got, err := repo.GetProductByIDOnce(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetProductByBarcode(t *testing.T) {
	repo := newTestRepository(t, nil)
	ctx := context.Background()

	p := testProduct("p1", "Juice", time.Now().Add(72*time.Hour))
	p.Barcode = "5000112637922"
	require.NoError(t, repo.InsertProduct(ctx, p))

	got, err := repo.GetProductByBarcode(ctx, "5000112637922")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.ID)

	missing, err := repo.GetProductByBarcode(ctx, "0000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWatchActiveProductsOrdersByExpiryAndReactsToWrites(t *testing.T) {
	repo := newTestRepository(t, nil)
	ctx := context.Background()
	now := time.Now()

	sub := repo.WatchActiveProducts(ctx)
	defer sub.Close()

	initial := waitUntil(t, sub, func(ps []domain.Product) bool { return len(ps) == 0 })
	assert.Empty(t, initial)

	require.NoError(t, repo.InsertProduct(ctx, testProduct("late", "Cheese", now.Add(96*time.Hour))))
	require.NoError(t, repo.InsertProduct(ctx, testProduct("soon", "Yogurt", now.Add(24*time.Hour))))

	products := waitUntil(t, sub, func(ps []domain.Product) bool { return len(ps) == 2 })
	assert.Equal(t, "soon", products[0].ID)
	assert.Equal(t, "late", products[1].ID)
}

func TestMarkAsConsumedHidesFromActiveButKeepsRecord(t *testing.T) {
	repo := newTestRepository(t, nil)
	ctx := context.Background()

	require.NoError(t, repo.InsertProduct(ctx, testProduct("p1", "Milk", time.Now().Add(24*time.Hour))))

	sub := repo.WatchActiveProducts(ctx)
	defer sub.Close()
	waitUntil(t, sub, func(ps []domain.Product) bool { return len(ps) == 1 })

	require.NoError(t, repo.MarkAsConsumed(ctx, "p1"))
	waitUntil(t, sub, func(ps []domain.Product) bool { return len(ps) == 0 })

	got, err := repo.GetProductByIDOnce(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsConsumed)
	assert.False(t, got.IsDiscarded)
}

func TestWatchExpiredProducts(t *testing.T) {
	repo := newTestRepository(t, nil)
	ctx := context.Background()
	now := time.Now()

	expired := testProduct("old", "Ham", now.Add(-time.Second))
	older := testProduct("older", "Eggs", now.Add(-48*time.Hour))
	fresh := testProduct("fresh", "Bread", now.Add(24*time.Hour))
	consumedExpired := testProduct("gone", "Butter", now.Add(-time.Hour))
	consumedExpired.IsConsumed = true
	require.NoError(t, repo.InsertProducts(ctx, []domain.Product{expired, older, fresh, consumedExpired}))

	sub := repo.WatchExpiredProducts(ctx)
	defer sub.Close()

	products := waitUntil(t, sub, func(ps []domain.Product) bool { return len(ps) == 2 })
	// Descending by expiry date: most recently expired first.
	assert.Equal(t, "old", products[0].ID)
	assert.Equal(t, "older", products[1].ID)
}

func TestWatchProductByID(t *testing.T) {
	repo := newTestRepository(t, nil)
	ctx := context.Background()

	sub := repo.WatchProductByID(ctx, "p1")
	defer sub.Close()

	waitUntil(t, sub, func(p *domain.Product) bool { return p == nil })

	require.NoError(t, repo.InsertProduct(ctx, testProduct("p1", "Milk", time.Now().Add(24*time.Hour))))
	got := waitUntil(t, sub, func(p *domain.Product) bool { return p != nil })
	assert.Equal(t, "Milk", got.Name)
}

func TestGetExpiringProductsWindow(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	repo := newTestRepository(t, func() time.Time { return fixed })
	ctx := context.Background()

	atNow := testProduct("at-now", "A", fixed)
	inOne := testProduct("in-one", "B", fixed.Add(24*time.Hour))
	atEdge := testProduct("at-edge", "C", fixed.Add(3*24*time.Hour))
	pastEdge := testProduct("past-edge", "D", fixed.Add(3*24*time.Hour+time.Millisecond))
	justBefore := testProduct("just-before", "E", fixed.Add(-time.Millisecond))
	muted := testProduct("muted", "F", fixed.Add(24*time.Hour))
	muted.NotificationEnabled = false
	discarded := testProduct("discarded", "G", fixed.Add(24*time.Hour))
	discarded.IsDiscarded = true

	require.NoError(t, repo.InsertProducts(ctx, []domain.Product{
		atNow, inOne, atEdge, pastEdge, justBefore, muted, discarded,
	}))

	products, err := repo.GetExpiringProducts(ctx, 3)
	require.NoError(t, err)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"at-now", "in-one", "at-edge"}, ids, "inclusive bounds, ascending by expiry")
}

func TestDeleteProductIsHardDelete(t *testing.T) {
	repo := newTestRepository(t, nil)
	ctx := context.Background()

	require.NoError(t, repo.InsertProduct(ctx, testProduct("p1", "Milk", time.Now().Add(24*time.Hour))))
	require.NoError(t, repo.DeleteProduct(ctx, "p1"))

	got, err := repo.GetProductByIDOnce(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteAllProducts(t *testing.T) {
	repo := newTestRepository(t, nil)
	ctx := context.Background()

	require.NoError(t, repo.InsertProducts(ctx, []domain.Product{
		testProduct("p1", "Milk", time.Now().Add(24*time.Hour)),
		testProduct("p2", "Eggs", time.Now().Add(48*time.Hour)),
	}))
	require.NoError(t, repo.DeleteAllProducts(ctx))

	count := waitUntil(t, repo.WatchActiveProductCount(ctx), func(n int64) bool { return n == 0 })
	assert.Equal(t, int64(0), count)
}

func TestWatchProductsByCategory(t *testing.T) {
	repo := newTestRepository(t, nil)
	ctx := context.Background()
	now := time.Now()

	food := testProduct("f1", "Milk", now.Add(24*time.Hour))
	medicine := testProduct("m1", "Aspirin", now.Add(48*time.Hour))
	medicine.Category = "Medicine"
	require.NoError(t, repo.InsertProducts(ctx, []domain.Product{food, medicine}))

	sub := repo.WatchProductsByCategory(ctx, "Medicine")
	defer sub.Close()

	products := waitUntil(t, sub, func(ps []domain.Product) bool { return len(ps) == 1 })
	assert.Equal(t, "m1", products[0].ID)
}
