package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartshelf/internal/domain/model"
	repo "smartshelf/internal/repository"
	"smartshelf/internal/usecase"
)

// =====================
// インメモリ実装（BETWEENの両端含む挙動を再現）
// =====================

type memSaleRepo struct {
	sales []model.Sale
}

func (r *memSaleRepo) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	s.ID = int64(len(r.sales) + 1)
	r.sales = append(r.sales, s)
	return s, nil
}

func (r *memSaleRepo) ListAll(ctx context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, len(r.sales))
	copy(out, r.sales)
	return out, nil
}

func (r *memSaleRepo) FindBySaleDateBetween(ctx context.Context, start, end time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

type memProductRepo struct {
	products []model.Product
}

func (r *memProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	out := make([]model.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (r *memProductRepo) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		for _, p := range r.products {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (r *memProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = int64(len(r.products) + 1)
	r.products = append(r.products, p)
	return p, nil
}

func (r *memProductRepo) Update(ctx context.Context, p model.Product) error { return nil }

func (r *memProductRepo) SoftDelete(ctx context.Context, id int64) error { return nil }

func newForecastUsecase(products []model.Product, sales []model.Sale, now time.Time) *usecase.ForecastUsecase {
	tx := &fakeTxManager{repos: fakeTxRepos{
		products: &memProductRepo{products: products},
		sales:    &memSaleRepo{sales: sales},
	}}
	return usecase.NewForecastUsecase(tx, &fixedClock{t: now})
}

// =====================
// 予測値と判定
// =====================

// 30日間で60個 → 日平均2.0 → 7日予測14.0。在庫10なら要補充。
func TestForecastUsecase_RestockNeeded(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	products := []model.Product{{ID: 1, Name: "Coffee", Quantity: 10}}
	sales := []model.Sale{
		{ID: 1, ProductID: 1, QuantitySold: 30, SaleDate: now.AddDate(0, 0, -10)},
		{ID: 2, ProductID: 1, QuantitySold: 30, SaleDate: now.AddDate(0, 0, -5)},
	}

	rows, err := newForecastUsecase(products, sales, now).GenerateForecast(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 14.0, rows[0].PredictedDemand)
	assert.Equal(t, "RESTOCK NEEDED", rows[0].Status)
	assert.Equal(t, int64(10), rows[0].CurrentStock)
}

// 販売実績ゼロ・在庫ありは過剰在庫扱い（予測0の4倍は0）
func TestForecastUsecase_ZeroDemandWithStockIsOverstocked(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	products := []model.Product{{ID: 1, Name: "Dust", Quantity: 100}}

	rows, err := newForecastUsecase(products, nil, now).GenerateForecast(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].PredictedDemand)
	assert.Equal(t, "OVERSTOCKED", rows[0].Status)
}

// 販売実績ゼロ・在庫ゼロは充足
func TestForecastUsecase_ZeroDemandZeroStockIsSufficient(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	products := []model.Product{{ID: 1, Name: "Empty", Quantity: 0}}

	rows, err := newForecastUsecase(products, nil, now).GenerateForecast(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "SUFFICIENT", rows[0].Status)
}

// 窓の境界: ちょうど30日前は含む、30日+1秒前は含まない
func TestForecastUsecase_WindowBoundary(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	products := []model.Product{{ID: 1, Name: "Coffee", Quantity: 1000}}
	sales := []model.Sale{
		{ID: 1, ProductID: 1, QuantitySold: 30, SaleDate: now.AddDate(0, 0, -30)},
		{ID: 2, ProductID: 1, QuantitySold: 300, SaleDate: now.AddDate(0, 0, -30).Add(-time.Second)},
	}

	rows, err := newForecastUsecase(products, sales, now).GenerateForecast(context.Background())
	assert.NoError(t, err)

	// 30個だけ集計される → 日平均1.0 → 予測7.0
	assert.Equal(t, 7.0, rows[0].PredictedDemand)
}

// 予測の小数は1桁に四捨五入される
func TestForecastUsecase_RoundingToOneDecimal(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	products := []model.Product{{ID: 1, Name: "Coffee", Quantity: 1000}}
	sales := []model.Sale{
		// 10個/30日 → 日平均0.333... → 7日で2.333... → 2.3
		{ID: 1, ProductID: 1, QuantitySold: 10, SaleDate: now.AddDate(0, 0, -1)},
	}

	rows, err := newForecastUsecase(products, sales, now).GenerateForecast(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2.3, rows[0].PredictedDemand)
}

// =====================
// 並び順
// =====================

// 予測需要の降順。同値は商品一覧の順のまま。
func TestForecastUsecase_SortDescendingStable(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	products := []model.Product{
		{ID: 1, Name: "Low", Quantity: 50},
		{ID: 2, Name: "TieA", Quantity: 50},
		{ID: 3, Name: "High", Quantity: 50},
		{ID: 4, Name: "TieB", Quantity: 50},
	}
	sales := []model.Sale{
		{ID: 1, ProductID: 1, QuantitySold: 30, SaleDate: now.AddDate(0, 0, -3)},
		{ID: 2, ProductID: 2, QuantitySold: 60, SaleDate: now.AddDate(0, 0, -3)},
		{ID: 3, ProductID: 3, QuantitySold: 120, SaleDate: now.AddDate(0, 0, -3)},
		{ID: 4, ProductID: 4, QuantitySold: 60, SaleDate: now.AddDate(0, 0, -3)},
	}

	rows, err := newForecastUsecase(products, sales, now).GenerateForecast(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rows, 4)

	assert.Equal(t, "High", rows[0].ProductName)
	assert.Equal(t, "TieA", rows[1].ProductName)
	assert.Equal(t, "TieB", rows[2].ProductName)
	assert.Equal(t, "Low", rows[3].ProductName)
}

// 同じ入力なら毎回同じ結果
func TestForecastUsecase_Deterministic(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	products := []model.Product{
		{ID: 1, Name: "A", Quantity: 10},
		{ID: 2, Name: "B", Quantity: 10},
		{ID: 3, Name: "C", Quantity: 10},
	}
	sales := []model.Sale{
		{ID: 1, ProductID: 2, QuantitySold: 15, SaleDate: now.AddDate(0, 0, -2)},
	}

	uc := newForecastUsecase(products, sales, now)

	first, err := uc.GenerateForecast(context.Background())
	assert.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := uc.GenerateForecast(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
