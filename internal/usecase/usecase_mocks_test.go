package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartshelf/internal/domain/model"
	repo "smartshelf/internal/repository"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type SaleRepoMock struct{ mock.Mock }

func (m *SaleRepoMock) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Sale)
	return created, args.Error(1)
}

func (m *SaleRepoMock) ListAll(ctx context.Context) ([]model.Sale, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Sale)
	return items, args.Error(1)
}

func (m *SaleRepoMock) FindBySaleDateBetween(ctx context.Context, start, end time.Time) ([]model.Sale, error) {
	args := m.Called(ctx, start, end)
	items, _ := args.Get(0).([]model.Sale)
	return items, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

type PurchaseOrderRepoMock struct{ mock.Mock }

func (m *PurchaseOrderRepoMock) Create(ctx context.Context, po model.PurchaseOrder) (model.PurchaseOrder, error) {
	args := m.Called(ctx, po)
	created, _ := args.Get(0).(model.PurchaseOrder)
	return created, args.Error(1)
}

func (m *PurchaseOrderRepoMock) FindByID(ctx context.Context, id int64) (model.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	po, _ := args.Get(0).(model.PurchaseOrder)
	return po, args.Error(1)
}

func (m *PurchaseOrderRepoMock) ListByStatus(ctx context.Context, status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error) {
	args := m.Called(ctx, status)
	items, _ := args.Get(0).([]model.PurchaseOrder)
	return items, args.Error(1)
}

func (m *PurchaseOrderRepoMock) UpdateStatus(ctx context.Context, id int64, status model.PurchaseOrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// =====================
// Fake TxManager（fnをそのまま実行するだけ）
// =====================

type fakeTxRepos struct {
	products  repo.ProductRepository
	sales     repo.SaleRepository
	inventory repo.InventoryRepository
	pos       repo.PurchaseOrderRepository
}

func (f *fakeTxRepos) Products() repo.ProductRepository { return f.products }

func (f *fakeTxRepos) Sales() repo.SaleRepository { return f.sales }

func (f *fakeTxRepos) Inventory() repo.InventoryRepository { return f.inventory }

func (f *fakeTxRepos) PurchaseOrders() repo.PurchaseOrderRepository { return f.pos }

type fakeTxManager struct {
	repos fakeTxRepos
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(&m.repos)
}

// =====================
// 固定時刻のClock
// =====================

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
