package repository

import (
	"context"

	repo "smartshelf/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	products       repo.ProductRepository
	sales          repo.SaleRepository
	inventory      repo.InventoryRepository
	purchaseOrders repo.PurchaseOrderRepository
}

func (r *txReposGorm) Products() repo.ProductRepository             { return r.products }
func (r *txReposGorm) Sales() repo.SaleRepository                   { return r.sales }
func (r *txReposGorm) Inventory() repo.InventoryRepository          { return r.inventory }
func (r *txReposGorm) PurchaseOrders() repo.PurchaseOrderRepository { return r.purchaseOrders }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:       NewProductGormRepository(tx),
			sales:          NewSaleGormRepository(tx),
			inventory:      NewInventoryGormRepository(tx),
			purchaseOrders: NewPurchaseOrderGormRepository(tx),
		}
		return fn(r)
	})
}
