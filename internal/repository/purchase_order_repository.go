package repository

import (
	"context"

	"smartshelf/internal/domain/model"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po model.PurchaseOrder) (model.PurchaseOrder, error)
	FindByID(ctx context.Context, id int64) (model.PurchaseOrder, error)

	// statusが空なら全件
	ListByStatus(ctx context.Context, status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error)

	UpdateStatus(ctx context.Context, id int64, status model.PurchaseOrderStatus) error
}
