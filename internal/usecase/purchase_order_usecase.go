package usecase

import (
	"context"
	"errors"
	"net/http"

	"smartshelf/internal/domain/model"
	repo "smartshelf/internal/repository"
)

type PurchaseOrderUsecase struct {
	tx          repo.TransactionManager
	productRepo repo.ProductRepository
	poRepo      repo.PurchaseOrderRepository
	clock       Clock
}

// DI
func NewPurchaseOrderUsecase(
	tx repo.TransactionManager,
	productRepo repo.ProductRepository,
	poRepo repo.PurchaseOrderRepository,
	clock Clock,
) *PurchaseOrderUsecase {
	return &PurchaseOrderUsecase{
		tx:          tx,
		productRepo: productRepo,
		poRepo:      poRepo,
		clock:       clock,
	}
}

type CreatePurchaseOrderInput struct {
	ProductID       int64 `json:"productId"`
	QuantityToOrder int64 `json:"quantityToOrder"`
}

// 発注の作成。PENDINGで始まる。
func (u *PurchaseOrderUsecase) Create(ctx context.Context, in CreatePurchaseOrderInput) (model.PurchaseOrder, error) {
	if in.ProductID <= 0 {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "Product not found")
	}
	if in.QuantityToOrder <= 0 {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "invalid quantityToOrder")
	}

	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "Product not found")
		}
		return model.PurchaseOrder{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.poRepo.Create(ctx, model.PurchaseOrder{
		ProductID:       in.ProductID,
		QuantityToOrder: in.QuantityToOrder,
		Status:          model.PurchaseOrderStatusPending,
	})
	if err != nil {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 発注の一覧。statusが空なら全件。
func (u *PurchaseOrderUsecase) List(ctx context.Context, status string) ([]model.PurchaseOrder, error) {
	var filter model.PurchaseOrderStatus
	if status != "" {
		s, ok := model.ParsePurchaseOrderStatus(status)
		if !ok {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		filter = s
	}

	orders, err := u.poRepo.ListByStatus(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

// 次の状態への遷移だけ許す
var nextPurchaseOrderStatus = map[model.PurchaseOrderStatus]model.PurchaseOrderStatus{
	model.PurchaseOrderStatusPending:  model.PurchaseOrderStatusApproved,
	model.PurchaseOrderStatusApproved: model.PurchaseOrderStatusOrdered,
	model.PurchaseOrderStatusOrdered:  model.PurchaseOrderStatusReceived,
}

// 発注ステータスの更新。RECEIVEDになった時点で在庫へ加算する。
// 遷移チェックと加算は同一トランザクション。
func (u *PurchaseOrderUsecase) UpdateStatus(ctx context.Context, id int64, status string) (model.PurchaseOrder, error) {
	if id <= 0 {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	newStatus, ok := model.ParsePurchaseOrderStatus(status)
	if !ok {
		return model.PurchaseOrder{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var updated model.PurchaseOrder
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		po, err := r.PurchaseOrders().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return err
		}

		if nextPurchaseOrderStatus[po.Status] != newStatus {
			return NewHTTPError(http.StatusBadRequest, "invalid status transition")
		}

		if err := r.PurchaseOrders().UpdateStatus(ctx, id, newStatus); err != nil {
			return err
		}
		if newStatus == model.PurchaseOrderStatusReceived {
			if err := r.Inventory().IncreaseStock(ctx, po.ProductID, po.QuantityToOrder); err != nil {
				return err
			}
		}

		po.Status = newStatus
		po.UpdatedAt = u.clock.Now()
		updated = po
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return model.PurchaseOrder{}, err
		}
		return model.PurchaseOrder{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return updated, nil
}
