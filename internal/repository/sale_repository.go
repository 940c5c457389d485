package repository

import (
	"context"
	"time"

	"smartshelf/internal/domain/model"
)

// 販売台帳。追記と読み出しのみ。
type SaleRepository interface {
	// 1件追記
	Create(ctx context.Context, s model.Sale) (model.Sale, error)

	// 全件を挿入順（id昇順）で返す
	ListAll(ctx context.Context) ([]model.Sale, error)

	// sale_dateが[start, end]（両端含む）の行を挿入順で返す
	FindBySaleDateBetween(ctx context.Context, start, end time.Time) ([]model.Sale, error)
}
