package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"smartshelf/internal/domain/model"
	repo "smartshelf/internal/repository"
)

// 競合時のリトライ上限
const maxSaleAttempts = 3

type SalesUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

// DI
func NewSalesUsecase(tx repo.TransactionManager, clock Clock) *SalesUsecase {
	return &SalesUsecase{
		tx:    tx,
		clock: clock,
	}
}

type RecordSaleInput struct {
	ProductID    int64 `json:"productId"`
	QuantitySold int64 `json:"quantitySold"`
}

type SaleOutput struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"productId"`
	QuantitySold int64     `json:"quantitySold"`
	SaleDate     time.Time `json:"saleDate"`
}

type SaleReportRow struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"productId"`
	ProductName  string    `json:"productName"`
	QuantitySold int64     `json:"quantitySold"`
	SaleDate     time.Time `json:"saleDate"`
}

type SalesReportInput struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// 販売の記録。在庫減算と台帳追記を同一トランザクションで行う。
// 在庫が足りなければ何も書かずに400を返す。
func (u *SalesUsecase) RecordSale(ctx context.Context, in RecordSaleInput) (SaleOutput, error) {
	if in.ProductID <= 0 {
		return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "Product not found")
	}
	if in.QuantitySold <= 0 {
		return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantitySold")
	}

	var out SaleOutput
	for attempt := 0; attempt < maxSaleAttempts; attempt++ {
		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			// 存在チェック（在庫不足とエラーメッセージを分けるため先に引く）
			if _, err := r.Products().FindByID(ctx, in.ProductID); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return NewHTTPError(http.StatusBadRequest, "Product not found")
				}
				return err
			}

			// 条件付きUPDATE。足りなければ行は更新されない。
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, in.ProductID, in.QuantitySold)
			if err != nil {
				return err
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "Not enough stock")
			}

			created, err := r.Sales().Create(ctx, model.Sale{
				ProductID:    in.ProductID,
				QuantitySold: in.QuantitySold,
				SaleDate:     u.clock.Now(),
			})
			if err != nil {
				return err
			}
			out = SaleOutput{
				ID:           created.ID,
				ProductID:    created.ProductID,
				QuantitySold: created.QuantitySold,
				SaleDate:     created.SaleDate,
			}
			return nil
		})
		if err == nil {
			return out, nil
		}
		if _, ok := AsHTTPError(err); ok {
			return SaleOutput{}, err
		}
		if isRetryableConflict(err) {
			continue
		}
		return SaleOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SaleOutput{}, NewHTTPError(http.StatusServiceUnavailable, "conflict, please retry")
}

// 販売レポート。両方の日付が揃ったときだけ期間で絞る（境界は両端とも含む）。
// 片方でも欠けていれば全件を台帳順で返す。
func (u *SalesUsecase) GetSalesReport(ctx context.Context, in SalesReportInput) ([]SaleReportRow, error) {
	var rows []SaleReportRow
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var sales []model.Sale
		var err error
		if in.StartDate != nil && in.EndDate != nil {
			sales, err = r.Sales().FindBySaleDateBetween(ctx, *in.StartDate, *in.EndDate)
		} else {
			sales, err = r.Sales().ListAll(ctx)
		}
		if err != nil {
			return err
		}

		// 商品名をまとめて解決。削除済み商品も名前は出す。
		ids := make([]int64, 0, len(sales))
		seen := map[int64]bool{}
		for _, s := range sales {
			if !seen[s.ProductID] {
				seen[s.ProductID] = true
				ids = append(ids, s.ProductID)
			}
		}
		products, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		nameByID := make(map[int64]string, len(products))
		for _, p := range products {
			nameByID[p.ID] = p.Name
		}

		rows = make([]SaleReportRow, 0, len(sales))
		for _, s := range sales {
			rows = append(rows, SaleReportRow{
				ID:           s.ID,
				ProductID:    s.ProductID,
				ProductName:  nameByID[s.ProductID],
				QuantitySold: s.QuantitySold,
				SaleDate:     s.SaleDate,
			})
		}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return nil, err
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

// シリアライズ失敗とデッドロックだけリトライ対象にする
func isRetryableConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
