package usecase

import (
	"context"
	"math"
	"net/http"
	"sort"

	"smartshelf/internal/domain/model"
	repo "smartshelf/internal/repository"
)

const (
	// 過去30日の販売実績から翌7日の需要を見積もる
	forecastWindowDays  = 30
	forecastHorizonDays = 7
	// 予測の4倍を超える在庫は過剰とみなす
	overstockMultiplier = 4
)

type ForecastUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

// DI
func NewForecastUsecase(tx repo.TransactionManager, clock Clock) *ForecastUsecase {
	return &ForecastUsecase{
		tx:    tx,
		clock: clock,
	}
}

type ForecastRow struct {
	ProductID       int64   `json:"productId"`
	ProductName     string  `json:"productName"`
	CurrentStock    int64   `json:"currentStock"`
	PredictedDemand float64 `json:"predictedDemand"`
	Status          string  `json:"status"`
}

// 全商品の需要予測。商品一覧と販売実績は同一トランザクションで読む。
func (u *ForecastUsecase) GenerateForecast(ctx context.Context) ([]ForecastRow, error) {
	var results []model.ForecastResult
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		products, err := r.Products().List(ctx, repo.ProductListQuery{})
		if err != nil {
			return err
		}

		now := u.clock.Now()
		windowStart := now.AddDate(0, 0, -forecastWindowDays)
		sales, err := r.Sales().FindBySaleDateBetween(ctx, windowStart, now)
		if err != nil {
			return err
		}

		soldByProduct := make(map[int64]int64, len(products))
		for _, s := range sales {
			soldByProduct[s.ProductID] += s.QuantitySold
		}

		results = make([]model.ForecastResult, 0, len(products))
		for _, p := range products {
			dailyAverage := float64(soldByProduct[p.ID]) / float64(forecastWindowDays)
			predicted := round1(dailyAverage * forecastHorizonDays)
			results = append(results, model.ForecastResult{
				ProductID:       p.ID,
				ProductName:     p.Name,
				CurrentStock:    p.Quantity,
				PredictedDemand: predicted,
				Recommendation:  recommend(p.Quantity, predicted),
			})
		}
		return nil
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 予測需要の降順。同値は商品一覧の並びのまま。
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PredictedDemand > results[j].PredictedDemand
	})

	rows := make([]ForecastRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, ForecastRow{
			ProductID:       res.ProductID,
			ProductName:     res.ProductName,
			CurrentStock:    res.CurrentStock,
			PredictedDemand: res.PredictedDemand,
			Status:          forecastStatus(res.Recommendation),
		})
	}
	return rows, nil
}

// 判定の順序は固定。予測が0でも在庫が1以上ならOVERSTOCKになる。
func recommend(stock int64, predicted float64) model.Recommendation {
	if float64(stock) < predicted {
		return model.RecommendationRestock
	}
	if float64(stock) > predicted*overstockMultiplier {
		return model.RecommendationOverstock
	}
	return model.RecommendationSufficient
}

// 小数第1位へ四捨五入（0.05は切り上げ側）
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

func forecastStatus(rec model.Recommendation) string {
	switch rec {
	case model.RecommendationRestock:
		return "RESTOCK NEEDED"
	case model.RecommendationOverstock:
		return "OVERSTOCKED"
	default:
		return "SUFFICIENT"
	}
}
