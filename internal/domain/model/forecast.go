package model

// 需要予測の推奨アクション
type Recommendation string

const (
	RecommendationRestock    Recommendation = "RESTOCK"
	RecommendationOverstock  Recommendation = "OVERSTOCK"
	RecommendationSufficient Recommendation = "SUFFICIENT"
)

// ForecastResultは導出値。永続化しない。
type ForecastResult struct {
	ProductID       int64          `json:"productId"`
	ProductName     string         `json:"productName"`
	CurrentStock    int64          `json:"currentStock"`
	PredictedDemand float64        `json:"predictedDemand"`
	Recommendation  Recommendation `json:"recommendation"`
}
