package model

import "time"

// 販売台帳の1行。INSERTのみで、更新・削除はしない。
type Sale struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    int64     `gorm:"not null;index" json:"productId"`
	QuantitySold int64     `gorm:"not null" json:"quantitySold"`
	SaleDate     time.Time `gorm:"not null;index" json:"saleDate"`
}
