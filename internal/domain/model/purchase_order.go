package model

import "time"

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending  PurchaseOrderStatus = "PENDING"
	PurchaseOrderStatusApproved PurchaseOrderStatus = "APPROVED"
	PurchaseOrderStatusOrdered  PurchaseOrderStatus = "ORDERED"
	PurchaseOrderStatusReceived PurchaseOrderStatus = "RECEIVED"
)

// 未知の文字列は不正として扱う
func ParsePurchaseOrderStatus(s string) (PurchaseOrderStatus, bool) {
	switch PurchaseOrderStatus(s) {
	case PurchaseOrderStatusPending, PurchaseOrderStatusApproved, PurchaseOrderStatusOrdered, PurchaseOrderStatusReceived:
		return PurchaseOrderStatus(s), true
	}
	return "", false
}

// 発注書。RECEIVEDへの遷移で在庫に加算される。
type PurchaseOrder struct {
	ID              int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       int64               `gorm:"not null;index" json:"productId"`
	QuantityToOrder int64               `gorm:"not null" json:"quantityToOrder"`
	Status          PurchaseOrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt       time.Time           `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time           `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
