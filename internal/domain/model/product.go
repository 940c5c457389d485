package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"productName"`
	Category string  `gorm:"type:varchar(255)" json:"category"`
	Quantity int64   `gorm:"not null;default:0" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"`
	Supplier string  `gorm:"type:varchar(255)" json:"supplier"`
	ImageURL string  `gorm:"type:varchar(512)" json:"imageUrl"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
