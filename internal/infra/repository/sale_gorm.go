package repository

import (
	"context"
	"time"

	"smartshelf/internal/domain/model"

	"gorm.io/gorm"
)

type SaleGormRepository struct {
	db *gorm.DB
}

// DI
func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

// 台帳へ1件追記
func (r *SaleGormRepository) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Sale{}, err
	}
	return s, nil
}

// 全件を挿入順で返す
func (r *SaleGormRepository) ListAll(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	if err := r.db.WithContext(ctx).Order("id asc").Find(&sales).Error; err != nil {
		return []model.Sale{}, err
	}
	return sales, nil
}

// [start, end]の両端を含む。予測の30日窓もこのクエリを使うので境界は常に一致する。
func (r *SaleGormRepository) FindBySaleDateBetween(ctx context.Context, start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("sale_date BETWEEN ? AND ?", start, end).
		Order("id asc").
		Find(&sales).Error
	if err != nil {
		return []model.Sale{}, err
	}
	return sales, nil
}
