package repository

import (
	"context"
	"errors"

	"smartshelf/internal/domain/model"
	repo "smartshelf/internal/repository"

	"gorm.io/gorm"
)

type PurchaseOrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewPurchaseOrderGormRepository(db *gorm.DB) *PurchaseOrderGormRepository {
	return &PurchaseOrderGormRepository{db: db}
}

func (r *PurchaseOrderGormRepository) Create(ctx context.Context, po model.PurchaseOrder) (model.PurchaseOrder, error) {
	if err := r.db.WithContext(ctx).Create(&po).Error; err != nil {
		return model.PurchaseOrder{}, err
	}
	return po, nil
}

func (r *PurchaseOrderGormRepository) FindByID(ctx context.Context, id int64) (model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).First(&po, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PurchaseOrder{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PurchaseOrder{}, err
	}
	return po, nil
}

// statusが空なら全件
func (r *PurchaseOrderGormRepository) ListByStatus(ctx context.Context, status model.PurchaseOrderStatus) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder

	tx := r.db.WithContext(ctx).Model(&model.PurchaseOrder{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	if err := tx.Order("id asc").Find(&pos).Error; err != nil {
		return []model.PurchaseOrder{}, err
	}
	return pos, nil
}

func (r *PurchaseOrderGormRepository) UpdateStatus(ctx context.Context, id int64, status model.PurchaseOrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.PurchaseOrder{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
