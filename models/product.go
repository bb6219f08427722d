package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/utils"
)

type Product struct {
	ID        int         `gorm:"primary_key" json:"id"`
	Name      string      `gorm:"size:100;not null" json:"name" binding:"required"`
	Unit      string      `gorm:"size:20;not null" json:"unit"`
	Kind      ProductKind `gorm:"size:20;not null;index" json:"kind"`
	IsActive  *bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name string      `json:"name" binding:"required"`
	Unit string      `json:"unit" binding:"required"`
	Kind ProductKind `json:"kind" binding:"required,oneof=raw_material manufactured"`
}

func (input *NewProduct) validate(ctx context.Context, id int) error {
	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&Product{}).
		Where("name = ? AND id <> ?", input.Name, id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("product name already exists")
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	product := Product{
		Name:     input.Name,
		Unit:     input.Unit,
		Kind:     input.Kind,
		IsActive: utils.NewTrue(),
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func UpdateProduct(ctx context.Context, id int, input *NewProduct) (*Product, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&product).Updates(map[string]interface{}{
		"Name": input.Name,
		"Unit": input.Unit,
		"Kind": input.Kind,
	}).Error
	if err != nil {
		return nil, err
	}
	utils.InvalidateRedis[Product](id)

	return product, nil
}

func DeleteProduct(ctx context.Context, id int) (*Product, error) {

	db := config.GetDB()
	result, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.WithContext(ctx).Model(&InventoryRecord{}).
		Where("product_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("product has inventory")
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	utils.InvalidateRedis[Product](id)
	return result, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	return GetResource[Product](ctx, id)
}

func ListProducts(ctx context.Context) ([]*Product, error) {
	return utils.FetchAllModels[Product](ctx)
}
