package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/utils"
)

// StoreLimit holds the replenishment thresholds of one product at one store:
// BaseLimit is the reorder threshold, MaxLimit the order-up-to ceiling.
type StoreLimit struct {
	ID         int       `gorm:"primary_key" json:"id"`
	ProductId  int       `gorm:"not null;uniqueIndex:idx_store_limit_product_location" json:"product_id"`
	LocationId int       `gorm:"not null;uniqueIndex:idx_store_limit_product_location" json:"location_id"`
	BaseLimit  int       `gorm:"not null" json:"base_limit"`
	MaxLimit   int       `gorm:"not null" json:"max_limit"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewStoreLimit struct {
	ProductId  int `json:"product_id" binding:"required"`
	LocationId int `json:"location_id" binding:"required"`
	BaseLimit  int `json:"base_limit" binding:"gte=0"`
	MaxLimit   int `json:"max_limit" binding:"gte=0"`
}

// ValidateBounds enforces base_limit <= max_limit. A limit violating this is
// a configuration error and must never reach the planner.
func (input *NewStoreLimit) ValidateBounds() error {
	if input.BaseLimit > input.MaxLimit {
		return errors.New("base_limit must not exceed max_limit")
	}
	return nil
}

func (input *NewStoreLimit) validate(ctx context.Context) error {
	if err := input.ValidateBounds(); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Product](ctx, input.ProductId); err != nil {
		return errors.New("product not found")
	}
	if err := utils.ValidateResourceId[Location](ctx, input.LocationId); err != nil {
		return errors.New("location not found")
	}
	return nil
}

func CreateStoreLimit(ctx context.Context, input *NewStoreLimit) (*StoreLimit, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&StoreLimit{}).
		Where("product_id = ? AND location_id = ?", input.ProductId, input.LocationId).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("store limit for this product at this location already exists")
	}

	limit := StoreLimit{
		ProductId:  input.ProductId,
		LocationId: input.LocationId,
		BaseLimit:  input.BaseLimit,
		MaxLimit:   input.MaxLimit,
	}
	if err := db.WithContext(ctx).Create(&limit).Error; err != nil {
		return nil, err
	}
	return &limit, nil
}

func GetStoreLimitByKey(ctx context.Context, productId int, locationId int) (*StoreLimit, error) {
	db := config.GetDB()
	var limit StoreLimit
	err := db.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productId, locationId).
		First(&limit).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &limit, nil
}

func UpdateStoreLimit(ctx context.Context, productId int, locationId int, input *NewStoreLimit) (*StoreLimit, error) {

	if err := input.ValidateBounds(); err != nil {
		return nil, err
	}

	limit, err := GetStoreLimitByKey(ctx, productId, locationId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&limit).Updates(map[string]interface{}{
		"BaseLimit": input.BaseLimit,
		"MaxLimit":  input.MaxLimit,
	}).Error
	if err != nil {
		return nil, err
	}
	return limit, nil
}

func DeleteStoreLimit(ctx context.Context, productId int, locationId int) (*StoreLimit, error) {
	limit, err := GetStoreLimitByKey(ctx, productId, locationId)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&limit).Error; err != nil {
		return nil, err
	}
	return limit, nil
}

func ListStoreLimits(ctx context.Context) ([]*StoreLimit, error) {
	return utils.FetchAllModels[StoreLimit](ctx)
}
