package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/utils"
	"gorm.io/gorm"
)

// InventoryRecord tracks current stock of one product at one location.
// Version is the optimistic-lock field: every stock write must carry the
// version it read, and loses to a concurrent writer otherwise.
type InventoryRecord struct {
	ID           int       `gorm:"primary_key" json:"id"`
	ProductId    int       `gorm:"not null;uniqueIndex:idx_inventory_product_location" json:"product_id"`
	LocationId   int       `gorm:"not null;uniqueIndex:idx_inventory_product_location" json:"location_id"`
	CurrentStock int       `gorm:"not null" json:"current_stock"`
	Version      int       `gorm:"not null;default:0" json:"version"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInventoryRecord struct {
	ProductId    int `json:"product_id" binding:"required"`
	LocationId   int `json:"location_id" binding:"required"`
	CurrentStock int `json:"current_stock" binding:"gte=0"`
}

func (input *NewInventoryRecord) validate(ctx context.Context) error {
	if err := utils.ValidateResourceId[Product](ctx, input.ProductId); err != nil {
		return errors.New("product not found")
	}
	if err := utils.ValidateResourceId[Location](ctx, input.LocationId); err != nil {
		return errors.New("location not found")
	}
	return nil
}

func CreateInventoryRecord(ctx context.Context, input *NewInventoryRecord) (*InventoryRecord, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&InventoryRecord{}).
		Where("product_id = ? AND location_id = ?", input.ProductId, input.LocationId).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("inventory record for this product at this location already exists")
	}

	record := InventoryRecord{
		ProductId:    input.ProductId,
		LocationId:   input.LocationId,
		CurrentStock: input.CurrentStock,
	}
	if err := db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func GetInventoryRecordByKey(ctx context.Context, productId int, locationId int) (*InventoryRecord, error) {
	db := config.GetDB()
	var record InventoryRecord
	err := db.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productId, locationId).
		First(&record).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &record, nil
}

// UpdateInventoryStock is the REST upsert path: read-then-write by key,
// still going through the version counter so engine CAS writes stay honest.
func UpdateInventoryStock(ctx context.Context, productId int, locationId int, newStock int) (*InventoryRecord, error) {
	if newStock < 0 {
		return nil, errors.New("current_stock must not be negative")
	}
	record, err := GetInventoryRecordByKey(ctx, productId, locationId)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := UpdateInventoryStockCAS(db.WithContext(ctx), record.ID, record.Version, newStock); err != nil {
		return nil, err
	}
	record.CurrentStock = newStock
	record.Version++
	return record, nil
}

// UpdateInventoryStockCAS performs the compare-and-swap stock write:
//
//	UPDATE inventory_records
//	SET current_stock = ?, version = version + 1
//	WHERE id = ? AND version = ?
//
// Zero affected rows means a concurrent writer got there first; the caller
// receives ErrStaleInventory and must not assume the write happened.
func UpdateInventoryStockCAS(db *gorm.DB, recordId int, version int, newStock int) error {
	result := db.Model(&InventoryRecord{}).
		Where("id = ? AND version = ?", recordId, version).
		Updates(map[string]interface{}{
			"current_stock": newStock,
			"version":       gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrStaleInventory
	}
	return nil
}

func DeleteInventoryRecord(ctx context.Context, productId int, locationId int) (*InventoryRecord, error) {
	record, err := GetInventoryRecordByKey(ctx, productId, locationId)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func ListInventoryRecords(ctx context.Context) ([]*InventoryRecord, error) {
	return utils.FetchAllModels[InventoryRecord](ctx)
}
