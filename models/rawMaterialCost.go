package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/utils"
	"github.com/shopspring/decimal"
)

// RawMaterialCost is one supplier's quoted unit price for a raw material.
type RawMaterialCost struct {
	ID            int             `gorm:"primary_key" json:"id"`
	ProductId     int             `gorm:"not null;index" json:"product_id"`
	SupplierId    int             `gorm:"not null;index" json:"supplier_id"`
	CostPerUnit   decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"cost_per_unit"`
	EffectiveDate time.Time       `json:"effective_date"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewRawMaterialCost struct {
	ProductId     int             `json:"product_id" binding:"required"`
	SupplierId    int             `json:"supplier_id" binding:"required"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit" binding:"required"`
	EffectiveDate string          `json:"effective_date"`
}

func (input *NewRawMaterialCost) validate(ctx context.Context) error {
	if input.CostPerUnit.IsNegative() {
		return errors.New("cost_per_unit must not be negative")
	}
	if err := utils.ValidateResourceId[Product](ctx, input.ProductId); err != nil {
		return errors.New("product not found")
	}
	if err := utils.ValidateResourceId[Supplier](ctx, input.SupplierId); err != nil {
		return errors.New("supplier not found")
	}
	return nil
}

func CreateRawMaterialCost(ctx context.Context, input *NewRawMaterialCost) (*RawMaterialCost, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	effectiveDate := time.Now()
	if input.EffectiveDate != "" {
		parsed, err := time.Parse("2006-01-02", input.EffectiveDate)
		if err != nil {
			return nil, errors.New("invalid effective_date format, use YYYY-MM-DD")
		}
		effectiveDate = parsed
	}

	cost := RawMaterialCost{
		ProductId:     input.ProductId,
		SupplierId:    input.SupplierId,
		CostPerUnit:   input.CostPerUnit,
		EffectiveDate: effectiveDate,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&cost).Error; err != nil {
		return nil, err
	}
	return &cost, nil
}

func DeleteRawMaterialCost(ctx context.Context, id int) (*RawMaterialCost, error) {
	cost, err := utils.FetchModel[RawMaterialCost](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&cost).Error; err != nil {
		return nil, err
	}
	return cost, nil
}

func ListRawMaterialCosts(ctx context.Context) ([]*RawMaterialCost, error) {
	return utils.FetchAllModels[RawMaterialCost](ctx)
}
