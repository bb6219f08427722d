package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/utils"
	"github.com/shopspring/decimal"
)

// TransportRoute carries the base transport cost for one ordered
// (origin, destination) pair. When duplicates exist the first route in load
// order wins; creation rejects duplicates to keep that case theoretical.
type TransportRoute struct {
	ID                    int             `gorm:"primary_key" json:"id"`
	OriginLocationId      int             `gorm:"not null;index" json:"origin_location_id"`
	DestinationLocationId int             `gorm:"not null;index" json:"destination_location_id"`
	BaseCostPerKg         decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"base_cost_per_kg"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTransportRoute struct {
	OriginLocationId      int             `json:"origin_location_id" binding:"required"`
	DestinationLocationId int             `json:"destination_location_id" binding:"required"`
	BaseCostPerKg         decimal.Decimal `json:"base_cost_per_kg" binding:"required"`
}

func (input *NewTransportRoute) validate(ctx context.Context) error {
	if input.OriginLocationId == input.DestinationLocationId {
		return errors.New("origin and destination must differ")
	}
	if input.BaseCostPerKg.IsNegative() {
		return errors.New("base_cost_per_kg must not be negative")
	}
	if err := utils.ValidateResourceId[Location](ctx, input.OriginLocationId); err != nil {
		return errors.New("origin location not found")
	}
	if err := utils.ValidateResourceId[Location](ctx, input.DestinationLocationId); err != nil {
		return errors.New("destination location not found")
	}
	return nil
}

func CreateTransportRoute(ctx context.Context, input *NewTransportRoute) (*TransportRoute, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&TransportRoute{}).
		Where("origin_location_id = ? AND destination_location_id = ?",
			input.OriginLocationId, input.DestinationLocationId).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("route between these locations already exists")
	}

	route := TransportRoute{
		OriginLocationId:      input.OriginLocationId,
		DestinationLocationId: input.DestinationLocationId,
		BaseCostPerKg:         input.BaseCostPerKg,
	}
	if err := db.WithContext(ctx).Create(&route).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func DeleteTransportRoute(ctx context.Context, id int) (*TransportRoute, error) {
	route, err := utils.FetchModel[TransportRoute](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&route).Error; err != nil {
		return nil, err
	}
	return route, nil
}

func ListTransportRoutes(ctx context.Context) ([]*TransportRoute, error) {
	return utils.FetchAllModels[TransportRoute](ctx)
}
