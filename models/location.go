package models

import (
	"errors"
	"time"

	"context"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/utils"
)

type Location struct {
	ID        int          `gorm:"primary_key" json:"id"`
	Name      string       `gorm:"size:100;not null" json:"name" binding:"required"`
	Type      LocationType `gorm:"size:20;not null;index" json:"type"`
	Latitude  *float64     `json:"latitude"`
	Longitude *float64     `json:"longitude"`
	City      string       `gorm:"size:100" json:"city"`
	Country   string       `gorm:"size:100" json:"country"`
	IsActive  *bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewLocation struct {
	Name      string       `json:"name" binding:"required"`
	Type      LocationType `json:"type" binding:"required,oneof=manufacturing store supplier"`
	Latitude  *float64     `json:"latitude"`
	Longitude *float64     `json:"longitude"`
	City      string       `json:"city"`
	Country   string       `json:"country"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewLocation) validate(ctx context.Context, id int) error {
	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&Location{}).
		Where("name = ? AND id <> ?", input.Name, id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("location name already exists")
	}
	return nil
}

func CreateLocation(ctx context.Context, input *NewLocation) (*Location, error) {

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	location := Location{
		Name:      input.Name,
		Type:      input.Type,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		City:      input.City,
		Country:   input.Country,
		IsActive:  utils.NewTrue(),
	}

	// db action
	db := config.GetDB()
	err := db.WithContext(ctx).Create(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func UpdateLocation(ctx context.Context, id int, input *NewLocation) (*Location, error) {

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	location, err := utils.FetchModel[Location](ctx, id)
	if err != nil {
		return nil, err
	}

	// db action
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&location).Updates(map[string]interface{}{
		"Name":      input.Name,
		"Type":      input.Type,
		"Latitude":  input.Latitude,
		"Longitude": input.Longitude,
		"City":      input.City,
		"Country":   input.Country,
	}).Error
	if err != nil {
		return nil, err
	}
	utils.InvalidateRedis[Location](id)

	return location, nil
}

func DeleteLocation(ctx context.Context, id int) (*Location, error) {

	db := config.GetDB()
	result, err := utils.FetchModel[Location](ctx, id)
	if err != nil {
		return nil, err
	}

	// check if location still holds stock
	var count int64
	if err := db.WithContext(ctx).Model(&InventoryRecord{}).
		Where("location_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("location has inventory")
	}

	// db action
	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	utils.InvalidateRedis[Location](id)
	return result, nil
}

func GetLocation(ctx context.Context, id int) (*Location, error) {
	return GetResource[Location](ctx, id)
}

func ListLocations(ctx context.Context) ([]*Location, error) {
	return utils.FetchAllModels[Location](ctx)
}
