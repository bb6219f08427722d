package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is an emitted sourcing or replenishment decision. The engine only
// creates pending orders; status transitions belong to a downstream
// fulfillment process and never happen here.
type Order struct {
	ID                    int             `gorm:"primary_key" json:"id"`
	OrderNumber           string          `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	ProductId             int             `gorm:"not null;index" json:"product_id"`
	Quantity              int             `gorm:"not null" json:"quantity"`
	OrderType             OrderType       `gorm:"size:30;not null" json:"order_type"`
	SourceLocationId      int             `gorm:"not null" json:"source_location_id"`
	DestinationLocationId int             `gorm:"not null" json:"destination_location_id"`
	OrderDate             time.Time       `gorm:"not null" json:"order_date"`
	DeliveryDate          *time.Time      `json:"delivery_date"`
	Status                OrderStatus     `gorm:"size:20;not null" json:"status"`
	CalculatedCost        decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"calculated_cost"`
	CostBreakdown         string          `gorm:"type:text" json:"cost_breakdown"`
	OptimizationRunId     int             `gorm:"index" json:"optimization_run_id"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func CreateOrder(db *gorm.DB, order *Order) error {
	return db.Create(order).Error
}

func ListOrders(ctx context.Context) ([]*Order, error) {
	db := config.GetDB()
	var orders []*Order
	err := db.WithContext(ctx).Order("order_date DESC, id DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListRecentOrders returns the n most recent orders, newest first.
func ListRecentOrders(ctx context.Context, n int) ([]*Order, error) {
	db := config.GetDB()
	var orders []*Order
	err := db.WithContext(ctx).Order("order_date DESC, id DESC").Limit(n).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
