package workflow

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/mmdatafocus/supplychain_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HubStockCursor tracks the hub inventory record across sequential CAS
// writes within one cycle. Each successful write bumps the version the
// cursor carries so the next write in the same cycle still succeeds.
type HubStockCursor struct {
	RecordId int
	Version  int
	Stock    int
}

func NewHubStockCursor(pos InventoryPosition) *HubStockCursor {
	return &HubStockCursor{RecordId: pos.RecordId, Version: pos.Version, Stock: pos.CurrentStock}
}

type orderBreakdown struct {
	MaterialCost  string        `json:"material_cost,omitempty"`
	TransportCost string        `json:"transport_cost"`
	Factors       CostBreakdown `json:"factors"`
}

func marshalBreakdown(b orderBreakdown) string {
	payload, err := json.Marshal(b)
	if err != nil {
		return ""
	}
	return string(payload)
}

// EmitSourcingOrder persists a raw material purchase order for the selected
// supplier offer. Hub inventory is left untouched: the order stays pending
// until delivery, which is outside the cycle. A notification to raw storage
// is published after the order is durable; notification failures never
// affect the order.
func EmitSourcingOrder(
	db *gorm.DB,
	logger *logrus.Logger,
	notifier *Notifier,
	runId int,
	offer *SupplierOffer,
	productId int,
	productName string,
	hubLocationId int,
) (*models.Order, error) {

	order := &models.Order{
		OrderNumber:           utils.GenerateDocumentNumber("ORD_RM"),
		ProductId:             productId,
		Quantity:              offer.Quantity,
		OrderType:             models.OrderTypeRawMaterialPurchase,
		SourceLocationId:      offer.OriginLocationId,
		DestinationLocationId: hubLocationId,
		OrderDate:             time.Now(),
		Status:                models.OrderStatusPending,
		CalculatedCost:        offer.TotalCost,
		CostBreakdown: marshalBreakdown(orderBreakdown{
			MaterialCost:  offer.MaterialCost.StringFixed(2),
			TransportCost: offer.TransportCost.StringFixed(2),
			Factors:       offer.Breakdown,
		}),
		OptimizationRunId: runId,
	}
	if err := models.CreateOrder(db, order); err != nil {
		config.LogError(logger, "emitter.go", "EmitSourcingOrder", "CreateOrder", order, err)
		return nil, err
	}

	if notifier != nil {
		notifier.Publish(NotificationEvent{
			Role:    RoleRawStorage,
			Subject: fmt.Sprintf("New Raw Material Order: %s", order.OrderNumber),
			Body: fmt.Sprintf(
				"A new purchase order has been placed.\n\nOrder: %s\nProduct: %s\nQuantity: %d\nSupplier: %s\nTotal Cost: %s\n\nPlease prepare to receive the shipment.",
				order.OrderNumber, productName, offer.Quantity, offer.SupplierName, offer.TotalCost.StringFixed(2)),
		})
	}

	return order, nil
}

// EmitReplenishmentOrder persists one hub-to-store transfer order and lowers
// hub stock by the allocated quantity through a CAS write against the cursor.
func EmitReplenishmentOrder(
	db *gorm.DB,
	logger *logrus.Logger,
	notifier *Notifier,
	runId int,
	allocation StoreAllocation,
	productId int,
	productName string,
	hubLocationId int,
	cursor *HubStockCursor,
) (*models.Order, error) {

	order := &models.Order{
		OrderNumber:           utils.GenerateDocumentNumber("ORD_ST"),
		ProductId:             productId,
		Quantity:              allocation.Quantity,
		OrderType:             models.OrderTypeTransferToStore,
		SourceLocationId:      hubLocationId,
		DestinationLocationId: allocation.StoreLocationId,
		OrderDate:             time.Now(),
		Status:                models.OrderStatusPending,
		CalculatedCost:        allocation.TransportCost,
		CostBreakdown: marshalBreakdown(orderBreakdown{
			TransportCost: allocation.TransportCost.StringFixed(2),
			Factors:       allocation.Breakdown,
		}),
		OptimizationRunId: runId,
	}
	if err := models.CreateOrder(db, order); err != nil {
		config.LogError(logger, "emitter.go", "EmitReplenishmentOrder", "CreateOrder", order, err)
		return nil, err
	}

	newStock := cursor.Stock - allocation.Quantity
	if err := models.UpdateInventoryStockCAS(db, cursor.RecordId, cursor.Version, newStock); err != nil {
		config.LogError(logger, "emitter.go", "EmitReplenishmentOrder", "UpdateInventoryStockCAS", order, err)
		return nil, err
	}
	cursor.Stock = newStock
	cursor.Version++

	if notifier != nil {
		notifier.Publish(NotificationEvent{
			Role:    RoleManufacturing,
			Subject: fmt.Sprintf("New Store Transfer Order: %s", order.OrderNumber),
			Body: fmt.Sprintf(
				"A new transfer order has been placed.\n\nOrder: %s\nProduct: %s\nQuantity: %d\nDestination: %s\nUrgency: %s\nTransport Cost: %s\n\nPlease prepare the shipment.",
				order.OrderNumber, productName, allocation.Quantity, allocation.StoreName, allocation.Urgency, allocation.TransportCost.StringFixed(2)),
		})
	}

	return order, nil
}
