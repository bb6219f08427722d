package workflow

import (
	"github.com/shopspring/decimal"
)

// Order-up-to policy for raw materials at the hub: reorder when stock drops
// below ReorderPoint, ordering back up to ReorderCeiling.
const (
	ReorderPoint   = 50
	ReorderCeiling = 100
)

// ReorderQuantity returns how much to order for the given hub stock, zero
// when stock is at or above the reorder point.
func ReorderQuantity(currentStock int) int {
	if currentStock < ReorderPoint {
		return ReorderCeiling - currentStock
	}
	return 0
}

// SupplierOffer is the winning sourcing candidate: material plus
// risk-adjusted transport for the full required quantity.
type SupplierOffer struct {
	SupplierId       int
	SupplierName     string
	OriginLocationId int
	Quantity         int
	MaterialCost     decimal.Decimal
	TransportCost    decimal.Decimal
	TotalCost        decimal.Decimal
	Breakdown        CostBreakdown
}

// SelectSupplier finds the minimum-total-cost supplier for the product and
// quantity, delivered to destinationId. Candidates need both a raw material
// cost entry and a route from the supplier's location to the destination;
// suppliers lacking a route are excluded, not substituted. Cost ties break
// to the lower supplier id so selection does not depend on input order.
// Returns nil when no candidate is feasible; the caller must treat that as
// "no feasible supplier", not an error.
func SelectSupplier(productId int, quantity int, destinationId int, snap *CycleSnapshot) *SupplierOffer {

	qty := decimal.NewFromInt(int64(quantity))
	var best *SupplierOffer

	for _, cost := range snap.MaterialCosts {
		if cost.ProductId != productId {
			continue
		}
		supplier, ok := snap.SuppliersById[cost.SupplierId]
		if !ok || supplier.LocationId == 0 {
			continue
		}
		route := snap.RouteFor(supplier.LocationId, destinationId)
		if route == nil {
			continue
		}

		adjustedPerUnit, breakdown := AdjustTransportCost(
			route.BaseCostPerKg, supplier.LocationId, snap.Weather, snap.NewsEvents, SourcingWeatherSurcharge)

		materialCost := cost.CostPerUnit.Mul(qty)
		transportCost := adjustedPerUnit.Mul(qty)
		totalCost := materialCost.Add(transportCost)

		offer := &SupplierOffer{
			SupplierId:       supplier.ID,
			SupplierName:     supplier.Name,
			OriginLocationId: supplier.LocationId,
			Quantity:         quantity,
			MaterialCost:     materialCost,
			TransportCost:    transportCost,
			TotalCost:        totalCost,
			Breakdown:        breakdown,
		}

		if best == nil ||
			totalCost.LessThan(best.TotalCost) ||
			(totalCost.Equal(best.TotalCost) && offer.SupplierId < best.SupplierId) {
			best = offer
		}
	}

	return best
}
