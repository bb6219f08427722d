package workflow

import (
	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/shopspring/decimal"
)

// StoreAllocation is one accepted hub-to-store transfer decision.
type StoreAllocation struct {
	StoreLocationId int
	StoreName       string
	Quantity        int
	CurrentStock    int
	Urgency         models.UrgencyLevel
	TransportCost   decimal.Decimal
	Breakdown       CostBreakdown
}

// PlanReplenishment greedily allocates hub stock of a manufactured product
// to stores. Stores are visited in snapshot enumeration order, NOT sorted by
// urgency or need: urgency is informational only, and the running hub stock
// counter makes outcomes order-dependent. A store is allocated only when the
// remaining hub stock covers its full needed quantity and the hub inventory
// record has a valid storage identity; otherwise it is skipped with a log
// entry. No partial fulfillment, no backorders, no re-ranking.
//
// Returns the accepted allocations in visit order and the final hub stock.
func PlanReplenishment(productId int, hubLocationId int, snap *CycleSnapshot, log *RunLog) ([]StoreAllocation, int) {

	hubPosition := snap.Position(productId, hubLocationId)
	hubStock := hubPosition.CurrentStock

	log.Logf("Manufacturing plant (%s) has %d units of %s.",
		snap.LocationName(hubLocationId), hubStock, snap.ProductName(productId))

	var allocations []StoreAllocation

	for _, storeId := range snap.StoreIds {
		limit, ok := snap.StoreLimits[InventoryKey{productId, storeId}]
		if !ok {
			continue
		}
		currentStock := snap.Position(productId, storeId).CurrentStock
		if currentStock >= limit.MaxLimit {
			continue
		}

		needed := limit.MaxLimit - currentStock
		urgency := models.UrgencyMedium
		if currentStock < limit.BaseLimit {
			urgency = models.UrgencyHigh
		}
		log.Logf("Store %s needs %d units (current: %d, base_limit: %d, max_limit: %d). Urgency: %s.",
			snap.LocationName(storeId), needed, currentStock, limit.BaseLimit, limit.MaxLimit, urgency)

		route := snap.RouteFor(hubLocationId, storeId)
		if route == nil {
			log.Logf("No route from manufacturing to %s; skipping store.", snap.LocationName(storeId))
			continue
		}

		adjustedPerUnit, breakdown := AdjustTransportCost(
			route.BaseCostPerKg, storeId, snap.Weather, snap.NewsEvents, ReplenishmentWeatherSurcharge)
		transportCost := adjustedPerUnit.Mul(decimal.NewFromInt(int64(needed)))
		log.Logf("Cost from manufacturing to %s: %s", snap.LocationName(storeId), transportCost.StringFixed(2))

		if hubStock < needed || hubPosition.RecordId == 0 {
			log.Logf("Cannot fulfill order for %s (needed %d) from manufacturing (stock: %d).",
				snap.LocationName(storeId), needed, hubStock)
			continue
		}

		hubStock -= needed
		allocations = append(allocations, StoreAllocation{
			StoreLocationId: storeId,
			StoreName:       snap.LocationName(storeId),
			Quantity:        needed,
			CurrentStock:    currentStock,
			Urgency:         urgency,
			TransportCost:   transportCost,
			Breakdown:       breakdown,
		})
	}

	return allocations, hubStock
}
