package workflow

import (
	"context"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InventoryKey addresses one (product, location) stock position.
type InventoryKey struct {
	ProductId  int
	LocationId int
}

// InventoryPosition is the snapshot view of one inventory record.
// RecordId == 0 means the record is missing its storage identity and must
// not be written to (the planner's fulfillment gate checks this).
type InventoryPosition struct {
	RecordId     int
	Version      int
	CurrentStock int
}

// CycleSnapshot is the read-only view one optimization cycle works from.
// It is assembled once per cycle and passed explicitly to every component;
// there is no cross-cycle shared mutable state.
//
// Iteration order is load-bearing: StoreIds and Routes preserve the load
// (primary key) order, and the replenishment planner visits stores in
// exactly that order.
type CycleSnapshot struct {
	Locations     []*models.Location
	LocationsById map[int]*models.Location
	Products      []*models.Product
	Inventory     map[InventoryKey]*InventoryPosition
	StoreLimits   map[InventoryKey]*models.StoreLimit
	StoreIds      []int
	Routes        []*models.TransportRoute
	SuppliersById map[int]*models.Supplier
	Suppliers     []*models.Supplier
	MaterialCosts []*models.RawMaterialCost

	// Risk signals for this cycle, filled by GatherRiskSignals.
	Weather    map[int]*models.WeatherObservation
	NewsEvents []*models.NewsEvent
}

func BuildCycleSnapshot(ctx context.Context, db *gorm.DB, logger *logrus.Logger) (*CycleSnapshot, error) {

	snap := &CycleSnapshot{
		LocationsById: make(map[int]*models.Location),
		Inventory:     make(map[InventoryKey]*InventoryPosition),
		StoreLimits:   make(map[InventoryKey]*models.StoreLimit),
		SuppliersById: make(map[int]*models.Supplier),
		Weather:       make(map[int]*models.WeatherObservation),
	}

	if err := db.WithContext(ctx).Order("id").Find(&snap.Locations).Error; err != nil {
		config.LogError(logger, "snapshot.go", "BuildCycleSnapshot", "FindLocations", nil, err)
		return nil, err
	}
	for _, loc := range snap.Locations {
		snap.LocationsById[loc.ID] = loc
		if loc.Type == models.LocationTypeStore {
			snap.StoreIds = append(snap.StoreIds, loc.ID)
		}
	}

	if err := db.WithContext(ctx).Order("id").Find(&snap.Products).Error; err != nil {
		config.LogError(logger, "snapshot.go", "BuildCycleSnapshot", "FindProducts", nil, err)
		return nil, err
	}

	var inventory []*models.InventoryRecord
	if err := db.WithContext(ctx).Order("id").Find(&inventory).Error; err != nil {
		config.LogError(logger, "snapshot.go", "BuildCycleSnapshot", "FindInventoryRecords", nil, err)
		return nil, err
	}
	for _, record := range inventory {
		snap.Inventory[InventoryKey{record.ProductId, record.LocationId}] = &InventoryPosition{
			RecordId:     record.ID,
			Version:      record.Version,
			CurrentStock: record.CurrentStock,
		}
	}

	var limits []*models.StoreLimit
	if err := db.WithContext(ctx).Order("id").Find(&limits).Error; err != nil {
		config.LogError(logger, "snapshot.go", "BuildCycleSnapshot", "FindStoreLimits", nil, err)
		return nil, err
	}
	for _, limit := range limits {
		snap.StoreLimits[InventoryKey{limit.ProductId, limit.LocationId}] = limit
	}

	if err := db.WithContext(ctx).Order("id").Find(&snap.Routes).Error; err != nil {
		config.LogError(logger, "snapshot.go", "BuildCycleSnapshot", "FindTransportRoutes", nil, err)
		return nil, err
	}

	if err := db.WithContext(ctx).Order("id").Find(&snap.Suppliers).Error; err != nil {
		config.LogError(logger, "snapshot.go", "BuildCycleSnapshot", "FindSuppliers", nil, err)
		return nil, err
	}
	for _, supplier := range snap.Suppliers {
		snap.SuppliersById[supplier.ID] = supplier
	}

	if err := db.WithContext(ctx).Order("id").Find(&snap.MaterialCosts).Error; err != nil {
		config.LogError(logger, "snapshot.go", "BuildCycleSnapshot", "FindRawMaterialCosts", nil, err)
		return nil, err
	}

	return snap, nil
}

// Position returns the snapshot stock position, or a zero position (no
// storage identity, zero stock) when the record does not exist.
func (s *CycleSnapshot) Position(productId int, locationId int) InventoryPosition {
	if pos, ok := s.Inventory[InventoryKey{productId, locationId}]; ok {
		return *pos
	}
	return InventoryPosition{}
}

// RouteFor returns the first route loaded for the ordered pair, nil when the
// pair is not connected.
func (s *CycleSnapshot) RouteFor(originId int, destinationId int) *models.TransportRoute {
	for _, route := range s.Routes {
		if route.OriginLocationId == originId && route.DestinationLocationId == destinationId {
			return route
		}
	}
	return nil
}

// ManufacturingLocationId returns the hub: the first manufacturing location
// in load order.
func (s *CycleSnapshot) ManufacturingLocationId() (int, bool) {
	for _, loc := range s.Locations {
		if loc.Type == models.LocationTypeManufacturing {
			return loc.ID, true
		}
	}
	return 0, false
}

func (s *CycleSnapshot) LocationName(id int) string {
	if loc, ok := s.LocationsById[id]; ok {
		return loc.Name
	}
	return "Unknown"
}

func (s *CycleSnapshot) ProductName(id int) string {
	for _, p := range s.Products {
		if p.ID == id {
			return p.Name
		}
	}
	return "Unknown"
}

// ProductsOfKind returns products of the given kind in load order.
func (s *CycleSnapshot) ProductsOfKind(kind models.ProductKind) []*models.Product {
	var result []*models.Product
	for _, p := range s.Products {
		if p.Kind == kind {
			result = append(result, p)
		}
	}
	return result
}
