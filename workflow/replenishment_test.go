package workflow

import (
	"strings"
	"testing"

	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/shopspring/decimal"
)

const (
	testConductorId    = 11
	testStoreLyon      = 2
	testStoreRouen     = 3
	testStoreMarseille = 4
)

func replenishmentSnapshot(hubStock int) *CycleSnapshot {
	snap := &CycleSnapshot{
		LocationsById: map[int]*models.Location{},
		Inventory:     map[InventoryKey]*InventoryPosition{},
		StoreLimits:   map[InventoryKey]*models.StoreLimit{},
		SuppliersById: map[int]*models.Supplier{},
		Weather:       map[int]*models.WeatherObservation{},
	}

	for _, loc := range []*models.Location{
		{ID: testHubId, Name: "Paris", Type: models.LocationTypeManufacturing},
		{ID: testStoreLyon, Name: "Lyon", Type: models.LocationTypeStore},
		{ID: testStoreRouen, Name: "Rouen", Type: models.LocationTypeStore},
		{ID: testStoreMarseille, Name: "Marseille", Type: models.LocationTypeStore},
	} {
		snap.Locations = append(snap.Locations, loc)
		snap.LocationsById[loc.ID] = loc
		if loc.Type == models.LocationTypeStore {
			snap.StoreIds = append(snap.StoreIds, loc.ID)
		}
	}

	snap.Products = []*models.Product{
		{ID: testConductorId, Name: "Conductor", Kind: models.ProductKindManufactured},
	}

	snap.Inventory[InventoryKey{testConductorId, testHubId}] = &InventoryPosition{
		RecordId: 1, Version: 0, CurrentStock: hubStock,
	}

	for i, storeId := range snap.StoreIds {
		snap.Routes = append(snap.Routes, &models.TransportRoute{
			ID:                    10 + i,
			OriginLocationId:      testHubId,
			DestinationLocationId: storeId,
			BaseCostPerKg:         decimal.RequireFromString("1.50"),
		})
		snap.StoreLimits[InventoryKey{testConductorId, storeId}] = &models.StoreLimit{
			ProductId:  testConductorId,
			LocationId: storeId,
			BaseLimit:  20,
			MaxLimit:   50,
		}
	}

	return snap
}

func setStoreStock(snap *CycleSnapshot, storeId int, stock int) {
	snap.Inventory[InventoryKey{testConductorId, storeId}] = &InventoryPosition{
		RecordId: 100 + storeId, Version: 0, CurrentStock: stock,
	}
}

func TestPlanReplenishmentConservesHubStock(t *testing.T) {
	snap := replenishmentSnapshot(120)
	setStoreStock(snap, testStoreLyon, 15)
	setStoreStock(snap, testStoreRouen, 40)
	setStoreStock(snap, testStoreMarseille, 8)

	allocations, final := PlanReplenishment(testConductorId, testHubId, snap, NewRunLog(nil))

	total := 0
	for _, a := range allocations {
		total += a.Quantity
	}
	if final != 120-total {
		t.Fatalf("final hub stock %d, want %d", final, 120-total)
	}
	// 35 + 10 + 42 = 87
	if total != 87 {
		t.Fatalf("total allocated %d, want 87", total)
	}
}

func TestPlanReplenishmentIsOrderDependent(t *testing.T) {
	snap := replenishmentSnapshot(80)
	setStoreStock(snap, testStoreLyon, 0)       // needs 50
	setStoreStock(snap, testStoreRouen, 0)      // needs 50, must be starved
	setStoreStock(snap, testStoreMarseille, 50) // at max, skipped

	log := NewRunLog(nil)
	allocations, final := PlanReplenishment(testConductorId, testHubId, snap, log)

	if len(allocations) != 1 {
		t.Fatalf("got %d allocations, want 1", len(allocations))
	}
	if allocations[0].StoreLocationId != testStoreLyon {
		t.Fatalf("first store in snapshot order should win, got %d", allocations[0].StoreLocationId)
	}
	if final != 30 {
		t.Fatalf("final hub stock %d, want 30", final)
	}

	found := false
	for _, line := range log.Lines() {
		if strings.Contains(line, "Cannot fulfill") && strings.Contains(line, "Rouen") {
			found = true
		}
	}
	if !found {
		t.Fatal("starved store should be logged as unfulfillable")
	}

	// Reversing the visitation order flips which store is served.
	for i, j := 0, len(snap.StoreIds)-1; i < j; i, j = i+1, j-1 {
		snap.StoreIds[i], snap.StoreIds[j] = snap.StoreIds[j], snap.StoreIds[i]
	}
	allocations, final = PlanReplenishment(testConductorId, testHubId, snap, NewRunLog(nil))
	if len(allocations) != 1 {
		t.Fatalf("reversed order: got %d allocations, want 1", len(allocations))
	}
	if allocations[0].StoreLocationId != testStoreRouen {
		t.Fatalf("reversed order: Rouen should win, got %d", allocations[0].StoreLocationId)
	}
	if final != 30 {
		t.Fatalf("reversed order: final hub stock %d, want 30", final)
	}
}

func TestPlanReplenishmentUrgency(t *testing.T) {
	snap := replenishmentSnapshot(200)
	setStoreStock(snap, testStoreLyon, 10)  // below base -> High
	setStoreStock(snap, testStoreRouen, 30) // between base and max -> Medium
	setStoreStock(snap, testStoreMarseille, 50)

	allocations, _ := PlanReplenishment(testConductorId, testHubId, snap, NewRunLog(nil))
	if len(allocations) != 2 {
		t.Fatalf("got %d allocations, want 2", len(allocations))
	}
	if allocations[0].Urgency != models.UrgencyHigh {
		t.Errorf("Lyon urgency = %s, want High", allocations[0].Urgency)
	}
	if allocations[1].Urgency != models.UrgencyMedium {
		t.Errorf("Rouen urgency = %s, want Medium", allocations[1].Urgency)
	}
}

func TestPlanReplenishmentSkipsUnroutedStore(t *testing.T) {
	snap := replenishmentSnapshot(200)
	setStoreStock(snap, testStoreLyon, 0)
	setStoreStock(snap, testStoreRouen, 0)
	setStoreStock(snap, testStoreMarseille, 50)

	// Remove Lyon's route; its stock need must not consume hub stock.
	var routes []*models.TransportRoute
	for _, r := range snap.Routes {
		if r.DestinationLocationId != testStoreLyon {
			routes = append(routes, r)
		}
	}
	snap.Routes = routes

	allocations, final := PlanReplenishment(testConductorId, testHubId, snap, NewRunLog(nil))
	if len(allocations) != 1 || allocations[0].StoreLocationId != testStoreRouen {
		t.Fatalf("expected only Rouen allocated, got %+v", allocations)
	}
	if final != 150 {
		t.Fatalf("final hub stock %d, want 150", final)
	}
}

func TestPlanReplenishmentRequiresHubRecordIdentity(t *testing.T) {
	snap := replenishmentSnapshot(200)
	setStoreStock(snap, testStoreLyon, 0)
	// Hub stock present but record id missing: nothing may be emitted.
	snap.Inventory[InventoryKey{testConductorId, testHubId}].RecordId = 0

	allocations, final := PlanReplenishment(testConductorId, testHubId, snap, NewRunLog(nil))
	if len(allocations) != 0 {
		t.Fatalf("expected no allocations without a hub record, got %d", len(allocations))
	}
	if final != 200 {
		t.Fatalf("hub stock must be unchanged, got %d", final)
	}
}

func TestPlanReplenishmentAppliesDestinationWeather(t *testing.T) {
	snap := replenishmentSnapshot(200)
	setStoreStock(snap, testStoreLyon, 40) // needs 10
	setStoreStock(snap, testStoreRouen, 50)
	setStoreStock(snap, testStoreMarseille, 50)
	snap.Weather = weatherAt(testStoreLyon, "Light Rain")

	allocations, _ := PlanReplenishment(testConductorId, testHubId, snap, NewRunLog(nil))
	if len(allocations) != 1 {
		t.Fatalf("got %d allocations, want 1", len(allocations))
	}
	// 10 * 1.50 * 1.15 = 17.25
	want := decimal.RequireFromString("17.25")
	if !allocations[0].TransportCost.Equal(want) {
		t.Fatalf("transport = %s, want %s", allocations[0].TransportCost, want)
	}
}
