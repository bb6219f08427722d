package workflow

import (
	"testing"

	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/shopspring/decimal"
)

const (
	testHubId             = 1
	testSiliconId         = 10
	testSupplierA         = 100
	testSupplierB         = 101
	testSupplierALocation = 20
	testSupplierBLocation = 21
)

func sourcingSnapshot() *CycleSnapshot {
	snap := &CycleSnapshot{
		LocationsById: map[int]*models.Location{},
		Inventory:     map[InventoryKey]*InventoryPosition{},
		StoreLimits:   map[InventoryKey]*models.StoreLimit{},
		SuppliersById: map[int]*models.Supplier{},
		Weather:       map[int]*models.WeatherObservation{},
	}

	for _, loc := range []*models.Location{
		{ID: testHubId, Name: "Paris", Type: models.LocationTypeManufacturing},
		{ID: testSupplierALocation, Name: "Lille", Type: models.LocationTypeSupplier},
		{ID: testSupplierBLocation, Name: "Nantes", Type: models.LocationTypeSupplier},
	} {
		snap.Locations = append(snap.Locations, loc)
		snap.LocationsById[loc.ID] = loc
	}

	snap.Products = []*models.Product{
		{ID: testSiliconId, Name: "Silicon", Kind: models.ProductKindRawMaterial},
	}

	for _, s := range []*models.Supplier{
		{ID: testSupplierA, Name: "Lille Silicon Works", LocationId: testSupplierALocation},
		{ID: testSupplierB, Name: "Nantes Materials", LocationId: testSupplierBLocation},
	} {
		snap.Suppliers = append(snap.Suppliers, s)
		snap.SuppliersById[s.ID] = s
	}

	snap.Routes = []*models.TransportRoute{
		{ID: 1, OriginLocationId: testSupplierALocation, DestinationLocationId: testHubId, BaseCostPerKg: decimal.RequireFromString("2.00")},
		{ID: 2, OriginLocationId: testSupplierBLocation, DestinationLocationId: testHubId, BaseCostPerKg: decimal.RequireFromString("2.00")},
	}

	snap.MaterialCosts = []*models.RawMaterialCost{
		{ID: 1, ProductId: testSiliconId, SupplierId: testSupplierA, CostPerUnit: decimal.RequireFromString("10.00")},
		{ID: 2, ProductId: testSiliconId, SupplierId: testSupplierB, CostPerUnit: decimal.RequireFromString("10.00")},
	}

	return snap
}

func TestReorderQuantity(t *testing.T) {
	cases := []struct {
		stock int
		want  int
	}{
		{0, 100},
		{30, 70},
		{49, 51},
		{50, 0},
		{60, 0},
		{100, 0},
	}
	for _, c := range cases {
		if got := ReorderQuantity(c.stock); got != c.want {
			t.Errorf("ReorderQuantity(%d) = %d, want %d", c.stock, got, c.want)
		}
	}
}

func TestSelectSupplierPicksCheapestTotal(t *testing.T) {
	snap := sourcingSnapshot()
	snap.MaterialCosts[1].CostPerUnit = decimal.RequireFromString("9.40")

	offer := SelectSupplier(testSiliconId, 70, testHubId, snap)
	if offer == nil {
		t.Fatal("expected an offer")
	}
	if offer.SupplierId != testSupplierB {
		t.Fatalf("selected supplier %d, want %d", offer.SupplierId, testSupplierB)
	}
	// 70 * 9.40 material + 70 * 2.00 transport
	wantTotal := decimal.RequireFromString("798.00")
	if !offer.TotalCost.Equal(wantTotal) {
		t.Fatalf("total = %s, want %s", offer.TotalCost, wantTotal)
	}
}

func TestSelectSupplierTieBreaksToLowerId(t *testing.T) {
	snap := sourcingSnapshot()
	// Equal costs both ways; list order has supplier A first but reversing
	// the cost rows must not change the winner.
	snap.MaterialCosts[0], snap.MaterialCosts[1] = snap.MaterialCosts[1], snap.MaterialCosts[0]

	offer := SelectSupplier(testSiliconId, 50, testHubId, snap)
	if offer == nil {
		t.Fatal("expected an offer")
	}
	if offer.SupplierId != testSupplierA {
		t.Fatalf("tie should break to lower supplier id: got %d", offer.SupplierId)
	}
}

func TestSelectSupplierExcludesUnroutedSuppliers(t *testing.T) {
	snap := sourcingSnapshot()
	snap.MaterialCosts[1].CostPerUnit = decimal.RequireFromString("1.00")
	// Drop the cheap supplier's route; it must be excluded, not substituted.
	snap.Routes = snap.Routes[:1]

	offer := SelectSupplier(testSiliconId, 70, testHubId, snap)
	if offer == nil {
		t.Fatal("expected the routed supplier to win")
	}
	if offer.SupplierId != testSupplierA {
		t.Fatalf("selected unrouted supplier %d", offer.SupplierId)
	}
}

func TestSelectSupplierNoCandidates(t *testing.T) {
	snap := sourcingSnapshot()
	snap.Routes = nil
	if offer := SelectSupplier(testSiliconId, 70, testHubId, snap); offer != nil {
		t.Fatalf("expected nil offer, got supplier %d", offer.SupplierId)
	}

	snap = sourcingSnapshot()
	snap.MaterialCosts = nil
	if offer := SelectSupplier(testSiliconId, 70, testHubId, snap); offer != nil {
		t.Fatalf("expected nil offer without material costs, got supplier %d", offer.SupplierId)
	}
}

func TestSelectSupplierAppliesOriginWeather(t *testing.T) {
	snap := sourcingSnapshot()
	snap.MaterialCosts = snap.MaterialCosts[:1]
	snap.Weather = weatherAt(testSupplierALocation, "Storm")

	offer := SelectSupplier(testSiliconId, 10, testHubId, snap)
	if offer == nil {
		t.Fatal("expected an offer")
	}
	// transport: 10 * 2.00 * 1.10 = 22.00
	want := decimal.RequireFromString("22.00")
	if !offer.TransportCost.Equal(want) {
		t.Fatalf("transport = %s, want %s", offer.TransportCost, want)
	}
	if offer.Breakdown.WeatherImpact.IsZero() {
		t.Fatal("breakdown should record the weather surcharge")
	}
}
