// seed-demo loads the demo network: a Paris manufacturing plant, three
// stores, two silicon suppliers, routes, costs and starting stock. Existing
// rows are reused by name so the command is safe to rerun.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/shopspring/decimal"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	locations := map[string]int{}
	for _, row := range []struct {
		name string
		typ  models.LocationType
	}{
		{"Paris", models.LocationTypeManufacturing},
		{"Lyon", models.LocationTypeStore},
		{"Rouen", models.LocationTypeStore},
		{"Marseille", models.LocationTypeStore},
		{"Lille", models.LocationTypeSupplier},
		{"Nantes", models.LocationTypeSupplier},
	} {
		id, err := ensureLocation(ctx, row.name, row.typ)
		if err != nil {
			fail("location %s: %v", row.name, err)
		}
		locations[row.name] = id
	}

	products := map[string]int{}
	for _, row := range []struct {
		name string
		unit string
		kind models.ProductKind
	}{
		{"Silicon", "kg", models.ProductKindRawMaterial},
		{"Conductor", "unit", models.ProductKindManufactured},
	} {
		id, err := ensureProduct(ctx, row.name, row.unit, row.kind)
		if err != nil {
			fail("product %s: %v", row.name, err)
		}
		products[row.name] = id
	}

	suppliers := map[string]int{}
	for _, row := range []struct {
		name  string
		city  string
		email string
	}{
		{"Lille Silicon Works", "Lille", "orders@lille-silicon.example"},
		{"Nantes Materials SARL", "Nantes", "sales@nantes-materials.example"},
	} {
		id, err := ensureSupplier(ctx, row.name, locations[row.city], row.email)
		if err != nil {
			fail("supplier %s: %v", row.name, err)
		}
		suppliers[row.name] = id
	}

	for _, route := range []struct {
		origin, destination string
		costPerKg           string
	}{
		{"Lille", "Paris", "2.50"},
		{"Nantes", "Paris", "3.10"},
		{"Paris", "Lyon", "1.80"},
		{"Paris", "Rouen", "1.20"},
		{"Paris", "Marseille", "2.90"},
	} {
		if err := ensureRoute(ctx, locations[route.origin], locations[route.destination], route.costPerKg); err != nil {
			fail("route %s->%s: %v", route.origin, route.destination, err)
		}
	}

	for _, cost := range []struct {
		supplier string
		perUnit  string
	}{
		{"Lille Silicon Works", "10.00"},
		{"Nantes Materials SARL", "9.40"},
	} {
		if err := ensureMaterialCost(ctx, products["Silicon"], suppliers[cost.supplier], cost.perUnit); err != nil {
			fail("material cost %s: %v", cost.supplier, err)
		}
	}

	for _, stock := range []struct {
		product, city string
		qty           int
	}{
		{"Silicon", "Paris", 30},
		{"Conductor", "Paris", 120},
		{"Conductor", "Lyon", 15},
		{"Conductor", "Rouen", 40},
		{"Conductor", "Marseille", 8},
	} {
		if err := ensureInventory(ctx, products[stock.product], locations[stock.city], stock.qty); err != nil {
			fail("inventory %s@%s: %v", stock.product, stock.city, err)
		}
	}

	for _, limit := range []struct {
		city     string
		base, mx int
	}{
		{"Lyon", 20, 50},
		{"Rouen", 20, 50},
		{"Marseille", 20, 50},
	} {
		if err := ensureStoreLimit(ctx, products["Conductor"], locations[limit.city], limit.base, limit.mx); err != nil {
			fail("store limit %s: %v", limit.city, err)
		}
	}

	fmt.Println("demo data seeded")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func alreadyExists(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already exists")
}

func ensureLocation(ctx context.Context, name string, typ models.LocationType) (int, error) {
	created, err := models.CreateLocation(ctx, &models.NewLocation{Name: name, Type: typ})
	if err == nil {
		return created.ID, nil
	}
	if !alreadyExists(err) {
		return 0, err
	}
	existing, err := findLocationByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

func findLocationByName(ctx context.Context, name string) (*models.Location, error) {
	all, err := models.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	for _, loc := range all {
		if loc.Name == name {
			return loc, nil
		}
	}
	return nil, fmt.Errorf("location %q not found", name)
}

func ensureProduct(ctx context.Context, name string, unit string, kind models.ProductKind) (int, error) {
	created, err := models.CreateProduct(ctx, &models.NewProduct{Name: name, Unit: unit, Kind: kind})
	if err == nil {
		return created.ID, nil
	}
	if !alreadyExists(err) {
		return 0, err
	}
	all, listErr := models.ListProducts(ctx)
	if listErr != nil {
		return 0, listErr
	}
	for _, p := range all {
		if p.Name == name {
			return p.ID, nil
		}
	}
	return 0, err
}

func ensureSupplier(ctx context.Context, name string, locationId int, email string) (int, error) {
	created, err := models.CreateSupplier(ctx, &models.NewSupplier{
		Name:         name,
		LocationId:   locationId,
		ContactEmail: email,
	})
	if err == nil {
		return created.ID, nil
	}
	if !alreadyExists(err) {
		return 0, err
	}
	all, listErr := models.ListSuppliers(ctx)
	if listErr != nil {
		return 0, listErr
	}
	for _, s := range all {
		if s.Name == name {
			return s.ID, nil
		}
	}
	return 0, err
}

func ensureRoute(ctx context.Context, originId int, destinationId int, costPerKg string) error {
	_, err := models.CreateTransportRoute(ctx, &models.NewTransportRoute{
		OriginLocationId:      originId,
		DestinationLocationId: destinationId,
		BaseCostPerKg:         decimal.RequireFromString(costPerKg),
	})
	if alreadyExists(err) {
		return nil
	}
	return err
}

func ensureMaterialCost(ctx context.Context, productId int, supplierId int, costPerUnit string) error {
	_, err := models.CreateRawMaterialCost(ctx, &models.NewRawMaterialCost{
		ProductId:     productId,
		SupplierId:    supplierId,
		CostPerUnit:   decimal.RequireFromString(costPerUnit),
		EffectiveDate: "2026-01-01",
	})
	if alreadyExists(err) {
		return nil
	}
	return err
}

func ensureInventory(ctx context.Context, productId int, locationId int, stock int) error {
	_, err := models.CreateInventoryRecord(ctx, &models.NewInventoryRecord{
		ProductId:    productId,
		LocationId:   locationId,
		CurrentStock: stock,
	})
	if alreadyExists(err) {
		return nil
	}
	return err
}

func ensureStoreLimit(ctx context.Context, productId int, locationId int, base int, max int) error {
	_, err := models.CreateStoreLimit(ctx, &models.NewStoreLimit{
		ProductId:  productId,
		LocationId: locationId,
		BaseLimit:  base,
		MaxLimit:   max,
	})
	if alreadyExists(err) {
		return nil
	}
	return err
}
