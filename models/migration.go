package models

import (
	"log"

	"github.com/mmdatafocus/supplychain_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Location{}, &Product{},
		&InventoryRecord{}, &StoreLimit{},
		&TransportRoute{}, &Supplier{}, &RawMaterialCost{},
		&WeatherObservation{}, &NewsEvent{},
		&Order{}, &OptimizationRun{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
