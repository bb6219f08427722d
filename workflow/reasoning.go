package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/sirupsen/logrus"
)

// BuildAnalysisPrompt serializes the cycle snapshot into the advisory
// analysis prompt. The text is descriptive only: the generator's answer is
// recorded verbatim as AgentReasoning and never drives a decision.
func BuildAnalysisPrompt(snap *CycleSnapshot) string {
	var b strings.Builder

	b.WriteString("You are a supply chain analyst. Review the current network state and summarize the key risks and the actions you would expect an automated replenishment system to take.\n\n")

	b.WriteString("Locations:\n")
	for _, loc := range snap.Locations {
		b.WriteString(fmt.Sprintf("- %s (%s)\n", loc.Name, loc.Type))
	}

	b.WriteString("\nInventory:\n")
	for _, loc := range snap.Locations {
		for _, p := range snap.Products {
			pos, ok := snap.Inventory[InventoryKey{p.ID, loc.ID}]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("- %s at %s: %d units\n", p.Name, loc.Name, pos.CurrentStock))
		}
	}

	b.WriteString("\nStore limits:\n")
	for _, storeId := range snap.StoreIds {
		for _, p := range snap.Products {
			limit, ok := snap.StoreLimits[InventoryKey{p.ID, storeId}]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("- %s at %s: base %d, max %d\n",
				p.Name, snap.LocationName(storeId), limit.BaseLimit, limit.MaxLimit))
		}
	}

	if len(snap.Routes) > 0 {
		b.WriteString("\nTransport routes:\n")
		for _, route := range snap.Routes {
			b.WriteString(fmt.Sprintf("- %s -> %s: %s/kg\n",
				snap.LocationName(route.OriginLocationId),
				snap.LocationName(route.DestinationLocationId),
				route.BaseCostPerKg.StringFixed(2)))
		}
	}

	if len(snap.MaterialCosts) > 0 {
		b.WriteString("\nSupplier quotes:\n")
		for _, cost := range snap.MaterialCosts {
			supplierName := "unknown supplier"
			if supplier, ok := snap.SuppliersById[cost.SupplierId]; ok {
				supplierName = supplier.Name
			}
			b.WriteString(fmt.Sprintf("- %s for %s: %s/unit\n",
				supplierName, snap.ProductName(cost.ProductId), cost.CostPerUnit.StringFixed(2)))
		}
	}

	if len(snap.Weather) > 0 {
		b.WriteString("\nWeather:\n")
		for _, loc := range snap.Locations {
			obs, ok := snap.Weather[loc.ID]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("- %s: %s, %.1f°C\n", loc.Name, obs.Conditions, obs.TemperatureCelsius))
		}
	}

	if len(snap.NewsEvents) > 0 {
		b.WriteString("\nDisruption events:\n")
		for _, event := range snap.NewsEvents {
			scope := "global"
			if event.LocationId != nil {
				scope = snap.LocationName(*event.LocationId)
			}
			b.WriteString(fmt.Sprintf("- %s (impact ×%s, %s): %s\n",
				event.Title, event.ImpactFactor.String(), scope, event.Description))
		}
	}

	b.WriteString("\nRespond with a short analysis in plain prose.")
	return b.String()
}

// AnalyzeAndPlan produces the advisory reasoning text for the run record.
// Failures are absorbed into the returned text so the cycle always proceeds
// to execution.
func AnalyzeAndPlan(ctx context.Context, logger *logrus.Logger, gen TextGenerator, snap *CycleSnapshot) string {
	if gen == nil || !gen.Available() {
		return "Reasoning unavailable: no text generator configured."
	}
	text, err := gen.Generate(ctx, BuildAnalysisPrompt(snap), 0.5, 800)
	if err != nil {
		config.LogError(logger, "reasoning.go", "AnalyzeAndPlan", "Generate", nil, err)
		return fmt.Sprintf("Error performing reasoning: %v", err)
	}
	return text
}
