package workflow

import (
	"strings"

	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/shopspring/decimal"
)

// The two flows carry different weather surcharges by design: sourcing legs
// look at origin weather (supplier side), replenishment legs at destination
// weather (store side) with higher exposure.
var (
	SourcingWeatherSurcharge      = decimal.NewFromFloat(1.10)
	ReplenishmentWeatherSurcharge = decimal.NewFromFloat(1.15)
)

var adverseConditions = []string{"rain", "snow", "storm"}

// CostBreakdown attributes an adjusted unit cost to its factors, for audit
// and notification text. Deltas are expressed as factor-1 (0.15 = +15%).
type CostBreakdown struct {
	BaseCostPerUnit decimal.Decimal `json:"base_cost_per_unit"`
	WeatherImpact   decimal.Decimal `json:"weather_impact"`
	NewsImpact      decimal.Decimal `json:"news_impact"`
}

// IsAdverseWeather matches the fixed adverse condition set with a
// case-insensitive substring test ("Light Rain" counts).
func IsAdverseWeather(conditions string) bool {
	lowered := strings.ToLower(conditions)
	for _, adverse := range adverseConditions {
		if strings.Contains(lowered, adverse) {
			return true
		}
	}
	return false
}

// AdjustTransportCost applies weather and news risk multipliers to a base
// unit cost. riskLocationId is the origin for sourcing legs and the
// destination for replenishment legs. News events matching the risk location
// (or global events, nil location) compound multiplicatively in encounter
// order. Pure and deterministic.
func AdjustTransportCost(
	baseCostPerUnit decimal.Decimal,
	riskLocationId int,
	weather map[int]*models.WeatherObservation,
	events []*models.NewsEvent,
	weatherSurcharge decimal.Decimal,
) (decimal.Decimal, CostBreakdown) {

	adjusted := baseCostPerUnit
	breakdown := CostBreakdown{
		BaseCostPerUnit: baseCostPerUnit,
		WeatherImpact:   decimal.Zero,
		NewsImpact:      decimal.Zero,
	}

	if obs, ok := weather[riskLocationId]; ok && obs != nil {
		if IsAdverseWeather(obs.Conditions) {
			adjusted = adjusted.Mul(weatherSurcharge)
			breakdown.WeatherImpact = weatherSurcharge.Sub(decimal.NewFromInt(1))
		}
	}

	newsFactor := decimal.NewFromInt(1)
	for _, event := range events {
		if event == nil || !event.AppliesTo(riskLocationId) {
			continue
		}
		adjusted = adjusted.Mul(event.ImpactFactor)
		newsFactor = newsFactor.Mul(event.ImpactFactor)
	}
	breakdown.NewsImpact = newsFactor.Sub(decimal.NewFromInt(1))

	return adjusted, breakdown
}
