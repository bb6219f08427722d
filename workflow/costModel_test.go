package workflow

import (
	"testing"
	"time"

	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/shopspring/decimal"
)

func TestIsAdverseWeather(t *testing.T) {
	cases := []struct {
		conditions string
		want       bool
	}{
		{"Clear", false},
		{"Sunny", false},
		{"Rain", true},
		{"Light Rain", true},
		{"HEAVY SNOW", true},
		{"Thunderstorm", true},
		{"Overcast", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsAdverseWeather(c.conditions); got != c.want {
			t.Errorf("IsAdverseWeather(%q) = %v, want %v", c.conditions, got, c.want)
		}
	}
}

func weatherAt(locationId int, conditions string) map[int]*models.WeatherObservation {
	return map[int]*models.WeatherObservation{
		locationId: {
			LocationId: locationId,
			ObservedAt: time.Now(),
			Conditions: conditions,
		},
	}
}

func newsEvent(locationId *int, impact string) *models.NewsEvent {
	return &models.NewsEvent{
		Title:        "test event",
		ImpactFactor: decimal.RequireFromString(impact),
		LocationId:   locationId,
	}
}

func TestAdjustTransportCostNoSignals(t *testing.T) {
	base := decimal.RequireFromString("2.00")
	adjusted, breakdown := AdjustTransportCost(base, 1, nil, nil, ReplenishmentWeatherSurcharge)
	if !adjusted.Equal(base) {
		t.Fatalf("adjusted = %s, want %s", adjusted, base)
	}
	if !breakdown.WeatherImpact.IsZero() || !breakdown.NewsImpact.IsZero() {
		t.Fatalf("breakdown should be zero: %+v", breakdown)
	}
}

func TestAdjustTransportCostWeatherAndNewsCompound(t *testing.T) {
	base := decimal.RequireFromString("2.00")
	loc := 7
	adjusted, breakdown := AdjustTransportCost(
		base, loc,
		weatherAt(loc, "Heavy Rain"),
		[]*models.NewsEvent{newsEvent(&loc, "1.20")},
		ReplenishmentWeatherSurcharge)

	// 2.00 * 1.15 * 1.20 = 2.76
	want := decimal.RequireFromString("2.76")
	if !adjusted.Equal(want) {
		t.Fatalf("adjusted = %s, want %s", adjusted, want)
	}
	if !breakdown.WeatherImpact.Equal(decimal.RequireFromString("0.15")) {
		t.Errorf("weather impact = %s, want 0.15", breakdown.WeatherImpact)
	}
	if !breakdown.NewsImpact.Equal(decimal.RequireFromString("0.20")) {
		t.Errorf("news impact = %s, want 0.20", breakdown.NewsImpact)
	}
}

func TestAdjustTransportCostIgnoresOtherLocations(t *testing.T) {
	base := decimal.RequireFromString("3.00")
	other := 99
	adjusted, _ := AdjustTransportCost(
		base, 1,
		weatherAt(other, "Storm"),
		[]*models.NewsEvent{newsEvent(&other, "1.50")},
		SourcingWeatherSurcharge)
	if !adjusted.Equal(base) {
		t.Fatalf("signals for another location must not apply: got %s", adjusted)
	}
}

func TestAdjustTransportCostGlobalEventApplies(t *testing.T) {
	base := decimal.RequireFromString("1.00")
	adjusted, _ := AdjustTransportCost(
		base, 1, nil,
		[]*models.NewsEvent{newsEvent(nil, "1.30")},
		SourcingWeatherSurcharge)
	if !adjusted.Equal(decimal.RequireFromString("1.30")) {
		t.Fatalf("global event must apply everywhere: got %s", adjusted)
	}
}

func TestAdjustTransportCostNeverDiscounts(t *testing.T) {
	base := decimal.RequireFromString("5.00")
	loc := 3
	adjusted, _ := AdjustTransportCost(
		base, loc,
		weatherAt(loc, "Snow"),
		[]*models.NewsEvent{newsEvent(nil, "1.05"), newsEvent(&loc, "1.10")},
		ReplenishmentWeatherSurcharge)
	if adjusted.LessThan(base) {
		t.Fatalf("risk adjustment discounted the cost: %s < %s", adjusted, base)
	}
}
