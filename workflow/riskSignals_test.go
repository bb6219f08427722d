package workflow

import (
	"testing"

	"github.com/mmdatafocus/supplychain_backend/models"
)

func TestParseWeatherPayload(t *testing.T) {
	payload, err := ParseWeatherPayload(`{"temperature_celsius": 4.5, "conditions": "Light Rain"}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if payload.Conditions != "Light Rain" || payload.TemperatureCelsius != 4.5 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestParseWeatherPayloadToleratesProse(t *testing.T) {
	raw := "Here is the report:\n```json\n{\"temperature_celsius\": -2, \"conditions\": \"Snow\"}\n```"
	payload, err := ParseWeatherPayload(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if payload.Conditions != "Snow" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestParseWeatherPayloadRejectsMalformed(t *testing.T) {
	cases := []string{
		"no json here",
		`{"temperature_celsius": "warm", "conditions": "Clear"}`,
		`{"temperature_celsius": 12, "conditions": ""}`,
		`{"temperature_celsius": 300, "conditions": "Clear"}`,
	}
	for _, raw := range cases {
		if _, err := ParseWeatherPayload(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestParseNewsPayload(t *testing.T) {
	raw := `{"event_title": "Port strike", "event_description": "Dock workers strike", "event_type": "strike", "affected_city": "Lyon", "impact_factor": 1.25}`
	payload, err := ParseNewsPayload(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if payload.EventTitle != "Port strike" || payload.ImpactFactor != 1.25 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestParseNewsPayloadRejectsDiscounts(t *testing.T) {
	raw := `{"event_title": "Fuel subsidy", "impact_factor": 0.9}`
	if _, err := ParseNewsPayload(raw); err == nil {
		t.Fatal("impact_factor below 1.0 must be rejected")
	}
}

func TestResolveCity(t *testing.T) {
	snap := &CycleSnapshot{
		Locations: []*models.Location{
			{ID: 1, Name: "Paris"},
			{ID: 2, Name: "Lyon"},
		},
	}

	if id := resolveCity("lyon", snap); id == nil || *id != 2 {
		t.Fatalf("case-insensitive match failed: %v", id)
	}
	if id := resolveCity("global", snap); id != nil {
		t.Fatalf("global must resolve to nil, got %d", *id)
	}
	if id := resolveCity("Atlantis", snap); id != nil {
		t.Fatalf("unknown city must resolve to nil, got %d", *id)
	}
	if id := resolveCity("", snap); id != nil {
		t.Fatalf("empty city must resolve to nil, got %d", *id)
	}
}
