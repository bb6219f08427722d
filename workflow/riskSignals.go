package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Generated signal payloads follow a strict schema. Anything the generator
// returns that does not parse and validate is dropped, never repaired: a
// cycle with no risk signals is a valid cycle at base cost.
type generatedWeather struct {
	TemperatureCelsius float64 `json:"temperature_celsius"`
	Conditions         string  `json:"conditions"`
}

type generatedNewsEvent struct {
	EventTitle       string  `json:"event_title"`
	EventDescription string  `json:"event_description"`
	EventType        string  `json:"event_type"`
	AffectedCity     string  `json:"affected_city"`
	ImpactFactor     float64 `json:"impact_factor"`
}

func (w *generatedWeather) Validate() error {
	if strings.TrimSpace(w.Conditions) == "" {
		return errors.New("conditions is empty")
	}
	if w.TemperatureCelsius < -60 || w.TemperatureCelsius > 60 {
		return fmt.Errorf("temperature_celsius out of range: %v", w.TemperatureCelsius)
	}
	return nil
}

func (e *generatedNewsEvent) Validate() error {
	if strings.TrimSpace(e.EventTitle) == "" {
		return errors.New("event_title is empty")
	}
	if e.ImpactFactor < 1.0 {
		return fmt.Errorf("impact_factor below 1.0: %v", e.ImpactFactor)
	}
	return nil
}

// extractJSONObject tolerates generators that wrap the JSON object in prose
// or markdown fences: it takes the substring between the first '{' and the
// last '}'.
func extractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", errors.New("no JSON object in payload")
	}
	return raw[start : end+1], nil
}

func ParseWeatherPayload(raw string) (*generatedWeather, error) {
	body, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var payload generatedWeather
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return &payload, nil
}

func ParseNewsPayload(raw string) (*generatedNewsEvent, error) {
	body, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var payload generatedNewsEvent
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return &payload, nil
}

func weatherPrompt(locationName string) string {
	return fmt.Sprintf(
		`Generate a realistic current weather report for %s as a single JSON object with exactly these keys: "temperature_celsius" (number), "conditions" (short string such as "Clear", "Light Rain", "Snow", "Thunderstorm"). Respond with the JSON object only.`,
		locationName)
}

func newsPrompt(locationNames []string) string {
	return fmt.Sprintf(
		`Generate one plausible supply chain disruption news event as a single JSON object with exactly these keys: "event_title" (string), "event_description" (string), "event_type" (string such as "strike", "weather", "logistics"), "affected_city" (one of: %s, or "global"), "impact_factor" (number >= 1.0, e.g. 1.2 for a 20%% cost increase). Respond with the JSON object only.`,
		strings.Join(locationNames, ", "))
}

// GatherRiskSignals asks the generator for a weather report per location and
// one network-wide news event, persists the accepted signals for audit, and
// fills the snapshot's Weather and NewsEvents. Every generation or parse
// failure is logged and skipped; the cycle proceeds with whatever signals
// survived.
func GatherRiskSignals(
	ctx context.Context,
	db *gorm.DB,
	logger *logrus.Logger,
	gen TextGenerator,
	snap *CycleSnapshot,
	log *RunLog,
) {

	if gen == nil || !gen.Available() {
		log.Logf("Risk signal generator unavailable; proceeding at base cost.")
		return
	}

	now := time.Now()
	for _, loc := range snap.Locations {
		raw, err := gen.Generate(ctx, weatherPrompt(loc.Name), 0.7, 200)
		if err != nil {
			config.LogError(logger, "riskSignals.go", "GatherRiskSignals", "GenerateWeather", loc.Name, err)
			log.Logf("Weather generation failed for %s; skipping.", loc.Name)
			continue
		}
		payload, err := ParseWeatherPayload(raw)
		if err != nil {
			config.LogError(logger, "riskSignals.go", "GatherRiskSignals", "ParseWeatherPayload", raw, err)
			log.Logf("Dropped malformed weather payload for %s.", loc.Name)
			continue
		}

		observation := &models.WeatherObservation{
			LocationId:         loc.ID,
			ObservedAt:         now,
			TemperatureCelsius: payload.TemperatureCelsius,
			Conditions:         payload.Conditions,
			RawPayload:         raw,
		}
		if err := db.WithContext(ctx).Create(observation).Error; err != nil {
			config.LogError(logger, "riskSignals.go", "GatherRiskSignals", "CreateWeatherObservation", observation, err)
		}
		snap.Weather[loc.ID] = observation
		log.Logf("Weather in %s: %s, %.1f°C.", loc.Name, payload.Conditions, payload.TemperatureCelsius)
	}

	names := make([]string, 0, len(snap.Locations))
	for _, loc := range snap.Locations {
		names = append(names, loc.Name)
	}
	raw, err := gen.Generate(ctx, newsPrompt(names), 0.8, 300)
	if err != nil {
		config.LogError(logger, "riskSignals.go", "GatherRiskSignals", "GenerateNews", nil, err)
		log.Logf("News generation failed; no disruption events this cycle.")
		return
	}
	payload, err := ParseNewsPayload(raw)
	if err != nil {
		config.LogError(logger, "riskSignals.go", "GatherRiskSignals", "ParseNewsPayload", raw, err)
		log.Logf("Dropped malformed news payload.")
		return
	}

	event := &models.NewsEvent{
		Title:        payload.EventTitle,
		Description:  payload.EventDescription,
		EventType:    payload.EventType,
		LocationId:   resolveCity(payload.AffectedCity, snap),
		ImpactFactor: decimal.NewFromFloat(payload.ImpactFactor),
		StartDate:    now,
		Source:       "generated",
	}
	if err := db.WithContext(ctx).Create(event).Error; err != nil {
		config.LogError(logger, "riskSignals.go", "GatherRiskSignals", "CreateNewsEvent", event, err)
	}
	snap.NewsEvents = append(snap.NewsEvents, event)

	scope := "all locations"
	if event.LocationId != nil {
		scope = snap.LocationName(*event.LocationId)
	}
	log.Logf("News event: %s (impact ×%s, affects %s).", event.Title, event.ImpactFactor.String(), scope)
}

// resolveCity maps the generated city name to a location id by
// case-insensitive name match; unknown cities and "global" mean the event is
// network-wide (nil).
func resolveCity(city string, snap *CycleSnapshot) *int {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" || strings.EqualFold(trimmed, "global") {
		return nil
	}
	for _, loc := range snap.Locations {
		if strings.EqualFold(loc.Name, trimmed) {
			id := loc.ID
			return &id
		}
	}
	return nil
}
