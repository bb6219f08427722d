package workflow

import (
	"strings"
	"testing"

	"github.com/mmdatafocus/supplychain_backend/models"
)

func TestParseChatAction(t *testing.T) {
	cases := []struct {
		raw        string
		wantAction string
		wantText   string
	}{
		{"ACTION:RUN_AUTOMATION Starting the cycle now.", ChatActionRunAutomation, "Starting the cycle now."},
		{"  ACTION:GET_INVENTORY\nHere are the levels.", ChatActionGetInventory, "Here are the levels."},
		{"ACTION:GET_ORDERS", ChatActionGetOrders, ""},
		{"The weather looks fine today.", "", "The weather looks fine today."},
		{"Please say ACTION:RUN_AUTOMATION to trigger it.", "", "Please say ACTION:RUN_AUTOMATION to trigger it."},
	}
	for _, c := range cases {
		action, text := ParseChatAction(c.raw)
		if action != c.wantAction || text != c.wantText {
			t.Errorf("ParseChatAction(%q) = (%q, %q), want (%q, %q)",
				c.raw, action, text, c.wantAction, c.wantText)
		}
	}
}

func TestBuildAnalysisPromptSections(t *testing.T) {
	snap := replenishmentSnapshot(120)
	setStoreStock(snap, testStoreLyon, 15)
	snap.Weather = weatherAt(testStoreLyon, "Rain")
	snap.NewsEvents = []*models.NewsEvent{newsEvent(nil, "1.20")}

	prompt := BuildAnalysisPrompt(snap)
	for _, want := range []string{"Locations:", "Inventory:", "Store limits:", "Weather:", "Disruption events:", "Lyon", "Conductor"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
