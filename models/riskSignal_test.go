package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewsEventAppliesTo(t *testing.T) {
	lyon := 2
	scoped := &NewsEvent{Title: "strike", ImpactFactor: decimal.NewFromInt(1), LocationId: &lyon}
	global := &NewsEvent{Title: "fuel shortage", ImpactFactor: decimal.NewFromInt(1)}

	if !scoped.AppliesTo(lyon) {
		t.Error("scoped event must apply to its location")
	}
	if scoped.AppliesTo(99) {
		t.Error("scoped event must not apply elsewhere")
	}
	if !global.AppliesTo(lyon) || !global.AppliesTo(99) {
		t.Error("global event must apply everywhere")
	}
}
