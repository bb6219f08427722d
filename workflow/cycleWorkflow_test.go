package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/models"
)

type unavailableGenerator struct{}

func (unavailableGenerator) Available() bool { return false }

func (unavailableGenerator) Generate(context.Context, string, float64, int) (string, error) {
	return "", errors.New("not configured")
}

func (unavailableGenerator) Chat(context.Context, []config.ChatMessage, float64, int) (string, error) {
	return "", errors.New("not configured")
}

func TestExecuteCycleFailsWithoutGenerator(t *testing.T) {
	log := NewRunLog(nil)
	status, summary, reasoning := executeCycle(
		context.Background(), nil, testLogger(), unavailableGenerator{}, nil, 0, log)

	if status != models.RunStatusFailed {
		t.Fatalf("status = %s, want failed", status)
	}
	if summary == "" {
		t.Fatal("summary should explain the failure")
	}
	if reasoning != "" {
		t.Fatalf("no reasoning expected, got %q", reasoning)
	}
	if len(log.Lines()) == 0 {
		t.Fatal("failure should be logged in the run trail")
	}
}
