package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/mmdatafocus/supplychain_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const cycleLockKey = "lock:optimization_cycle"

// CycleResult is what a trigger (HTTP handler, chat action) gets back; the
// full audit trail also lives on the OptimizationRun row.
type CycleResult struct {
	RunNumber      string           `json:"run_number"`
	Status         models.RunStatus `json:"status"`
	Summary        string           `json:"summary"`
	Log            []string         `json:"log"`
	AgentReasoning string           `json:"agent_reasoning"`
}

// RunOptimizationCycle executes one full decision cycle: ledger entry, risk
// signal gathering, advisory reasoning, then sourcing and replenishment
// execution. The run record always reaches a terminal status, including on
// panics inside the cycle body. A best-effort redis lock serializes
// concurrent triggers; when redis is down the CAS versioning on inventory
// writes is the remaining guard.
func RunOptimizationCycle(
	ctx context.Context,
	db *gorm.DB,
	logger *logrus.Logger,
	gen TextGenerator,
	notifier *Notifier,
	triggeredBy string,
) (*CycleResult, error) {

	run, err := models.CreateOptimizationRun(db.WithContext(ctx), triggeredBy)
	if err != nil {
		config.LogError(logger, "cycleWorkflow.go", "RunOptimizationCycle", "CreateOptimizationRun", triggeredBy, err)
		return nil, err
	}

	log := NewRunLog(logger)
	log.Logf("Optimization run %s started (triggered by %s).", run.RunNumber, triggeredBy)

	if locker := config.GetRedisLock(); locker != nil {
		lock, lockErr := locker.Obtain(ctx, cycleLockKey, 5*time.Minute, nil)
		if lockErr == redislock.ErrNotObtained {
			summary := "Another optimization cycle is already running."
			details := models.RunDetails{Log: append(log.Lines(), summary)}
			if finErr := models.FinalizeOptimizationRun(db.WithContext(ctx), run.ID, models.RunStatusFailed, summary, details); finErr != nil {
				config.LogError(logger, "cycleWorkflow.go", "RunOptimizationCycle", "FinalizeLocked", run.ID, finErr)
			}
			return &CycleResult{
				RunNumber: run.RunNumber,
				Status:    models.RunStatusFailed,
				Summary:   summary,
				Log:       append(log.Lines(), summary),
			}, nil
		}
		if lockErr == nil {
			defer lock.Release(context.Background())
		} else {
			logger.Warnf("cycle lock unavailable, proceeding without it: %v", lockErr)
		}
	}

	status, summary, reasoning := executeCycle(ctx, db, logger, gen, notifier, run.ID, log)

	details := models.RunDetails{Log: log.Lines(), AgentReasoning: reasoning}
	if err := models.FinalizeOptimizationRun(db.WithContext(ctx), run.ID, status, summary, details); err != nil {
		config.LogError(logger, "cycleWorkflow.go", "RunOptimizationCycle", "FinalizeOptimizationRun", run.ID, err)
		return nil, err
	}

	return &CycleResult{
		RunNumber:      run.RunNumber,
		Status:         status,
		Summary:        summary,
		Log:            log.Lines(),
		AgentReasoning: reasoning,
	}, nil
}

// executeCycle runs the cycle body and converts panics into a failed status
// so the ledger entry is never left pending.
func executeCycle(
	ctx context.Context,
	db *gorm.DB,
	logger *logrus.Logger,
	gen TextGenerator,
	notifier *Notifier,
	runId int,
	log *RunLog,
) (status models.RunStatus, summary string, reasoning string) {

	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"file":     "cycleWorkflow.go",
				"function": "executeCycle",
			}).Errorf("recovered from panic: %v", r)
			status = models.RunStatusFailed
			summary = fmt.Sprintf("Optimization cycle panicked: %v", r)
			log.Logf("%s", summary)
		}
	}()

	if gen == nil || !gen.Available() {
		summary = "Generation service unavailable; cannot run optimization cycle."
		log.Logf("%s", summary)
		return models.RunStatusFailed, summary, ""
	}

	snap, err := BuildCycleSnapshot(ctx, db, logger)
	if err != nil {
		return models.RunStatusFailed, fmt.Sprintf("Failed to load network snapshot: %v", err), ""
	}

	hubId, ok := snap.ManufacturingLocationId()
	if !ok {
		summary = "No manufacturing location configured; nothing to optimize."
		log.Logf("%s", summary)
		return models.RunStatusFailed, summary, ""
	}

	GatherRiskSignals(ctx, db, logger, gen, snap, log)
	reasoning = AnalyzeAndPlan(ctx, logger, gen, snap)

	sourced := executeSourcing(ctx, db, logger, notifier, runId, snap, hubId, log)
	transferred, err := executeReplenishment(ctx, db, logger, notifier, runId, snap, hubId, log)
	if err != nil {
		summary = fmt.Sprintf("Optimization cycle aborted: %v.", err)
		log.Logf("%s", summary)
		return models.RunStatusFailed, summary, reasoning
	}

	summary = fmt.Sprintf("Optimization cycle complete. %d order(s) placed.", sourced+transferred)
	log.Logf("%s", summary)
	return models.RunStatusSuccess, summary, reasoning
}

// executeSourcing applies the order-up-to policy to every raw material at
// the hub. Purchase orders never touch inventory: stock only changes when a
// delivery lands, so a missing hub record is no obstacle to ordering.
func executeSourcing(
	ctx context.Context,
	db *gorm.DB,
	logger *logrus.Logger,
	notifier *Notifier,
	runId int,
	snap *CycleSnapshot,
	hubId int,
	log *RunLog,
) int {

	placed := 0
	for _, product := range snap.ProductsOfKind(models.ProductKindRawMaterial) {
		position := snap.Position(product.ID, hubId)
		log.Logf("Checking raw material %s at %s: %d units in stock.",
			product.Name, snap.LocationName(hubId), position.CurrentStock)

		quantity := ReorderQuantity(position.CurrentStock)
		if quantity == 0 {
			log.Logf("%s stock is sufficient; no purchase needed.", product.Name)
			continue
		}
		log.Logf("%s below reorder point (%d); ordering %d units.", product.Name, ReorderPoint, quantity)

		offer := SelectSupplier(product.ID, quantity, hubId, snap)
		if offer == nil {
			log.Logf("No feasible supplier for %s; skipping purchase.", product.Name)
			continue
		}
		log.Logf("Selected supplier %s for %s: material %s + transport %s = %s.",
			offer.SupplierName, product.Name,
			offer.MaterialCost.StringFixed(2), offer.TransportCost.StringFixed(2), offer.TotalCost.StringFixed(2))

		order, err := EmitSourcingOrder(db.WithContext(ctx), logger, notifier, runId, offer, product.ID, product.Name, hubId)
		if err != nil {
			log.Logf("Failed to place purchase order for %s: %v.", product.Name, err)
			continue
		}
		log.Logf("Placed purchase order %s for %d units of %s.", order.OrderNumber, order.Quantity, product.Name)
		placed++
	}
	return placed
}

// executeReplenishment plans and emits hub-to-store transfers per
// manufactured product, carrying one stock cursor across the product's
// sequential writes.
func executeReplenishment(
	ctx context.Context,
	db *gorm.DB,
	logger *logrus.Logger,
	notifier *Notifier,
	runId int,
	snap *CycleSnapshot,
	hubId int,
	log *RunLog,
) (int, error) {

	placed := 0
	for _, product := range snap.ProductsOfKind(models.ProductKindManufactured) {
		allocations, _ := PlanReplenishment(product.ID, hubId, snap, log)
		if len(allocations) == 0 {
			log.Logf("No store transfers needed for %s.", product.Name)
			continue
		}

		cursor := NewHubStockCursor(snap.Position(product.ID, hubId))
		for _, allocation := range allocations {
			order, err := EmitReplenishmentOrder(db.WithContext(ctx), logger, notifier, runId, allocation, product.ID, product.Name, hubId, cursor)
			if err != nil {
				if errors.Is(err, utils.ErrStaleInventory) {
					return placed, err
				}
				log.Logf("Failed to place transfer order for %s to %s: %v.", product.Name, allocation.StoreName, err)
				continue
			}
			log.Logf("Placed transfer order %s: %d units of %s to %s (urgency %s).",
				order.OrderNumber, order.Quantity, product.Name, allocation.StoreName, allocation.Urgency)
			placed++
		}
	}
	return placed, nil
}
