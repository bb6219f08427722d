package models

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/utils"
	"gorm.io/gorm"
)

// OptimizationRun is the audit anchor for one decision cycle. It is created
// in pending and finalized to exactly one terminal status.
type OptimizationRun struct {
	ID           int       `gorm:"primary_key" json:"id"`
	RunNumber    string    `gorm:"size:50;uniqueIndex;not null" json:"run_number"`
	RunTimestamp time.Time `gorm:"not null" json:"run_timestamp"`
	Status       RunStatus `gorm:"size:20;not null" json:"status"`
	TriggeredBy  string    `gorm:"size:50" json:"triggered_by"`
	Summary      string    `gorm:"type:text" json:"summary"`
	Details      string    `gorm:"type:text" json:"details"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RunDetails is the structured payload stored in OptimizationRun.Details.
type RunDetails struct {
	Log            []string `json:"log"`
	AgentReasoning string   `json:"agent_reasoning"`
}

func CreateOptimizationRun(db *gorm.DB, triggeredBy string) (*OptimizationRun, error) {
	run := OptimizationRun{
		RunNumber:    utils.GenerateDocumentNumber("OPT"),
		RunTimestamp: time.Now(),
		Status:       RunStatusPending,
		TriggeredBy:  triggeredBy,
		Summary:      "Starting supply chain optimization cycle.",
	}
	if err := db.Create(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// FinalizeOptimizationRun moves a pending run to its terminal status.
// The WHERE status='pending' guard makes finalization exactly-once: a second
// call for the same run id affects zero rows and returns an error.
func FinalizeOptimizationRun(db *gorm.DB, runId int, status RunStatus, summary string, details RunDetails) error {
	if status != RunStatusSuccess && status != RunStatusFailed {
		return errors.New("finalization status must be terminal")
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}

	result := db.Model(&OptimizationRun{}).
		Where("id = ? AND status = ?", runId, RunStatusPending).
		Updates(map[string]interface{}{
			"status":  status,
			"summary": summary,
			"details": string(detailsJSON),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("optimization run already finalized or missing")
	}
	return nil
}

func ListOptimizationRuns(ctx context.Context) ([]*OptimizationRun, error) {
	db := config.GetDB()
	var runs []*OptimizationRun
	err := db.WithContext(ctx).Order("run_timestamp DESC, id DESC").Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
