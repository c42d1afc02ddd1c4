package tasks

import (
	"time"

	"github.com/desertthunder/tunedl/internal/models"
	"github.com/desertthunder/tunedl/internal/shared"
)

// buildReport aggregates terminal outcomes into a run report. Every outcome
// counts exactly once, so succeeded plus failed always equals total.
func buildReport(outcomes []models.ResolutionOutcome) *models.Report {
	report := &models.Report{
		RunID:       shared.GenerateID(),
		GeneratedAt: time.Now().UTC(),
		Total:       len(outcomes),
		ByStep:      make(map[models.ResolutionStep]int),
		Outcomes:    outcomes,
	}

	for _, outcome := range outcomes {
		if outcome.Succeeded {
			report.Succeeded++
		} else {
			report.Failed++
		}
		report.ByStep[outcome.Step]++
	}

	return report
}
