package tasks

import (
	"fmt"

	"github.com/desertthunder/tunedl/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Preparing Phase = iota
	Resolving
	Reporting
)

func (p Phase) String() string {
	switch p {
	case Preparing:
		return "preparing"
	case Resolving:
		return "resolving"
	case Reporting:
		return "reporting"
	default:
		return ""
	}
}

func preparingUpdate(total, dropped int) ProgressUpdate {
	message := fmt.Sprintf("Resolving %d tracks...", total-dropped)
	if dropped > 0 {
		message = fmt.Sprintf("Resolving %d tracks (%d duplicates dropped)...", total-dropped, dropped)
	}

	return ProgressUpdate{
		Phase:   Preparing,
		Step:    0,
		Total:   total - dropped,
		Message: message,
	}
}

func trackDoneUpdate(step, total int, outcome models.ResolutionOutcome) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Resolving,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s", step, total, outcome.Track.Artist, outcome.Track.Name),
		Data:    outcome,
	}
}

func trackFailedUpdate(step, total int, outcome models.ResolutionOutcome) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Resolving,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s: %s", step, total, outcome.Track.Artist, outcome.Track.Name, outcome.Message),
		Data:    outcome,
	}
}

func reportUpdate(report *models.Report) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Reporting,
		Step:    report.Total,
		Total:   report.Total,
		Message: fmt.Sprintf("Done: %d succeeded, %d failed", report.Succeeded, report.Failed),
		Data:    report,
	}
}
