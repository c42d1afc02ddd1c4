// package formatter provides functions to render run reports to various formats (JSON, CSV, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/tunedl/internal/models"
	"github.com/desertthunder/tunedl/internal/shared"
)

// ReportToJSON renders a report as indented JSON.
func ReportToJSON(report *models.Report) ([]byte, error) {
	return shared.MarshalJSON(report, true)
}

// ReportToCSV renders a report's outcomes as CSV with columns:
// Name, Artist, Album, Origin, Step, Succeeded, Locator, LocalPath, Message
func ReportToCSV(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "Artist", "Album", "Origin", "Step", "Succeeded", "Locator", "LocalPath", "Message"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, outcome := range report.Outcomes {
		record := []string{
			outcome.Track.Name,
			outcome.Track.Artist,
			outcome.Track.Album,
			outcome.Track.Origin.String(),
			string(outcome.Step),
			strconv.FormatBool(outcome.Succeeded),
			outcome.ResolvedLocator,
			outcome.LocalPath,
			outcome.Message,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToText renders a human-readable run summary: counts, the per-step
// breakdown, and one line per failed track.
func ReportToText(report *models.Report) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Run: %s\n", report.RunID))
	buf.WriteString(fmt.Sprintf("Total: %d\n", report.Total))
	buf.WriteString(fmt.Sprintf("Succeeded: %d\n", report.Succeeded))
	buf.WriteString(fmt.Sprintf("Failed: %d\n", report.Failed))

	for _, step := range []models.ResolutionStep{models.StepDirect, models.StepSearch, models.StepNone} {
		if count, ok := report.ByStep[step]; ok && count > 0 {
			buf.WriteString(fmt.Sprintf("  %s: %d\n", step, count))
		}
	}

	if report.Failed > 0 {
		buf.WriteString("\nFailed tracks:\n")
		for _, outcome := range report.Outcomes {
			if outcome.Succeeded {
				continue
			}
			buf.WriteString(fmt.Sprintf("  ✗ %s - %s: %s\n", outcome.Track.Artist, outcome.Track.Name, outcome.Message))
		}
	}

	return buf.Bytes()
}

// WriteJSONReport writes the JSON report to path.
//
// Defaults to report_{run_id}.json in the working directory.
func WriteJSONReport(report *models.Report, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("report_%s.json", report.RunID)
	}

	data, err := ReportToJSON(report)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON report: %w", err)
	}

	return path, nil
}

// WriteCSVReport writes the outcome table to path.
//
// Defaults to report_{run_id}.csv in the working directory.
func WriteCSVReport(report *models.Report, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("report_%s.csv", report.RunID)
	}

	data, err := ReportToCSV(report)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV report: %w", err)
	}

	return path, nil
}
