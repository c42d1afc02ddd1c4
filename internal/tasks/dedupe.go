package tasks

import "github.com/desertthunder/tunedl/internal/models"

// Dedupe drops duplicate tracks, keeping the first occurrence of each
// name/artist pair and preserving input order. Running it over its own output
// changes nothing.
func Dedupe(records []models.TrackRecord) []models.TrackRecord {
	seen := make(map[string]struct{}, len(records))
	unique := make([]models.TrackRecord, 0, len(records))

	for _, record := range records {
		key := record.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, record)
	}

	return unique
}
