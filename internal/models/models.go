package models

import "time"

// Catalog identifies the service a track record originated from.
type Catalog int

const (
	CatalogSpotify Catalog = iota
	CatalogYouTube
)

func (c Catalog) String() string {
	switch c {
	case CatalogSpotify:
		return "spotify"
	case CatalogYouTube:
		return "youtube"
	default:
		return "unknown"
	}
}

// TrackRecord is the canonical representation of a track regardless of
// originating catalog. Records are immutable once produced by a catalog
// source; a missing name or artist is carried through unchanged and surfaces
// later as an unresolved track.
type TrackRecord struct {
	Name   string  `json:"name"`
	Artist string  `json:"artist"` // comma-joined when the catalog lists several
	Album  string  `json:"album,omitempty"`
	Origin Catalog `json:"origin"`

	// Locator is an asset ID known at listing time (e.g. a video ID from a
	// YouTube Music playlist entry). Empty when the track must be searched.
	Locator string `json:"locator,omitempty"`

	// CollectionLabel names the liked-list, playlist, or URL group the record
	// came from. Downloads for the same label share a destination directory.
	CollectionLabel string `json:"collection,omitempty"`
}

// HasLocator reports whether the record carries a direct asset locator.
func (t TrackRecord) HasLocator() bool {
	return t.Locator != ""
}

// DedupKey returns the identity used for deduplication: the exact
// name/artist pair, no case folding or trimming beyond what the catalog
// source already applied.
func (t TrackRecord) DedupKey() string {
	return t.Name + "|" + t.Artist
}

// ResolutionStep names the fallback-chain step that settled a track.
type ResolutionStep string

const (
	StepDirect ResolutionStep = "direct"
	StepSearch ResolutionStep = "search"
	StepNone   ResolutionStep = "none"
)

// ResolutionOutcome is the terminal record for one track's resolution
// attempt. It is created exactly once when the track's task completes and is
// immutable afterwards.
type ResolutionOutcome struct {
	Track           TrackRecord    `json:"track"`
	ResolvedLocator string         `json:"resolved_locator,omitempty"`
	LocalPath       string         `json:"local_path,omitempty"`
	Succeeded       bool           `json:"succeeded"`
	Step            ResolutionStep `json:"step"`
	Message         string         `json:"message"`
}

// HasLocalPath reports whether the outcome produced a downloaded file.
func (o ResolutionOutcome) HasLocalPath() bool {
	return o.LocalPath != ""
}

// Report is the persisted result of one pipeline run: every outcome in
// arrival order plus summary counts. Written once, never mutated afterwards.
type Report struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Total       int                    `json:"total"`
	Succeeded   int                    `json:"succeeded"`
	Failed      int                    `json:"failed"`
	ByStep      map[ResolutionStep]int `json:"by_step,omitempty"`
	Outcomes    []ResolutionOutcome    `json:"outcomes"`
}
