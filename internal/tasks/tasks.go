package tasks

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/desertthunder/tunedl/internal/models"
	"github.com/desertthunder/tunedl/internal/shared"
	"golang.org/x/time/rate"
)

// Downloader fetches audio for a resolved locator into a destination
// directory and returns the local file path.
type Downloader interface {
	FetchDirect(ctx context.Context, locator, destDir, name, artist string) (string, error)
}

// Searcher resolves track metadata to an asset locator.
type Searcher interface {
	BestMatch(ctx context.Context, name, artist string) (string, error)
}

// ResolutionCache memoizes search results across runs, keyed by the track's
// dedup key. Only the search step consults it; a catalog-provided locator
// always wins over a cached one.
type ResolutionCache interface {
	Lookup(key string) (string, bool, error)
	Store(key, locator string) error
}

// EngineOpts configures a [ResolveEngine].
type EngineOpts struct {
	Cache      ResolutionCache // optional search memoization
	Order      []string        // resolution step order (default: direct, search)
	SearchRate float64         // searches per second (default: 5)
}

// ResolveEngine settles tracks through an ordered chain of resolution steps.
// Contains dependencies on the search and download backends.
type ResolveEngine struct {
	downloader Downloader
	searcher   Searcher
	cache      ResolutionCache
	steps      []models.ResolutionStep
	limiter    *rate.Limiter
}

// NewResolveEngine creates a new ResolveEngine with the provided backends.
func NewResolveEngine(downloader Downloader, searcher Searcher, opts EngineOpts) (*ResolveEngine, error) {
	order := opts.Order
	if len(order) == 0 {
		order = []string{string(models.StepDirect), string(models.StepSearch)}
	}

	steps := make([]models.ResolutionStep, 0, len(order))
	for _, name := range order {
		switch name {
		case string(models.StepDirect):
			steps = append(steps, models.StepDirect)
		case string(models.StepSearch):
			steps = append(steps, models.StepSearch)
		default:
			return nil, fmt.Errorf("%w: unknown resolution step %q", shared.ErrInvalidConfig, name)
		}
	}

	searchRate := opts.SearchRate
	if searchRate <= 0 {
		searchRate = 5.0
	}

	return &ResolveEngine{
		downloader: downloader,
		searcher:   searcher,
		cache:      opts.Cache,
		steps:      steps,
		limiter:    rate.NewLimiter(rate.Limit(searchRate), 1),
	}, nil
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ResolveEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// ResolveOne settles a single track by walking the configured step chain.
//
// A step that cannot apply (direct without a locator) is skipped; a step that
// applies but fails records its error and yields to the next step. The
// returned outcome is terminal either way.
func (e *ResolveEngine) ResolveOne(ctx context.Context, record models.TrackRecord, opts RunOpts) models.ResolutionOutcome {
	var (
		lastErr     error
		lastLocator string
		lastStep    = models.StepNone
	)

	for _, step := range e.steps {
		switch step {
		case models.StepDirect:
			if !record.HasLocator() {
				continue
			}

			lastLocator = record.Locator
			lastStep = models.StepDirect

			outcome, err := e.settle(ctx, record, record.Locator, models.StepDirect, opts)
			if err != nil {
				lastErr = err
				continue
			}
			return outcome

		case models.StepSearch:
			if e.searcher == nil {
				lastErr = fmt.Errorf("%w: no search backend configured", shared.ErrBackendUnavailable)
				continue
			}

			locator, err := e.searchLocator(ctx, record)
			if err != nil {
				lastErr = err
				continue
			}

			lastLocator = locator
			lastStep = models.StepSearch

			outcome, err := e.settle(ctx, record, locator, models.StepSearch, opts)
			if err != nil {
				lastErr = err
				continue
			}
			return outcome
		}
	}

	return failedOutcome(record, lastStep, lastLocator, lastErr)
}

// settle finalizes a resolved locator: records it directly in resolve-only
// mode, otherwise downloads the audio first.
func (e *ResolveEngine) settle(ctx context.Context, record models.TrackRecord, locator string, step models.ResolutionStep, opts RunOpts) (models.ResolutionOutcome, error) {
	if opts.ResolveOnly {
		return models.ResolutionOutcome{
			Track:           record,
			ResolvedLocator: locator,
			Succeeded:       true,
			Step:            step,
			Message:         "resolved without download",
		}, nil
	}

	path, err := e.downloader.FetchDirect(ctx, locator, destDirFor(record, opts.DestDir), record.Name, record.Artist)
	if err != nil {
		return models.ResolutionOutcome{}, err
	}

	return models.ResolutionOutcome{
		Track:           record,
		ResolvedLocator: locator,
		LocalPath:       path,
		Succeeded:       true,
		Step:            step,
		Message:         "downloaded",
	}, nil
}

// searchLocator finds a locator for the track via the cache or the search
// backend. Search calls go through the rate limiter; cache hits do not.
func (e *ResolveEngine) searchLocator(ctx context.Context, record models.TrackRecord) (string, error) {
	if record.Name == "" && record.Artist == "" {
		return "", fmt.Errorf("%w: track has no name or artist to search for", shared.ErrInvalidInput)
	}

	key := record.DedupKey()

	if e.cache != nil {
		if locator, ok, err := e.cache.Lookup(key); err == nil && ok {
			return locator, nil
		}
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("search rate limit: %w", err)
	}

	locator, err := e.searcher.BestMatch(ctx, record.Name, record.Artist)
	if err != nil {
		return "", err
	}

	if e.cache != nil {
		// A failed cache write never fails the track.
		_ = e.cache.Store(key, locator)
	}

	return locator, nil
}

// destDirFor nests downloads under a sanitized per-collection directory when
// the record carries a collection label.
func destDirFor(record models.TrackRecord, base string) string {
	label := shared.SanitizeName(record.CollectionLabel)
	if label == "" {
		return base
	}
	return filepath.Join(base, label)
}

func failedOutcome(record models.TrackRecord, step models.ResolutionStep, locator string, err error) models.ResolutionOutcome {
	message := "no resolution step produced a locator"
	if err != nil {
		message = err.Error()
	}

	return models.ResolutionOutcome{
		Track:           record,
		ResolvedLocator: locator,
		Step:            step,
		Message:         message,
	}
}
