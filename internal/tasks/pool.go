package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/tunedl/internal/models"
	"github.com/desertthunder/tunedl/internal/shared"
)

// LargeRunThreshold is the track count above which callers should ask for
// confirmation before starting a run.
const LargeRunThreshold = 1000

// RunOpts contains configuration for a pipeline run.
type RunOpts struct {
	DestDir     string // Base download directory
	ResolveOnly bool   // Resolve locators without downloading
	NumWorkers  int    // Concurrent workers (default: 3)
}

type resolveJob struct {
	index  int
	record models.TrackRecord
}

type resolveResult struct {
	index   int
	outcome models.ResolutionOutcome
}

// Run resolves (and by default downloads) every track concurrently and
// returns the aggregated report.
//
// This method implements a worker pool pattern with a strict concurrency
// bound. Each track fails or succeeds on its own; one failure never cancels
// the rest of the run. Report outcomes keep the deduplicated input order.
func (e *ResolveEngine) Run(ctx context.Context, prog chan<- ProgressUpdate, records []models.TrackRecord, opts RunOpts) (*models.Report, error) {
	if e.downloader == nil && !opts.ResolveOnly {
		return nil, fmt.Errorf("%w: no download backend configured", shared.ErrBackendUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}

	unique := Dedupe(records)
	e.sendProgress(prog, preparingUpdate(len(records), len(records)-len(unique)))

	jobs := make(chan resolveJob, len(unique))
	results := make(chan resolveResult, len(unique))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.resolveWorker(ctx, &wg, jobs, results, opts)
	}

	for i, record := range unique {
		jobs <- resolveJob{index: i, record: record}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]models.ResolutionOutcome, len(unique))
	completed := 0

	for res := range results {
		completed++
		outcomes[res.index] = res.outcome

		if res.outcome.Succeeded {
			e.sendProgress(prog, trackDoneUpdate(completed, len(unique), res.outcome))
		} else {
			e.sendProgress(prog, trackFailedUpdate(completed, len(unique), res.outcome))
		}
	}

	report := buildReport(outcomes)
	e.sendProgress(prog, reportUpdate(report))
	return report, nil
}

// resolveWorker is a worker goroutine that settles tracks from the jobs channel.
func (e *ResolveEngine) resolveWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan resolveJob,
	results chan<- resolveResult,
	opts RunOpts,
) {
	defer wg.Done()

	for job := range jobs {
		results <- resolveResult{
			index:   job.index,
			outcome: e.resolveTask(ctx, job.record, opts),
		}
	}
}

// resolveTask isolates one track's resolution: a panic becomes a failed
// outcome so a single bad track never takes down the pool.
func (e *ResolveEngine) resolveTask(ctx context.Context, record models.TrackRecord, opts RunOpts) (outcome models.ResolutionOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = models.ResolutionOutcome{
				Track:   record,
				Step:    models.StepNone,
				Message: fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	return e.ResolveOne(ctx, record, opts)
}
