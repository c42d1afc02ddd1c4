package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunedl/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStatus shows how many resolutions are cached.
func (r *Runner) CacheStatus(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return fmt.Errorf("%w: resolution cache is disabled", shared.ErrBackendUnavailable)
	}

	count, err := r.cache.Count()
	if err != nil {
		return err
	}

	r.writePlain("Cached resolutions: %d\n", count)
	return nil
}

// CacheClear removes every cached resolution.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	if r.cache == nil {
		return fmt.Errorf("%w: resolution cache is disabled", shared.ErrBackendUnavailable)
	}

	removed, err := r.cache.Clear()
	if err != nil {
		return err
	}

	r.writePlain("✓ Cleared %d cached resolutions\n", removed)
	return nil
}
