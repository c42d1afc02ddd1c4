package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tunedl/internal/formatter"
	"github.com/desertthunder/tunedl/internal/models"
	"github.com/desertthunder/tunedl/internal/services"
	"github.com/desertthunder/tunedl/internal/shared"
	"github.com/desertthunder/tunedl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// DownloadLiked downloads the liked/saved tracks of the selected catalog.
func (r *Runner) DownloadLiked(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd.String("source"))
	if err != nil {
		return err
	}

	r.logger.Infof("fetching liked tracks from %s", catalog.Name())

	records, err := catalog.Liked(ctx)
	if err != nil {
		return err
	}

	return r.runPipeline(ctx, cmd, records)
}

// DownloadPlaylist downloads a playlist by ID from the selected catalog.
func (r *Runner) DownloadPlaylist(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist ID", shared.ErrMissingArgument)
	}

	catalog, err := r.catalogFor(ctx, cmd.String("source"))
	if err != nil {
		return err
	}

	label, records, err := catalog.Playlist(ctx, playlistID)
	if err != nil {
		return err
	}

	r.writePlain("Playlist: %s (%d tracks)\n", label, len(records))
	return r.runPipeline(ctx, cmd, records)
}

// DownloadURL downloads the tracks behind a Spotify or YouTube URL.
func (r *Runner) DownloadURL(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.StringArg("url")
	if rawURL == "" {
		return fmt.Errorf("%w: URL", shared.ErrMissingArgument)
	}

	parsed, err := shared.ParseCatalogURL(rawURL)
	if err != nil {
		return err
	}

	var catalog services.Catalog
	switch parsed.Kind {
	case shared.URLSpotifyPlaylist, shared.URLSpotifyTrack:
		if catalog, err = r.catalogFor(ctx, "spotify"); err != nil {
			return err
		}
	default:
		if catalog, err = r.catalogFor(ctx, "youtube"); err != nil {
			return err
		}
	}

	label, records, err := catalog.FromURL(ctx, rawURL)
	if err != nil {
		return err
	}

	if label != "" {
		r.writePlain("Source: %s (%d tracks)\n", label, len(records))
	}
	return r.runPipeline(ctx, cmd, records)
}

// catalogFor selects a catalog by source name and makes sure it is ready.
func (r *Runner) catalogFor(ctx context.Context, source string) (services.Catalog, error) {
	switch strings.ToLower(source) {
	case "", "spotify":
		if r.spotify == nil {
			return nil, fmt.Errorf("%w: Spotify service not initialized (check credentials in config.toml)", shared.ErrMissingCredentials)
		}
		if err := r.ensureSpotifyAuth(ctx); err != nil {
			return nil, err
		}
		return r.spotify, nil
	case "youtube", "ytmusic", "yt":
		if r.youtube == nil {
			return nil, fmt.Errorf("%w: YouTube Music service not initialized", shared.ErrCatalogUnavailable)
		}
		return r.youtube, nil
	default:
		return nil, fmt.Errorf("%w: unknown source %q", shared.ErrInvalidArgument, source)
	}
}

// runPipeline runs the resolution engine over records and writes the report.
//
// Large runs prompt for confirmation first unless --yes was passed. Progress
// is streamed to the output writer while workers settle tracks.
func (r *Runner) runPipeline(ctx context.Context, cmd *cli.Command, records []models.TrackRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no tracks to process", shared.ErrInvalidInput)
	}

	unique := tasks.Dedupe(records)
	if len(unique) > tasks.LargeRunThreshold && !cmd.Bool("yes") {
		confirmed, err := r.confirmLargeRun(len(unique))
		if err != nil {
			return err
		}
		if !confirmed {
			return r.writePlain("Aborted.\n")
		}
	}

	opts := tasks.RunOpts{
		DestDir:     cmd.String("output"),
		ResolveOnly: cmd.Bool("resolve-only"),
		NumWorkers:  int(cmd.Int("workers")),
	}
	if opts.DestDir == "" {
		opts.DestDir = r.config.Downloads.Folder
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = r.config.Downloads.MaxConcurrent
	}

	progress := make(chan tasks.ProgressUpdate, len(unique)+2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	report, err := r.engine.Run(ctx, progress, records, opts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainHeader("Run Summary")
	r.writePlain("%s", formatter.ReportToText(report))

	reportPath, err := formatter.WriteJSONReport(report, cmd.String("report"))
	if err != nil {
		return err
	}
	r.writePlainln("✓ Report written to %s", reportPath)

	if cmd.Bool("csv") {
		csvPath, err := formatter.WriteCSVReport(report, "")
		if err != nil {
			return err
		}
		r.writePlain("✓ CSV written to %s\n", csvPath)
	}

	return nil
}
