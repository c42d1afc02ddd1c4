package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunedl/internal/services"
	"github.com/desertthunder/tunedl/internal/shared"
	"github.com/urfave/cli/v3"
)

// SpotifyPlaylists lists Spotify playlists with optional limit.
func (r *Runner) SpotifyPlaylists(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	catalog, err := r.catalogFor(ctx, "spotify")
	if err != nil {
		return err
	}

	browser, ok := catalog.(services.PlaylistBrowser)
	if !ok {
		return fmt.Errorf("%w: catalog does not list playlists", shared.ErrInvalidArgument)
	}

	r.logger.Infof("listing spotify playlists with limit %v", limit)

	playlists, err := browser.Playlists(ctx)
	if err != nil {
		return err
	}

	if limit > 0 && len(playlists) > limit {
		playlists = playlists[:limit]
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Spotify Playlists (%d)", len(playlists)))
	for _, playlist := range playlists {
		r.writePlain("%s  %s (%d tracks)\n", playlist.ID, playlist.Name, playlist.TrackCount)
	}

	return nil
}
