// YouTube Music [Catalog] implementation backed by yt-dlp.
package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunedl/internal/models"
	"github.com/desertthunder/tunedl/internal/shared"
)

// likedPlaylistURL is the YouTube Music liked-songs playlist. Listing it
// requires a signed-in session cookie file.
const likedPlaylistURL = "https://music.youtube.com/playlist?list=LM"

// YouTubeService implements [Catalog] and [Searcher] for YouTube Music.
type YouTubeService struct {
	client *YTDLPClient
}

// NewYouTubeService creates a YouTube Music service over a yt-dlp client.
func NewYouTubeService(client *YTDLPClient) *YouTubeService {
	return &YouTubeService{client: client}
}

func (y *YouTubeService) Name() string {
	return "YouTube Music"
}

// Liked returns every track in the user's liked-songs playlist.
func (y *YouTubeService) Liked(ctx context.Context) ([]models.TrackRecord, error) {
	if y.client.cookieFile == "" {
		return nil, fmt.Errorf("%w: no YouTube Music cookie configured", shared.ErrNotAuthenticated)
	}

	entries, err := y.client.PlaylistEntries(ctx, likedPlaylistURL)
	if err != nil {
		return nil, err
	}

	return recordsFromEntries(entries, "YouTube Music Likes"), nil
}

// Playlist returns the playlist title and tracks for a playlist ID.
func (y *YouTubeService) Playlist(ctx context.Context, playlistID string) (string, []models.TrackRecord, error) {
	url := "https://music.youtube.com/playlist?list=" + playlistID

	entries, err := y.client.PlaylistEntries(ctx, url)
	if err != nil {
		return "", nil, err
	}

	label := playlistTitle(entries, playlistID)
	return label, recordsFromEntries(entries, label), nil
}

// FromURL resolves a YouTube playlist or watch URL to records.
func (y *YouTubeService) FromURL(ctx context.Context, rawURL string) (string, []models.TrackRecord, error) {
	parsed, err := shared.ParseCatalogURL(rawURL)
	if err != nil {
		return "", nil, err
	}

	switch parsed.Kind {
	case shared.URLYouTubePlaylist:
		return y.Playlist(ctx, parsed.ID)

	case shared.URLYouTubeVideo:
		entries, err := y.client.PlaylistEntries(ctx, WatchURL(parsed.ID))
		if err != nil {
			return "", nil, err
		}
		if len(entries) == 0 {
			return "", nil, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, parsed.ID)
		}
		return "", recordsFromEntries(entries[:1], ""), nil

	default:
		return "", nil, fmt.Errorf("%w: %q is not a YouTube URL", shared.ErrInvalidArgument, rawURL)
	}
}

// BestMatch searches for "name artist" and returns the top result's video ID.
func (y *YouTubeService) BestMatch(ctx context.Context, name, artist string) (string, error) {
	entry, err := y.client.Search(ctx, fmt.Sprintf("%s %s", name, artist))
	if err != nil {
		return "", err
	}

	return entry.ID, nil
}

// recordsFromEntries maps flat playlist entries to canonical records.
//
// Entry titles are usually "Artist - Title"; when the separator is missing
// the uploader stands in for the artist. The video ID becomes the record's
// direct locator so resolution can skip the search step.
func recordsFromEntries(entries []VideoEntry, label string) []models.TrackRecord {
	records := make([]models.TrackRecord, 0, len(entries))

	for _, entry := range entries {
		artist, name, ok := shared.SplitArtistTitle(entry.Title)
		if !ok {
			artist = entry.Uploader
			name = entry.Title
		}

		records = append(records, models.TrackRecord{
			Name:            name,
			Artist:          artist,
			Origin:          models.CatalogYouTube,
			Locator:         entry.ID,
			CollectionLabel: label,
		})
	}

	return records
}

// playlistTitle picks the playlist title reported by yt-dlp, falling back to
// the playlist ID when the dump omits it.
func playlistTitle(entries []VideoEntry, playlistID string) string {
	for _, entry := range entries {
		if entry.PlaylistTitle != "" {
			return entry.PlaylistTitle
		}
	}
	return playlistID
}
