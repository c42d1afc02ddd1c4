// package services defines the interfaces for music catalogs and download backends
package services

import (
	"context"

	"github.com/desertthunder/tunedl/internal/models"
	"golang.org/x/oauth2"
)

// Catalog is a source of track listings (Spotify, YouTube Music).
type Catalog interface {
	// Name returns the catalog name for logging and error messages.
	Name() string

	// Liked returns every track in the user's liked/saved list.
	Liked(ctx context.Context) ([]models.TrackRecord, error)

	// Playlist returns the collection label (playlist name) and tracks for a
	// playlist ID.
	Playlist(ctx context.Context, playlistID string) (string, []models.TrackRecord, error)

	// FromURL resolves a raw catalog URL to a collection label and tracks.
	FromURL(ctx context.Context, rawURL string) (string, []models.TrackRecord, error)
}

// Searcher finds the best-matching asset locator for a track's metadata.
// Only the upstream ranking is used: the first candidate wins.
type Searcher interface {
	BestMatch(ctx context.Context, name, artist string) (string, error)
}

// PlaylistBrowser lists a user's playlists for interactive selection.
type PlaylistBrowser interface {
	Playlists(ctx context.Context) ([]PlaylistInfo, error)
}

// OAuthCatalog is a catalog whose session is established via OAuth2.
type OAuthCatalog interface {
	Catalog
	GetAuthURL(state string) string
	OAuthConfig() *oauth2.Config
	SetToken(ctx context.Context, token *oauth2.Token)
}

// PlaylistInfo is a playlist summary used by listing commands and the picker.
type PlaylistInfo struct {
	ID         string
	Name       string
	TrackCount int
}
