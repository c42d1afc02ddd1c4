// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/desertthunder/tunedl/internal/models"
	"github.com/desertthunder/tunedl/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	likedCollectionLabel = "Spotify Liked Songs"
)

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	URI        string          `json:"uri"`
}

// SpotifySavedTrack represents a track saved in the user's library.
type SpotifySavedTrack struct {
	AddedAt string       `json:"added_at"`
	Track   SpotifyTrack `json:"track"`
}

// SpotifyPaginatedTracks represents a paginated response of saved tracks.
type SpotifyPaginatedTracks struct {
	Items  []SpotifySavedTrack `json:"items"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
	Next   *string             `json:"next"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
//
// The track pointer is nil for episodes and unavailable entries.
type SpotifyPlaylistTrack struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

// SpotifyPaginatedPlaylistTracks represents a page of playlist entries.
type SpotifyPaginatedPlaylistTracks struct {
	Items  []SpotifyPlaylistTrack `json:"items"`
	Total  int                    `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
	Next   *string                `json:"next"`
}

type simplePlaylistTrack struct {
	Total int `json:"total"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Tracks simplePlaylistTrack `json:"tracks"`
}

// SpotifyPaginatedPlaylists represents a paginated response of playlists.
type SpotifyPaginatedPlaylists struct {
	Items  []SpotifySimplePlaylist `json:"items"`
	Total  int                     `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
	Next   *string                 `json:"next"`
}

// SpotifyService implements [Catalog] for Spotify API interactions.
// Uses [oauth2] for authentication and token refresh.
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8888/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-library-read",
			"playlist-read-private",
			"playlist-read-collaborative",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Authenticate performs OAuth2 authentication with Spotify.
// Expects either an "access_token" or "auth_code" in credentials.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		s.SetToken(ctx, &oauth2.Token{AccessToken: accessToken})
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
		}
		s.SetToken(ctx, token)
		return nil
	}

	return fmt.Errorf("%w: missing access_token or auth_code", shared.ErrMissingCredentials)
}

// SetToken installs an OAuth2 token; the client refreshes it automatically.
func (s *SpotifyService) SetToken(ctx context.Context, token *oauth2.Token) {
	s.token = token
	s.httpClient = s.config.Client(ctx, token)
}

// Token returns the current OAuth2 token (nil when unauthenticated).
func (s *SpotifyService) Token() *oauth2.Token {
	return s.token
}

// OAuthConfig exposes the OAuth2 configuration for callback handling.
func (s *SpotifyService) OAuthConfig() *oauth2.Config {
	return s.config
}

// doRequest performs an authenticated GET request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: status %d", shared.ErrTokenExpired, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("spotify API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SavedTracks retrieves one page of the user's saved tracks.
func (s *SpotifyService) SavedTracks(ctx context.Context, limit, offset int) (*SpotifyPaginatedTracks, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/me/tracks?limit=%d&offset=%d", limit, offset)

	var response SpotifyPaginatedTracks
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// PlaylistTracks retrieves one page of a playlist's entries.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string, limit, offset int) (*SpotifyPaginatedPlaylistTracks, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d&offset=%d", playlistID, limit, offset)

	var response SpotifyPaginatedPlaylistTracks
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// Playlists retrieves every playlist owned or followed by the user.
func (s *SpotifyService) Playlists(ctx context.Context) ([]PlaylistInfo, error) {
	var all []PlaylistInfo
	limit := 50
	offset := 0

	for {
		endpoint := fmt.Sprintf("/me/playlists?limit=%d&offset=%d", limit, offset)

		var page SpotifyPaginatedPlaylists
		if err := s.doRequest(ctx, endpoint, &page); err != nil {
			return nil, err
		}

		for _, sp := range page.Items {
			all = append(all, PlaylistInfo{
				ID:         sp.ID,
				Name:       sp.Name,
				TrackCount: sp.Tracks.Total,
			})
		}

		if page.Next == nil || len(page.Items) == 0 {
			break
		}
		offset += limit
	}

	return all, nil
}

// Liked returns every track in the user's saved list.
func (s *SpotifyService) Liked(ctx context.Context) ([]models.TrackRecord, error) {
	var records []models.TrackRecord
	limit := 50
	offset := 0

	for {
		page, err := s.SavedTracks(ctx, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
		}
		if len(page.Items) == 0 {
			break
		}

		for _, item := range page.Items {
			records = append(records, recordFromSpotifyTrack(item.Track, likedCollectionLabel))
		}

		if page.Next == nil {
			break
		}
		offset += limit
	}

	return records, nil
}

// Playlist returns the playlist name and every track in the playlist.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (string, []models.TrackRecord, error) {
	var meta struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := s.doRequest(ctx, "/playlists/"+playlistID, &meta); err != nil {
		return "", nil, fmt.Errorf("%w: %v", shared.ErrPlaylistNotFound, err)
	}

	var records []models.TrackRecord
	limit := 100
	offset := 0

	for {
		page, err := s.PlaylistTracks(ctx, playlistID, limit, offset)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
		}
		if len(page.Items) == 0 {
			break
		}

		for _, item := range page.Items {
			if item.Track == nil {
				continue
			}
			records = append(records, recordFromSpotifyTrack(*item.Track, meta.Name))
		}

		if page.Next == nil {
			break
		}
		offset += limit
	}

	return meta.Name, records, nil
}

// FromURL resolves a Spotify playlist or track URL to records.
func (s *SpotifyService) FromURL(ctx context.Context, rawURL string) (string, []models.TrackRecord, error) {
	parsed, err := shared.ParseCatalogURL(rawURL)
	if err != nil {
		return "", nil, err
	}

	switch parsed.Kind {
	case shared.URLSpotifyPlaylist:
		return s.Playlist(ctx, parsed.ID)

	case shared.URLSpotifyTrack:
		var track SpotifyTrack
		if err := s.doRequest(ctx, "/tracks/"+parsed.ID, &track); err != nil {
			return "", nil, fmt.Errorf("%w: %v", shared.ErrTrackNotFound, err)
		}
		record := recordFromSpotifyTrack(track, "")
		return "", []models.TrackRecord{record}, nil

	default:
		return "", nil, fmt.Errorf("%w: %q is not a Spotify URL", shared.ErrInvalidArgument, rawURL)
	}
}

// recordFromSpotifyTrack maps an API track to the canonical record. Artists
// are comma-joined; a track with no artists keeps an empty artist and is
// reported as unresolved downstream rather than substituted with a placeholder.
func recordFromSpotifyTrack(track SpotifyTrack, label string) models.TrackRecord {
	names := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		names = append(names, artist.Name)
	}

	return models.TrackRecord{
		Name:            track.Name,
		Artist:          strings.Join(names, ", "),
		Album:           track.Album.Name,
		Origin:          models.CatalogSpotify,
		CollectionLabel: label,
	}
}

// SaveTokenFile persists an OAuth2 token as JSON with user-only permissions.
func SaveTokenFile(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// LoadTokenFile reads a previously saved OAuth2 token.
func LoadTokenFile(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}
