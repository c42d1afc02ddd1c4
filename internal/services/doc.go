// Package services implements the catalog sources and download backend the
// pipeline consumes.
//
// # Catalog Interface
//
// Both music catalogs implement a common abstraction, [Catalog], yielding
// [models.TrackRecord] values for liked lists, playlists, and raw URLs.
//
// # Spotify Implementation
//
// [SpotifyService] talks to the Spotify Web API directly and uses OAuth2 for
// authentication with automatic token refresh. Tokens can be cached to disk
// between runs with [SaveTokenFile] and [LoadTokenFile].
//
// # YouTube Music Implementation
//
// [YouTubeService] is backed by the yt-dlp binary through [YTDLPClient].
// Listings use flat playlist extraction (the liked-songs list is the LM
// playlist, reachable only with a session cookie file); search uses the
// ytsearch1: pseudo-URL. Entry titles are split on "Artist - Title" with the
// uploader as the artist fallback.
//
// # Download Backend
//
// [AudioDownloader] implements the pipeline's downloader contract on top of
// [YTDLPClient]: it fetches a resolved video ID as audio into a destination
// directory, naming the file from the sanitized artist and title.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : credentials or cookie file missing
//   - [shared.ErrCatalogUnavailable] : listing request failed
//   - [shared.ErrTrackNotFound] : search produced no candidates
//   - [shared.ErrDownloadFailed] : yt-dlp accepted a locator but produced no file
package services
