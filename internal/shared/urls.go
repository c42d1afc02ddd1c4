// Parsing for the catalog URL shapes the CLI accepts.
package shared

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// URLKind enumerates the recognized catalog URL variants.
type URLKind int

const (
	URLUnrecognized URLKind = iota
	URLSpotifyPlaylist
	URLSpotifyTrack
	URLYouTubePlaylist
	URLYouTubeVideo
)

func (k URLKind) String() string {
	switch k {
	case URLSpotifyPlaylist:
		return "spotify_playlist"
	case URLSpotifyTrack:
		return "spotify_track"
	case URLYouTubePlaylist:
		return "youtube_playlist"
	case URLYouTubeVideo:
		return "youtube_video"
	default:
		return "unrecognized"
	}
}

// CatalogURL is the parsed form of a user-supplied catalog URL.
type CatalogURL struct {
	Kind URLKind
	ID   string // playlist ID, track ID, or video ID
	Raw  string
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseCatalogURL classifies a raw input string as one of the known catalog
// URL variants. Spotify URLs and URIs, YouTube/YouTube Music playlist and
// watch URLs, and bare 11-character video IDs are recognized; anything else
// returns [ErrUnrecognizedURL].
func ParseCatalogURL(raw string) (*CatalogURL, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidInput)
	}

	// spotify:playlist:<id> / spotify:track:<id> URIs
	if rest, ok := strings.CutPrefix(input, "spotify:playlist:"); ok && rest != "" {
		return &CatalogURL{Kind: URLSpotifyPlaylist, ID: rest, Raw: raw}, nil
	}
	if rest, ok := strings.CutPrefix(input, "spotify:track:"); ok && rest != "" {
		return &CatalogURL{Kind: URLSpotifyTrack, ID: rest, Raw: raw}, nil
	}

	if u, err := url.Parse(input); err == nil && u.Host != "" {
		switch {
		case strings.HasSuffix(u.Host, "spotify.com"):
			if id, ok := pathID(u.Path, "playlist"); ok {
				return &CatalogURL{Kind: URLSpotifyPlaylist, ID: id, Raw: raw}, nil
			}
			if id, ok := pathID(u.Path, "track"); ok {
				return &CatalogURL{Kind: URLSpotifyTrack, ID: id, Raw: raw}, nil
			}

		case strings.HasSuffix(u.Host, "youtube.com"), strings.HasSuffix(u.Host, "music.youtube.com"):
			if strings.HasPrefix(u.Path, "/playlist") {
				if list := u.Query().Get("list"); list != "" {
					return &CatalogURL{Kind: URLYouTubePlaylist, ID: list, Raw: raw}, nil
				}
			}
			if strings.HasPrefix(u.Path, "/watch") {
				if v := u.Query().Get("v"); v != "" {
					return &CatalogURL{Kind: URLYouTubeVideo, ID: v, Raw: raw}, nil
				}
			}

		case u.Host == "youtu.be":
			if id := strings.Trim(u.Path, "/"); id != "" {
				return &CatalogURL{Kind: URLYouTubeVideo, ID: id, Raw: raw}, nil
			}
		}
	}

	if videoIDPattern.MatchString(input) {
		return &CatalogURL{Kind: URLYouTubeVideo, ID: input, Raw: raw}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnrecognizedURL, raw)
}

// pathID extracts the identifier segment following /<kind>/ in a URL path.
func pathID(path, kind string) (string, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if seg == kind && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], true
		}
	}
	return "", false
}
