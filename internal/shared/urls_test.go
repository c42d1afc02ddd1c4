package shared

import (
	"errors"
	"testing"
)

func TestParseCatalogURL(t *testing.T) {
	tc := []struct {
		name     string
		input    string
		wantKind URLKind
		wantID   string
		wantErr  bool
	}{
		{
			name:     "spotify playlist URL",
			input:    "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
			wantKind: URLSpotifyPlaylist,
			wantID:   "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name:     "spotify playlist URL with query",
			input:    "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abcd",
			wantKind: URLSpotifyPlaylist,
			wantID:   "37i9dQZF1DXcBWIGoYBM5M",
		},
		{
			name:     "spotify track URI",
			input:    "spotify:track:11dFghVXANMlKmJXsNCbNl",
			wantKind: URLSpotifyTrack,
			wantID:   "11dFghVXANMlKmJXsNCbNl",
		},
		{
			name:     "youtube music playlist",
			input:    "https://music.youtube.com/playlist?list=PLabc123",
			wantKind: URLYouTubePlaylist,
			wantID:   "PLabc123",
		},
		{
			name:     "liked songs playlist",
			input:    "https://music.youtube.com/playlist?list=LM",
			wantKind: URLYouTubePlaylist,
			wantID:   "LM",
		},
		{
			name:     "watch URL",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantKind: URLYouTubeVideo,
			wantID:   "dQw4w9WgXcQ",
		},
		{
			name:     "short URL",
			input:    "https://youtu.be/dQw4w9WgXcQ",
			wantKind: URLYouTubeVideo,
			wantID:   "dQw4w9WgXcQ",
		},
		{
			name:     "bare video id",
			input:    "dQw4w9WgXcQ",
			wantKind: URLYouTubeVideo,
			wantID:   "dQw4w9WgXcQ",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "unrecognized host",
			input:   "https://example.com/watch?v=dQw4w9WgXcQ",
			wantErr: true,
		},
		{
			name:    "playlist URL without list param",
			input:   "https://music.youtube.com/playlist",
			wantErr: true,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseCatalogURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCatalogURL(%q) expected error, got %+v", tt.input, parsed)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCatalogURL(%q) error = %v", tt.input, err)
			}
			if parsed.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", parsed.Kind, tt.wantKind)
			}
			if parsed.ID != tt.wantID {
				t.Errorf("id = %q, want %q", parsed.ID, tt.wantID)
			}
		})
	}
}

func TestParseCatalogURLErrors(t *testing.T) {
	_, err := ParseCatalogURL("https://example.com/nothing")
	if !errors.Is(err, ErrUnrecognizedURL) {
		t.Errorf("expected ErrUnrecognizedURL, got %v", err)
	}

	_, err = ParseCatalogURL("")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty input, got %v", err)
	}
}
