package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/desertthunder/tunedl/internal/shared"
)

// fakeRunner records invocations and returns canned output.
type fakeRunner struct {
	output []byte
	err    error
	calls  [][]string
	onRun  func(name string, args []string)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.onRun != nil {
		f.onRun(name, args)
	}
	return f.output, f.err
}

func (f *fakeRunner) lastCall() []string {
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func TestYTDLPClientPlaylistEntries(t *testing.T) {
	t.Run("parses newline-delimited entries", func(t *testing.T) {
		runner := &fakeRunner{output: []byte(
			`{"id":"vid1","title":"Artist One - Song One","uploader":"Artist One","playlist_title":"Road Trip"}
{"id":"vid2","title":"Artist Two - Song Two","uploader":"uploader2","playlist_title":"Road Trip"}
`)}
		client := NewYTDLPClient("yt-dlp", "", runner)

		entries, err := client.PlaylistEntries(context.Background(), "https://music.youtube.com/playlist?list=PL1")
		if err != nil {
			t.Fatalf("PlaylistEntries() error = %v", err)
		}

		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].ID != "vid1" || entries[1].ID != "vid2" {
			t.Errorf("unexpected entry IDs: %+v", entries)
		}
		if entries[0].PlaylistTitle != "Road Trip" {
			t.Errorf("playlist title = %q", entries[0].PlaylistTitle)
		}

		call := runner.lastCall()
		if !slices.Contains(call, "--flat-playlist") || !slices.Contains(call, "--dump-json") {
			t.Errorf("expected flat dump flags, got %v", call)
		}
		if slices.Contains(call, "--cookies") {
			t.Errorf("no cookie file configured, got %v", call)
		}
	})

	t.Run("attaches cookie file", func(t *testing.T) {
		runner := &fakeRunner{output: []byte(`{"id":"vid1","title":"t"}`)}
		client := NewYTDLPClient("yt-dlp", "/tmp/cookies.txt", runner)

		if _, err := client.PlaylistEntries(context.Background(), "url"); err != nil {
			t.Fatalf("PlaylistEntries() error = %v", err)
		}

		call := runner.lastCall()
		idx := slices.Index(call, "--cookies")
		if idx < 0 || idx+1 >= len(call) || call[idx+1] != "/tmp/cookies.txt" {
			t.Errorf("expected --cookies /tmp/cookies.txt, got %v", call)
		}
	})

	t.Run("command failure maps to catalog unavailable", func(t *testing.T) {
		runner := &fakeRunner{err: fmt.Errorf("exit status 1")}
		client := NewYTDLPClient("yt-dlp", "", runner)

		_, err := client.PlaylistEntries(context.Background(), "url")
		if !errors.Is(err, shared.ErrCatalogUnavailable) {
			t.Errorf("expected ErrCatalogUnavailable, got %v", err)
		}
	})

	t.Run("skips blank lines and idless entries", func(t *testing.T) {
		runner := &fakeRunner{output: []byte("\n{\"id\":\"\",\"title\":\"x\"}\n{\"id\":\"vid1\",\"title\":\"y\"}\n\n")}
		client := NewYTDLPClient("yt-dlp", "", runner)

		entries, err := client.PlaylistEntries(context.Background(), "url")
		if err != nil {
			t.Fatalf("PlaylistEntries() error = %v", err)
		}
		if len(entries) != 1 || entries[0].ID != "vid1" {
			t.Errorf("unexpected entries: %+v", entries)
		}
	})
}

func TestYTDLPClientSearch(t *testing.T) {
	t.Run("returns first result", func(t *testing.T) {
		runner := &fakeRunner{output: []byte(
			`{"id":"top","title":"Best Match"}
{"id":"second","title":"Runner Up"}
`)}
		client := NewYTDLPClient("yt-dlp", "", runner)

		entry, err := client.Search(context.Background(), "song artist")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if entry.ID != "top" {
			t.Errorf("entry.ID = %q, want top", entry.ID)
		}

		call := runner.lastCall()
		if call[len(call)-1] != "ytsearch1:song artist" {
			t.Errorf("expected ytsearch1 query as last arg, got %v", call)
		}
	})

	t.Run("empty result is track not found", func(t *testing.T) {
		runner := &fakeRunner{output: []byte("")}
		client := NewYTDLPClient("yt-dlp", "", runner)

		_, err := client.Search(context.Background(), "nothing here")
		if !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
	})
}

func TestYTDLPClientDownloadAudio(t *testing.T) {
	runner := &fakeRunner{}
	client := NewYTDLPClient("yt-dlp", "", runner)

	err := client.DownloadAudio(context.Background(), WatchURL("vid1"), "out/%(ext)s", "mp3", "320")
	if err != nil {
		t.Fatalf("DownloadAudio() error = %v", err)
	}

	call := runner.lastCall()
	for _, want := range []string{"--extract-audio", "--audio-format", "mp3", "--audio-quality", "320", "--output"} {
		if !slices.Contains(call, want) {
			t.Errorf("missing %q in %v", want, call)
		}
	}
	if call[len(call)-1] != "https://www.youtube.com/watch?v=vid1" {
		t.Errorf("expected watch URL as last arg, got %v", call)
	}

	t.Run("failure maps to download failed", func(t *testing.T) {
		runner := &fakeRunner{err: fmt.Errorf("exit status 1")}
		client := NewYTDLPClient("yt-dlp", "", runner)

		err := client.DownloadAudio(context.Background(), "url", "tmpl", "mp3", "320")
		if !errors.Is(err, shared.ErrDownloadFailed) {
			t.Errorf("expected ErrDownloadFailed, got %v", err)
		}
	})
}
