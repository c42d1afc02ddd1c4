package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tunedl/internal/models"
	"github.com/desertthunder/tunedl/internal/shared"
	tu "github.com/desertthunder/tunedl/internal/testing"
	"github.com/urfave/cli/v3"
)

func sampleRecords(n int) []models.TrackRecord {
	records := make([]models.TrackRecord, n)
	for i := range records {
		records[i] = models.TrackRecord{
			Name:            fmt.Sprintf("Track %04d", i),
			Artist:          "Artist",
			Origin:          models.CatalogSpotify,
			Locator:         fmt.Sprintf("video%04d", i),
			CollectionLabel: "Test Mix",
		}
	}
	return records
}

type pipelineFixture struct {
	runner     *Runner
	output     *bytes.Buffer
	downloader *tu.MockDownloader
	app        *cli.Command
}

func newPipelineFixture(t *testing.T, records []models.TrackRecord, input io.Reader) *pipelineFixture {
	t.Helper()

	if input == nil {
		input = strings.NewReader("")
	}

	output := &bytes.Buffer{}
	downloader := &tu.MockDownloader{}

	runner, err := NewRunner(RunnerOpts{
		Spotify:    &tu.MockCatalog{Label: "Test Mix", Records: records},
		YouTube:    &tu.MockCatalog{Label: "Test Mix", Records: records},
		Downloader: downloader,
		Searcher:   &tu.MockSearcher{Locator: "searched01"},
		Output:     output,
		Input:      input,
	})
	if err != nil {
		t.Fatalf("failed to build runner: %v", err)
	}

	return &pipelineFixture{
		runner:     runner,
		output:     output,
		downloader: downloader,
		app:        &cli.Command{Name: "tunedl", Commands: runner.register()},
	}
}

func (f *pipelineFixture) run(t *testing.T, args ...string) error {
	t.Helper()
	return f.app.Run(context.Background(), append([]string{"tunedl"}, args...))
}

func TestDownloadLiked(t *testing.T) {
	t.Run("downloads every liked track and writes the report", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(3), nil)
		reportPath := filepath.Join(t.TempDir(), "report.json")

		err := fixture.run(t, "download", "liked",
			"--output", t.TempDir(),
			"--report", reportPath,
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if calls := fixture.downloader.Calls(); calls != 3 {
			t.Errorf("expected 3 downloads, got %d", calls)
		}
		if !strings.Contains(fixture.output.String(), "Succeeded: 3") {
			t.Errorf("expected summary in output, got %q", fixture.output.String())
		}
		tu.AssertFileExists(t, reportPath)

		content := tu.MustReadFile(t, reportPath)
		if !strings.Contains(content, "\"total\": 3") {
			t.Errorf("expected report total of 3, got %s", content)
		}
	})

	t.Run("duplicate tracks settle once", func(t *testing.T) {
		records := sampleRecords(2)
		records = append(records, records[0], records[1])
		fixture := newPipelineFixture(t, records, nil)

		err := fixture.run(t, "download", "liked",
			"--output", t.TempDir(),
			"--report", filepath.Join(t.TempDir(), "report.json"),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if calls := fixture.downloader.Calls(); calls != 2 {
			t.Errorf("expected 2 downloads after dedupe, got %d", calls)
		}
		if !strings.Contains(fixture.output.String(), "duplicates dropped") {
			t.Errorf("expected dedupe notice in output, got %q", fixture.output.String())
		}
	})

	t.Run("resolve-only skips the download backend", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(2), nil)

		err := fixture.run(t, "download", "liked",
			"--resolve-only",
			"--report", filepath.Join(t.TempDir(), "report.json"),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if calls := fixture.downloader.Calls(); calls != 0 {
			t.Errorf("expected no downloads in resolve-only mode, got %d", calls)
		}
	})

	t.Run("failed tracks surface in the summary without failing the run", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(2), nil)
		fixture.downloader.Err = shared.ErrDownloadFailed

		err := fixture.run(t, "download", "liked",
			"--output", t.TempDir(),
			"--report", filepath.Join(t.TempDir(), "report.json"),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(fixture.output.String(), "Failed: 2") {
			t.Errorf("expected failure count in summary, got %q", fixture.output.String())
		}
		if !strings.Contains(fixture.output.String(), "Failed tracks:") {
			t.Errorf("expected failed track listing, got %q", fixture.output.String())
		}
	})

	t.Run("empty catalog is an input error", func(t *testing.T) {
		fixture := newPipelineFixture(t, nil, nil)

		err := fixture.run(t, "download", "liked")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown source is rejected", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(1), nil)

		err := fixture.run(t, "download", "liked", "--source", "soundcloud")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestDownloadLargeRunGate(t *testing.T) {
	t.Run("aborts when the user declines", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(1001), strings.NewReader("n\n"))
		reportPath := filepath.Join(t.TempDir(), "report.json")

		err := fixture.run(t, "download", "liked", "--resolve-only", "--report", reportPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(fixture.output.String(), "Aborted.") {
			t.Errorf("expected abort notice, got %q", fixture.output.String())
		}
		if calls := fixture.downloader.Calls(); calls != 0 {
			t.Errorf("expected no downloads after abort, got %d", calls)
		}
	})

	t.Run("proceeds when the user accepts", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(1001), strings.NewReader("y\n"))
		reportPath := filepath.Join(t.TempDir(), "report.json")

		err := fixture.run(t, "download", "liked", "--resolve-only", "--report", reportPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, reportPath)
		if !strings.Contains(fixture.output.String(), "Succeeded: 1001") {
			t.Errorf("expected full run summary, got %q", fixture.output.String())
		}
	})

	t.Run("--yes skips the prompt", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(1001), strings.NewReader(""))
		reportPath := filepath.Join(t.TempDir(), "report.json")

		err := fixture.run(t, "download", "liked", "--resolve-only", "--yes", "--report", reportPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, reportPath)
		if strings.Contains(fixture.output.String(), "Continue?") {
			t.Errorf("expected no prompt with --yes, got %q", fixture.output.String())
		}
	})

	t.Run("threshold-sized runs skip the prompt", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(1000), strings.NewReader(""))

		err := fixture.run(t, "download", "liked", "--resolve-only",
			"--report", filepath.Join(t.TempDir(), "report.json"),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(fixture.output.String(), "Continue?") {
			t.Errorf("expected no prompt at the threshold, got %q", fixture.output.String())
		}
	})
}

func TestDownloadPlaylist(t *testing.T) {
	t.Run("requires a playlist ID", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(1), nil)

		err := fixture.run(t, "download", "playlist")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("prints the playlist label before running", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(2), nil)

		err := fixture.run(t, "download", "playlist", "--output", t.TempDir(),
			"--report", filepath.Join(t.TempDir(), "report.json"),
			"--", "37i9dQZF1DXcBWIGoYBM5M",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(fixture.output.String(), "Playlist: Test Mix (2 tracks)") {
			t.Errorf("expected playlist label, got %q", fixture.output.String())
		}
	})
}

func TestDownloadURL(t *testing.T) {
	t.Run("requires a URL", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(1), nil)

		err := fixture.run(t, "download", "url")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("rejects unrecognized URLs", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(1), nil)

		err := fixture.run(t, "download", "url", "--", "https://example.com/stream/42")
		if !errors.Is(err, shared.ErrUnrecognizedURL) {
			t.Errorf("expected ErrUnrecognizedURL, got %v", err)
		}
	})

	t.Run("dispatches youtube URLs to the youtube catalog", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(1), nil)

		err := fixture.run(t, "download", "url", "--output", t.TempDir(),
			"--report", filepath.Join(t.TempDir(), "report.json"),
			"--", "https://music.youtube.com/playlist?list=PLtest",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if calls := fixture.downloader.Calls(); calls != 1 {
			t.Errorf("expected 1 download, got %d", calls)
		}
	})

	t.Run("dispatches spotify URLs to the spotify catalog", func(t *testing.T) {
		fixture := newPipelineFixture(t, sampleRecords(1), nil)

		err := fixture.run(t, "download", "url", "--output", t.TempDir(),
			"--report", filepath.Join(t.TempDir(), "report.json"),
			"--", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if calls := fixture.downloader.Calls(); calls != 1 {
			t.Errorf("expected 1 download, got %d", calls)
		}
	})
}
