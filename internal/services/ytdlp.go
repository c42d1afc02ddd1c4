// yt-dlp subprocess client used by the YouTube Music catalog and the download backend.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/desertthunder/tunedl/internal/shared"
)

// CommandRunner executes an external command and returns its stdout.
// Abstracted so tests can substitute a fake without spawning processes.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with [exec.CommandContext].
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %s: %w", name, msg, err)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return stdout.Bytes(), nil
}

// VideoEntry is the subset of a yt-dlp JSON dump the pipeline needs.
type VideoEntry struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Uploader      string `json:"uploader"`
	PlaylistTitle string `json:"playlist_title"`
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// YTDLPClient wraps the yt-dlp binary.
//
// A cookie file (Netscape format) is attached to every invocation when
// configured; private listings such as the LM liked-songs playlist require it.
type YTDLPClient struct {
	binary     string
	cookieFile string
	runner     CommandRunner
}

// NewYTDLPClient creates a client for the given binary path and optional
// cookie file. A nil runner defaults to real subprocess execution.
func NewYTDLPClient(binary, cookieFile string, runner CommandRunner) *YTDLPClient {
	if binary == "" {
		binary = "yt-dlp"
	}
	if runner == nil {
		runner = execRunner{}
	}

	return &YTDLPClient{
		binary:     binary,
		cookieFile: cookieFile,
		runner:     runner,
	}
}

// baseArgs returns the flags shared by every invocation.
func (c *YTDLPClient) baseArgs() []string {
	args := []string{"--quiet", "--no-warnings"}
	if c.cookieFile != "" {
		args = append(args, "--cookies", c.cookieFile)
	}
	return args
}

// PlaylistEntries lists a playlist without downloading anything.
//
// Uses flat extraction, which emits one JSON object per entry on stdout.
func (c *YTDLPClient) PlaylistEntries(ctx context.Context, url string) ([]VideoEntry, error) {
	args := append(c.baseArgs(), "--flat-playlist", "--dump-json", url)

	out, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}

	return parseEntryLines(out)
}

// Search returns the first-ranked result for a query, or
// [shared.ErrTrackNotFound] when nothing matches. Only the upstream ranking
// is used; no local scoring.
func (c *YTDLPClient) Search(ctx context.Context, query string) (*VideoEntry, error) {
	args := append(c.baseArgs(), "--flat-playlist", "--dump-json", "ytsearch1:"+query)

	out, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	entries, err := parseEntryLines(out)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no results for %q", shared.ErrTrackNotFound, query)
	}

	return &entries[0], nil
}

// DownloadAudio downloads the best audio stream for a URL and extracts it to
// the requested format and quality via ffmpeg. The output template follows
// yt-dlp's -o syntax.
func (c *YTDLPClient) DownloadAudio(ctx context.Context, url, outputTemplate, format, quality string) error {
	args := append(c.baseArgs(),
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", format,
		"--audio-quality", quality,
		"--prefer-ffmpeg",
		"--output", outputTemplate,
		url,
	)

	if _, err := c.runner.Run(ctx, c.binary, args...); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDownloadFailed, err)
	}

	return nil
}

// parseEntryLines decodes newline-delimited JSON entries.
func parseEntryLines(out []byte) ([]VideoEntry, error) {
	var entries []VideoEntry

	for _, line := range bytes.Split(out, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var entry VideoEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
		}
		if entry.ID == "" {
			continue
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
