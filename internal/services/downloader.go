// Audio download backend built on the yt-dlp client.
package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/tunedl/internal/shared"
)

// AudioDownloader fetches audio assets into per-collection directories.
// Implements the pipeline's downloader contract over the yt-dlp client.
type AudioDownloader struct {
	client  *YTDLPClient
	format  string
	quality string
}

// NewAudioDownloader creates a downloader producing files in the given audio
// format (mp3, m4a, opus, wav) at the given quality (kbps).
func NewAudioDownloader(client *YTDLPClient, format, quality string) *AudioDownloader {
	if format == "" {
		format = "mp3"
	}
	if quality == "" {
		quality = "320"
	}

	return &AudioDownloader{
		client:  client,
		format:  format,
		quality: quality,
	}
}

// FetchDirect downloads audio for a known video ID into destDir.
// Returns the local file path.
func (d *AudioDownloader) FetchDirect(ctx context.Context, locator, destDir, name, artist string) (string, error) {
	return d.fetch(ctx, WatchURL(locator), destDir, name, artist)
}

// fetch runs the download into destDir and returns the final audio path.
//
// Directory creation is idempotent; concurrent workers may create the same
// collection directory at once.
func (d *AudioDownloader) fetch(ctx context.Context, url, destDir, name, artist string) (string, error) {
	if destDir == "" {
		destDir = "."
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	base := safeFileName(name, artist)
	template := filepath.Join(destDir, base+".%(ext)s")

	if err := d.client.DownloadAudio(ctx, url, template, d.format, d.quality); err != nil {
		return "", err
	}

	path := filepath.Join(destDir, base+"."+d.format)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: expected output file missing: %v", shared.ErrDownloadFailed, err)
	}

	return path, nil
}

// safeFileName builds the "Artist - Name" file stem, sanitized for the
// filesystem. Degrades to "track" when both parts sanitize to nothing so the
// output template stays valid.
func safeFileName(name, artist string) string {
	stem := shared.SanitizeName(strings.TrimSpace(artist + " - " + name))
	if stem == "" {
		return "track"
	}
	return stem
}
