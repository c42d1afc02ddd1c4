// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/desertthunder/tunedl/internal/models"
	"github.com/desertthunder/tunedl/internal/services"
	"github.com/desertthunder/tunedl/internal/shared"
)

// MockCatalog is a test double for [services.Catalog].
type MockCatalog struct {
	Label   string
	Records []models.TrackRecord
	Err     error
	Lists   []services.PlaylistInfo
}

func (m *MockCatalog) Name() string { return "mock" }

func (m *MockCatalog) Liked(ctx context.Context) ([]models.TrackRecord, error) {
	return m.Records, m.Err
}

func (m *MockCatalog) Playlist(ctx context.Context, playlistID string) (string, []models.TrackRecord, error) {
	return m.Label, m.Records, m.Err
}

func (m *MockCatalog) FromURL(ctx context.Context, rawURL string) (string, []models.TrackRecord, error) {
	return m.Label, m.Records, m.Err
}

func (m *MockCatalog) Playlists(ctx context.Context) ([]services.PlaylistInfo, error) {
	return m.Lists, m.Err
}

// MockDownloader is a test double for the pipeline's download backend.
type MockDownloader struct {
	Err error

	mu    sync.Mutex
	calls int
}

func (m *MockDownloader) FetchDirect(ctx context.Context, locator, destDir, name, artist string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	return filepath.Join(destDir, artist+" - "+name+".mp3"), nil
}

func (m *MockDownloader) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockSearcher is a test double for the pipeline's search backend.
type MockSearcher struct {
	Locator string
	Err     error
}

func (m *MockSearcher) BestMatch(ctx context.Context, name, artist string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Locator == "" {
		return "", shared.ErrTrackNotFound
	}
	return m.Locator, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
