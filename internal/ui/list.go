package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunedl/internal/services"
)

var _ list.Item = playlistItem{}

// playlistItem wraps [services.PlaylistInfo] to implement [list.Item].
type playlistItem struct {
	playlist services.PlaylistInfo
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d tracks", i.playlist.TrackCount)
}
