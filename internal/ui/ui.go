package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunedl/internal/models"
	"github.com/desertthunder/tunedl/internal/services"
	"github.com/desertthunder/tunedl/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PickerView ViewState = iota
	ConfirmView
	RunView
	ResultView
)

// PlaylistLister is the slice of the Spotify service the picker needs.
type PlaylistLister interface {
	Playlists(ctx context.Context) ([]services.PlaylistInfo, error)
	Playlist(ctx context.Context, playlistID string) (string, []models.TrackRecord, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	spotify      PlaylistLister
	engine       *tasks.ResolveEngine
	runOpts      tasks.RunOpts
	width        int
	height       int
	playlistList list.Model
	selected     services.PlaylistInfo
	records      []models.TrackRecord
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	report       *models.Report
	err          error
	help         help.Model
	keys         keyMap
}

type playlistsFetchedMsg struct {
	playlists []services.PlaylistInfo
	err       error
}

type tracksFetchedMsg struct {
	label   string
	records []models.TrackRecord
	err     error
}

type progressUpdateMsg tasks.ProgressUpdate

type runCompleteMsg struct {
	report *models.Report
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, spotify PlaylistLister, engine *tasks.ResolveEngine, runOpts tasks.RunOpts) *Model {
	return &Model{
		ctx:     ctx,
		view:    PickerView,
		spotify: spotify,
		engine:  engine,
		runOpts: runOpts,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by fetching playlists from Spotify.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PickerView:
			return m.handlePickerKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Spotify Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case tracksFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PickerView
			return m, nil
		}
		m.records = msg.records
		m.view = ConfirmView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case runCompleteMsg:
		m.report = msg.report
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PickerView:
		return m.renderPicker()
	case ConfirmView:
		return m.renderConfirm()
	case RunView:
		return m.renderRun()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

// Report returns the finished run's report, nil if no run completed.
func (m *Model) Report() *models.Report {
	return m.report
}

// Err returns the terminal error, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				m.selected = pl.playlist
				return m, m.fetchTracks(pl.playlist.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.view = PickerView
		return m, nil
	case "y", "enter":
		m.view = RunView
		return m, m.startRun()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == PickerView {
		m.playlistList, cmd = m.playlistList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.spotify.Playlists(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchTracks(playlistID string) tea.Cmd {
	return func() tea.Msg {
		label, records, err := m.spotify.Playlist(m.ctx, playlistID)
		return tracksFetchedMsg{label: label, records: records, err: err}
	}
}

func (m *Model) startRun() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	go func() {
		report, err := m.engine.Run(m.ctx, progress, m.records, m.runOpts)
		m.report = report
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	return func() tea.Msg {
		if progress == nil {
			return runCompleteMsg{report: m.report, err: m.err}
		}

		update, ok := <-progress
		if !ok {
			return runCompleteMsg{report: m.report, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPicker() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Download '%s'?", m.selected.Name))
	info := fmt.Sprintf("\nPlaylist: %s\nTracks: %d\n", m.selected.Name, len(m.records))

	if len(m.records) > tasks.LargeRunThreshold {
		info += styles.warn.Render(fmt.Sprintf("\nLarge run: %d tracks exceed the %d-track threshold.\n", len(m.records), tasks.LargeRunThreshold))
	}
	if m.runOpts.ResolveOnly {
		info += "\nResolve-only: nothing will be downloaded.\n"
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderRun() string {
	title := styles.title.Render(fmt.Sprintf("Downloading '%s'", m.selected.Name))

	var phase string
	switch m.progress.Phase {
	case tasks.Preparing:
		phase = "Preparing tracks..."
	case tasks.Resolving:
		phase = fmt.Sprintf("Resolving tracks (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Reporting:
		phase = "Writing report..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Run failed: %v\n\nPress q to quit", m.err))
	}

	if m.report == nil {
		return styles.err.Render("No report available\n\nPress q to quit")
	}

	title := styles.ok.Render("✓ Run Complete")
	info := fmt.Sprintf(
		"\nPlaylist: %s\nSucceeded: %d/%d\nFailed: %d",
		m.selected.Name,
		m.report.Succeeded,
		m.report.Total,
		m.report.Failed,
	)

	var failed string
	if m.report.Failed > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Failed tracks (%d):", m.report.Failed)))
		for _, outcome := range m.report.Outcomes {
			if !outcome.Succeeded {
				failed += fmt.Sprintf("\n  • %s - %s", outcome.Track.Artist, outcome.Track.Name)
			}
		}
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
