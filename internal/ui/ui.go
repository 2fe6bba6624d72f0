// Package ui implements the interactive terminal presentation of an
// aggregated playlist: a track list re-derived through the view engine on
// every sort or search change.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ekysel/tracklist/internal/models"
	"github.com/ekysel/tracklist/internal/view"
)

// inputMode tracks whether keystrokes drive the list or the search field.
type inputMode int

const (
	browsing inputMode = iota
	searching
)

// trackItem wraps [models.Track] to implement list.Item.
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	desc := i.track.Artist
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	if i.track.Year != "" {
		desc = fmt.Sprintf("%s (%s)", desc, i.track.Year)
	}
	return desc
}

// Model represents the TUI application state. The canonical playlist is
// never mutated; the visible list is recomputed from the view state.
type Model struct {
	playlist  *models.Playlist
	state     view.State
	mode      inputMode
	trackList list.Model
	search    textinput.Model
	keys      keyMap
	help      help.Model
	width     int
	height    int
}

// NewModel creates a TUI model presenting the given playlist.
func NewModel(playlist *models.Playlist) *Model {
	search := textinput.New()
	search.Placeholder = "search title, artist, or album"
	search.Prompt = "/ "

	m := &Model{
		playlist: playlist,
		search:   search,
		keys:     newKeyMap(),
		help:     help.New(),
	}

	m.trackList = list.New(trackItems(playlist.Tracks), list.NewDefaultDelegate(), 0, 0)
	m.trackList.Title = playlist.Name
	m.trackList.Styles.Title = styles.title
	// Search runs through the view engine, not the list's built-in filter.
	m.trackList.SetFilteringEnabled(false)
	m.trackList.SetShowHelp(false)

	return m
}

// SetPlaylist replaces the presented playlist and resets the view state to
// its defaults.
func (m *Model) SetPlaylist(playlist *models.Playlist) {
	m.playlist = playlist
	m.state = view.State{}
	m.search.SetValue("")
	m.trackList.Title = playlist.Name
	m.refresh()
}

// State exposes the current view state.
func (m *Model) State() view.State {
	return m.state
}

func (m *Model) refresh() {
	m.trackList.SetItems(trackItems(view.Apply(m.playlist.Tracks, m.state)))
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, track := range tracks {
		items[i] = trackItem{track: track}
	}
	return items
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.trackList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if m.mode == searching {
			return m.handleSearchKeys(msg)
		}
		return m.handleBrowseKeys(msg)
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s":
		m.state.Sort = m.state.Sort.Next()
		m.refresh()
		return m, nil
	case "/":
		m.mode = searching
		return m, m.search.Focus()
	case "esc":
		if m.state.Query != "" {
			m.state.Query = ""
			m.search.SetValue("")
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = browsing
		m.search.Blur()
		return m, nil
	case "esc":
		m.mode = browsing
		m.search.Blur()
		m.search.SetValue("")
		m.state.Query = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Query {
		m.state.Query = m.search.Value()
		m.refresh()
	}
	return m, cmd
}

// View renders the track list with a status line and contextual help.
func (m *Model) View() string {
	status := fmt.Sprintf("sort: %s", m.state.Sort)
	if m.state.Query != "" {
		status = fmt.Sprintf("%s | search: %q", status, m.state.Query)
	}
	status = fmt.Sprintf("%s | %d tracks", status, len(m.trackList.Items()))

	bottom := styles.status.Render(status)
	if m.mode == searching {
		bottom = m.search.View()
	}

	return fmt.Sprintf("%s\n%s\n%s", m.trackList.View(), bottom, m.help.View(m.keys))
}
