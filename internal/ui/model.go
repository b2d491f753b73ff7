// Package ui is the Bubble Tea front end: the lazily rendered catalog
// surface, the history and profile panes, and the key mapper driving the
// session coordinator.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanalcli/kanal/internal/catalog"
	"github.com/kanalcli/kanal/internal/config"
	"github.com/kanalcli/kanal/internal/history"
	"github.com/kanalcli/kanal/internal/playlist"
	"github.com/kanalcli/kanal/internal/profile"
	"github.com/kanalcli/kanal/internal/session"
)

const (
	// chunkSize channels are materialized into the catalog surface per
	// lazy-render step.
	chunkSize = 30
	// scrollThreshold is how many rows from the bottom of the rendered
	// content a scroll position may be before the next chunk is appended.
	scrollThreshold = 4
	// cardHeight is the rendered height of one channel card.
	cardHeight = 2

	savedLabelDelay = 1200 * time.Millisecond
)

type pane int

const (
	paneCatalog pane = iota
	paneHistory
	paneProfile
	paneCount
)

type (
	catalogMsg struct {
		tv    []playlist.Channel
		radio []playlist.Channel
	}
	loadErrMsg   struct{ err error }
	savedTickMsg struct{}
)

type Model struct {
	cfg         config.Config
	fetcher     *playlist.Fetcher
	store       *catalog.Store
	hist        *history.Store
	coord       *session.Coordinator
	stateDir    string
	initialSlug string

	view     viewport.Model
	rendered []playlist.Channel
	cursor   int

	focus      pane
	histCursor int

	nameInput  textinput.Model
	emailInput textinput.Model
	inputIdx   int
	saveLabel  string

	loaded   bool
	loadErr  error
	showHelp bool
	width    int
	height   int
}

func New(cfg config.Config, fetcher *playlist.Fetcher, store *catalog.Store, hist *history.Store, coord *session.Coordinator, stateDir, initialSlug string) Model {
	name := textinput.New()
	name.Placeholder = "nickname"
	name.CharLimit = 64
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	p := profile.Load(stateDir)
	name.SetValue(p.Name)
	email.SetValue(p.Email)

	return Model{
		cfg:         cfg,
		fetcher:     fetcher,
		store:       store,
		hist:        hist,
		coord:       coord,
		stateDir:    stateDir,
		initialSlug: initialSlug,
		view:        viewport.New(0, 0),
		nameInput:   name,
		emailInput:  email,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadCatalog
}

// loadCatalog fetches both feeds in parallel; either failure aborts the
// pair so no partial catalog is ever shown.
func (m Model) loadCatalog() tea.Msg {
	tv, radio, err := m.fetcher.FetchAll(context.Background(), m.cfg.TVSource, m.cfg.RadioSource)
	if err != nil {
		return loadErrMsg{err: err}
	}
	return catalogMsg{tv: tv, radio: radio}
}

func savedTick() tea.Cmd {
	return tea.Tick(savedLabelDelay, func(time.Time) tea.Msg { return savedTickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.Width = max(m.width-sideWidth-4, 20)
		m.view.Height = max(m.height-chromeHeight, cardHeight)
		m.fillViewport()
		m.refreshContent()
		return m, nil

	case catalogMsg:
		m.store.SetList(playlist.TV, msg.tv)
		m.store.SetList(playlist.Radio, msg.radio)
		m.loaded = true
		ch, restored := m.coord.Restore(m.initialSlug)
		m.rebuildCatalog()
		if restored {
			m.ensureVisible(ch.Slug)
		}
		return m, nil

	case loadErrMsg:
		m.loadErr = msg.err
		return m, nil

	case savedTickMsg:
		m.saveLabel = ""
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		m.maybeExtend()
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loadErr != nil {
		switch msg.String() {
		case "q", "ctrl+c", "enter", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	// While a form field has focus everything except pane/field movement
	// belongs to the text input.
	if m.focus == paneProfile {
		return m.updateProfileKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		return m.cycleFocus()

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "1":
		m.switchCategory(playlist.TV)
		return m, nil

	case "2":
		m.switchCategory(playlist.Radio)
		return m, nil

	case "t":
		if m.coord.ActiveCategory() == playlist.TV {
			m.switchCategory(playlist.Radio)
		} else {
			m.switchCategory(playlist.TV)
		}
		return m, nil

	case "right":
		m.coord.AdjustVolume(session.VolumeStep)
		return m, nil

	case "left":
		m.coord.AdjustVolume(-session.VolumeStep)
		return m, nil

	case "m", "M":
		m.coord.ToggleMute()
		return m, nil

	case "down", "up":
		delta := 1
		if msg.String() == "up" {
			delta = -1
		}
		if m.focus == paneHistory {
			m.histCursor = clamp(m.histCursor+delta, 0, max(len(m.hist.List())-1, 0))
			return m, nil
		}
		if ch, ok := m.coord.Navigate(delta); ok {
			m.ensureVisible(ch.Slug)
		}
		return m, nil

	case "j", "k":
		if m.focus == paneCatalog {
			delta := 1
			if msg.String() == "k" {
				delta = -1
			}
			m.moveCursor(delta)
		}
		return m, nil

	case "enter":
		if m.focus == paneHistory {
			m.replayHistory()
			return m, nil
		}
		if m.cursor < len(m.rendered) {
			row := m.rendered[m.cursor]
			if row.Slug != m.coord.ActiveSlug() {
				m.coord.Select(row, row.Category, true)
				m.refreshContent()
				return m, nil
			}
		}
		m.coord.Replay()
		return m, nil

	case "x":
		if m.focus == paneHistory {
			m.hist.Clear()
			m.histCursor = 0
		}
		return m, nil
	}

	// Remaining keys (pgup/pgdown/home/end) scroll the catalog surface.
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	m.maybeExtend()
	return m, cmd
}

func (m Model) cycleFocus() (tea.Model, tea.Cmd) {
	m.focus = (m.focus + 1) % paneCount
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.refreshContent()
	if m.focus == paneProfile {
		m.inputIdx = 0
		m.nameInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "esc":
		m.nameInput.Blur()
		m.emailInput.Blur()
		m.focus = paneCatalog
		m.refreshContent()
		return m, nil

	case "up", "down":
		m.inputIdx = 1 - m.inputIdx
		if m.inputIdx == 0 {
			m.emailInput.Blur()
			m.nameInput.Focus()
		} else {
			m.nameInput.Blur()
			m.emailInput.Focus()
		}
		return m, textinput.Blink

	case "enter":
		p := profile.Profile{
			Name:  strings.TrimSpace(m.nameInput.Value()),
			Email: strings.TrimSpace(m.emailInput.Value()),
		}
		_ = profile.Save(m.stateDir, p)
		m.saveLabel = "Saved"
		return m, savedTick()
	}

	var cmd tea.Cmd
	if m.inputIdx == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.emailInput, cmd = m.emailInput.Update(msg)
	}
	return m, cmd
}

// rebuildCatalog clears the surface and renders the first chunk of the
// active category: the only path that repaints from scratch, so cards can
// never duplicate.
func (m *Model) rebuildCatalog() {
	cat := m.coord.ActiveCategory()
	m.store.ResetCursor(cat)
	m.rendered = m.rendered[:0]
	m.cursor = 0
	m.view.GotoTop()
	m.appendChunk()
	m.fillViewport()
	m.refreshContent()
}

// appendChunk materializes the next chunk; an empty chunk is the end of
// the list and a no-op, safe to hit repeatedly.
func (m *Model) appendChunk() bool {
	chunk := m.store.AdvanceCursor(m.coord.ActiveCategory(), chunkSize)
	if len(chunk) == 0 {
		return false
	}
	m.rendered = append(m.rendered, chunk...)
	m.refreshContent()
	return true
}

// fillViewport keeps appending while the rendered content is shorter than
// the visible surface.
func (m *Model) fillViewport() {
	for len(m.rendered)*cardHeight < m.view.Height+scrollThreshold {
		if !m.appendChunk() {
			return
		}
	}
}

// maybeExtend appends the next chunk once the scroll position is within
// scrollThreshold rows of the bottom of the rendered content.
func (m *Model) maybeExtend() {
	if m.view.YOffset+m.view.Height >= len(m.rendered)*cardHeight-scrollThreshold {
		m.appendChunk()
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.rendered) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.rendered)-1)
	m.scrollToCursor()
	m.maybeExtend()
	m.refreshContent()
}

// ensureVisible renders far enough into the list to show the channel with
// the given slug and moves the browse cursor onto it.
func (m *Model) ensureVisible(slug string) {
	idx := m.store.IndexOf(m.coord.ActiveCategory(), slug)
	if idx < 0 {
		return
	}
	for idx >= len(m.rendered) {
		if !m.appendChunk() {
			break
		}
	}
	if idx < len(m.rendered) {
		m.cursor = idx
		m.scrollToCursor()
	}
	m.refreshContent()
}

func (m *Model) scrollToCursor() {
	top := m.cursor * cardHeight
	if top < m.view.YOffset {
		m.view.SetYOffset(top)
	} else if bottom := top + cardHeight; bottom > m.view.YOffset+m.view.Height {
		m.view.SetYOffset(bottom - m.view.Height)
	}
}

func (m *Model) switchCategory(cat playlist.Category) {
	if !m.coord.SwitchCategory(cat) {
		return
	}
	m.rebuildCatalog()
	if first, ok := m.store.First(cat); ok {
		m.coord.Select(first, cat, false)
		m.refreshContent()
	}
}

// replayHistory re-enters the regular selection path: switch tab if the
// entry's category differs, then select with autoplay.
func (m *Model) replayHistory() {
	entries := m.hist.List()
	if m.histCursor >= len(entries) {
		return
	}
	e := entries[m.histCursor]
	if m.coord.SwitchCategory(e.Category) {
		m.rebuildCatalog()
	}
	m.coord.Select(e.Channel(), e.Category, true)
	m.ensureVisible(e.Slug)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
