// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package injector

import (
	"context"
	_ "embed"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/gdinject/internal/app"
	"github.com/jeranaias/gdinject/internal/editor"
	"github.com/jeranaias/gdinject/internal/shortcut"
	"github.com/jeranaias/gdinject/internal/ui/components"
	"github.com/jeranaias/gdinject/internal/ui/styles"
)

//go:embed help.md
var helpMarkdown string

// =============================================================================
// OPTIONS
// =============================================================================

// Options tunes the model. Zero values fall back to the defaults below.
type Options struct {
	// HideDelay is how long the suggestion list survives the editor losing focus.
	HideDelay time.Duration

	// MaxVisible is the number of suggestion rows shown at once.
	MaxVisible int

	// StatusTTL clears the status line after a while. Zero keeps it.
	StatusTTL time.Duration
}

const (
	DefaultHideDelay  = 100 * time.Millisecond
	DefaultMaxVisible = 8
)

// =============================================================================
// FOCUS AND DIALOGS
// =============================================================================

type focus int

const (
	focusEditor focus = iota
	focusMetrics
	focusAttributes
	focusDates
	focusCount
)

type dialog int

const (
	dialogNone dialog = iota
	dialogAddShortcut
	dialogEditShortcut
	dialogAddPID
	dialogDelete
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the injector.
type Model struct {
	app   *app.App
	ed    *editor.Editor
	theme *styles.Theme
	keys  KeyMap
	opts  Options
	ctx   context.Context

	width  int
	height int
	focus  focus

	panels   [3]*components.ShortcutPanel
	popup    *components.SuggestionPopup
	form     *components.Form
	confirm  *components.Confirm
	status   *components.StatusBar
	helpView *components.HelpView
	help     help.Model

	dialog         dialog
	dialogCategory shortcut.Category
	dialogTarget   string

	// First visible editor line and column.
	scrollY int
	scrollX int

	statusSeq int

	changes chan struct{}
	done    chan struct{}
}

// New creates the model around a loaded App.
func New(a *app.App, theme *styles.Theme, opts Options) *Model {
	if opts.HideDelay <= 0 {
		opts.HideDelay = DefaultHideDelay
	}
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = DefaultMaxVisible
	}

	m := &Model{
		app:      a,
		ed:       a.Editor(),
		theme:    theme,
		keys:     DefaultKeyMap(),
		opts:     opts,
		ctx:      context.Background(),
		popup:    components.NewSuggestionPopup(theme),
		form:     components.NewForm(theme, "", "Name", "ID"),
		confirm:  components.NewConfirm(theme),
		status:   components.NewStatusBar(theme),
		helpView: components.NewHelpView(theme, helpMarkdown),
		help:     help.New(),
		done:     make(chan struct{}),
	}
	for i, cat := range shortcut.Categories {
		m.panels[i] = components.NewShortcutPanel(cat, theme)
	}
	m.popup.SetMaxVisible(opts.MaxVisible)
	m.refreshPanels()
	m.setHints()
	return m
}

// Watch reloads the model when the state file changes on disk.
func (m *Model) Watch(debounce time.Duration) error {
	changes := make(chan struct{}, 1)
	err := m.app.Watch(debounce, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	m.changes = changes
	return nil
}

// SetStatus shows an initial status line, e.g. a load error.
func (m *Model) SetStatus(message string, isError bool) {
	kind := components.StatusInfo
	if isError {
		kind = components.StatusError
	}
	m.status.Set(message, kind)
}

// Init starts listening for state file changes.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes, done := m.changes, m.done
	return func() tea.Msg {
		select {
		case <-changes:
			return StateChangedMsg{}
		case <-done:
			return nil
		}
	}
}

func (m *Model) quit() tea.Cmd {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
	return tea.Quit
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	l := m.layout()
	for i, p := range m.panels {
		p.SetSize(l.panelW[i], l.panelH)
	}
	m.status.SetWidth(width)
	m.popup.SetWidth(min(40, max(width-4, 12)))
	m.form.SetWidth(min(60, max(width-4, 24)))
	m.helpView.SetWidth(min(80, max(width-4, 20)))
	m.help.Width = width / 2
	m.scrollEditor()
}

// refreshPanels copies the store into the category panels.
func (m *Model) refreshPanels() {
	store := m.app.Store()
	for _, p := range m.panels {
		p.SetItems(store.ByCategory(p.Category()))
	}
}

// panel returns the focused panel, or nil while the editor has focus.
func (m *Model) panel() *components.ShortcutPanel {
	if m.focus == focusEditor {
		return nil
	}
	return m.panels[m.focus-focusMetrics]
}

// setFocus moves keyboard focus. Leaving the editor starts the delayed hide
// of its suggestion list.
func (m *Model) setFocus(f focus) tea.Cmd {
	f = (f + focusCount) % focusCount
	var cmd tea.Cmd
	if m.focus == focusEditor && f != focusEditor {
		cmd = m.blurEditor()
	}
	m.focus = f
	for i, p := range m.panels {
		p.SetFocused(focus(i)+focusMetrics == f)
	}
	m.setHints()
	return cmd
}

func (m *Model) blurEditor() tea.Cmd {
	token := m.ed.Blur()
	return tea.Tick(m.opts.HideDelay, func(time.Time) tea.Msg {
		return hideSuggestionsMsg{Token: token}
	})
}

// syncPopup mirrors the editor overlay into the popup.
func (m *Model) syncPopup() {
	m.popup.SetOverlay(m.ed.Overlay())
}

func (m *Model) setStatus(message string, kind components.StatusKind) tea.Cmd {
	m.status.Set(message, kind)
	m.statusSeq++
	if m.opts.StatusTTL <= 0 {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(m.opts.StatusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{Seq: seq}
	})
}

func (m *Model) setError(err error) tea.Cmd {
	return m.setStatus(app.StatusFor(err), components.StatusError)
}

func (m *Model) setHints() {
	var h help.KeyMap = m.keys
	if m.focus != focusEditor {
		h = panelHelp{k: m.keys}
	}
	m.status.SetHints(m.help.ShortHelpView(h.ShortHelp()))
}
