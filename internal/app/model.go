// Package app implements the terminal UI: a tree pane, an editor pane, a
// search popup, and the prompts that drive notebook mutations.
//
// The Model never touches the filesystem directly. Every action goes through
// the notebook, which owns invalidation of the open note, and the model then
// re-syncs its widgets from the notebook's tree and session.
package app

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-notebook/internal/i18n"
	"github.com/treykane/cli-notebook/internal/notebook"
	"github.com/treykane/cli-notebook/internal/search"
	"github.com/treykane/cli-notebook/internal/tree"
	"github.com/treykane/cli-notebook/internal/watch"
)

// mode controls the UI state and which input widget is active.
type mode int

const (
	modeBrowse mode = iota
	modeEditNote
	modeNewNote
	modeNewFolder
	modeRename
	modeChangeRoot
	modeConfirmDelete
	modeSearch
)

// isInputMode reports whether the single-line prompt is active.
func (md mode) isInputMode() bool {
	switch md {
	case modeNewNote, modeNewFolder, modeRename, modeChangeRoot:
		return true
	}
	return false
}

// Options configures New.
type Options struct {
	Notebook *notebook.Notebook
	// AutosaveInterval defaults to DefaultAutosaveInterval.
	AutosaveInterval time.Duration
	// Language is the initial interface language code.
	Language string
	// SaveLocale persists a language change. Nil skips persistence.
	SaveLocale func(string) error
	// Watch enables filesystem change notifications.
	Watch bool
	// Open is a note to open at startup.
	Open string
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	nb         *notebook.Notebook
	loc        *i18n.Localizer
	saveLocale func(string) error

	// Tree state
	rows       []tree.Row
	expanded   map[string]bool
	cursor     int
	treeOffset int

	// UI widgets
	editor        textarea.Model
	editorPath    string
	input         textinput.Model
	search        textinput.Model
	searchResults []search.Result
	searchCursor  int
	mode          mode
	status        string
	statusIsError bool

	// Target of the active prompt: parent folder for creation, entry for
	// rename and delete.
	target string

	autosaveInterval time.Duration
	watchEnabled     bool
	watcher          *watch.Watcher

	// Layout sizing
	width      int
	height     int
	leftHeight int
}

// New prepares the initial UI model. An empty root is seeded with a welcome
// note.
func New(opts Options) (*Model, error) {
	nb := opts.Notebook
	if err := seedWelcomeNote(nb); err != nil {
		appLog.Warn("seed welcome note", "root", nb.Root(), "error", err)
	}

	loc := i18n.New(opts.Language)

	input := textinput.New()
	input.CharLimit = InputCharLimit

	searchInput := textinput.New()
	searchInput.CharLimit = InputCharLimit

	editor := textarea.New()
	editor.CharLimit = 0
	editor.MaxHeight = 0
	applyEditorTheme(&editor)

	interval := opts.AutosaveInterval
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}

	m := &Model{
		nb:               nb,
		loc:              loc,
		saveLocale:       opts.SaveLocale,
		expanded:         map[string]bool{},
		editor:           editor,
		input:            input,
		search:           searchInput,
		mode:             modeBrowse,
		autosaveInterval: interval,
		watchEnabled:     opts.Watch,
	}
	m.applyLanguage()
	m.syncTree("")
	m.status = loc.T("title")
	if opts.Open != "" {
		m.openNote(opts.Open)
	}

	if opts.Watch {
		m.watcher = m.startWatcher(nb.Root())
	}
	return m, nil
}

// Init starts the autosave loop and the filesystem watcher.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.scheduleAutosave(), m.watcher.Start())
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case autosaveTickMsg:
		return m.handleAutosaveTick(msg)
	case watch.ChangedMsg:
		return m.handleWatchChanged(msg)
	case watch.ErrorMsg:
		return m.handleWatchError(msg)
	case tea.KeyMsg:
		if m.shouldIgnoreInput(msg) {
			return m, nil
		}
		switch {
		case m.mode == modeEditNote:
			return m.handleEditNoteKey(msg)
		case m.mode == modeSearch:
			return m.handleSearchKey(msg)
		case m.mode == modeConfirmDelete:
			return m.handleConfirmDeleteKey(msg)
		case m.mode.isInputMode():
			return m.handleInputKey(msg)
		default:
			return m.handleBrowseKey(msg.String())
		}
	}
	return m, nil
}

// applyLanguage pushes localized placeholders into the widgets.
func (m *Model) applyLanguage() {
	m.editor.Placeholder = m.loc.T("placeholder_note")
	m.search.Placeholder = m.loc.T("search_placeholder")
}

// shutdown flushes the open note and stops background work.
func (m *Model) shutdown() {
	if err := m.nb.Close(); err != nil {
		appLog.Error("flush on exit", "error", err)
	}
	if err := m.watcher.Close(); err != nil {
		appLog.Warn("close watcher", "error", err)
	}
}

func seedWelcomeNote(nb *notebook.Notebook) error {
	if len(nb.Tree().Children) > 0 {
		return nil
	}
	path, err := nb.CreateNote("", welcomeNoteName)
	if err != nil {
		return err
	}
	return nb.Store().WriteText(path, welcomeNote)
}

// Run starts the Bubble Tea program on the alternate screen and blocks until
// the user quits. The open note is flushed before Run returns.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.shutdown()
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stdout)).Run()
	return err
}
