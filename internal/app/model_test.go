package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-notebook/internal/notebook"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func newTestModel(t *testing.T, root string) *Model {
	t.Helper()
	nb, err := notebook.Open(notebook.Options{Root: root})
	if err != nil {
		t.Fatalf("open notebook: %v", err)
	}
	m, err := New(Options{Notebook: nb, Language: "en"})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func selectPath(t *testing.T, m *Model, path string) {
	t.Helper()
	for i, row := range m.rows {
		if row.Node.Path == path {
			m.cursor = i
			return
		}
	}
	t.Fatalf("no row for %s", path)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func TestNewSeedsWelcomeNoteInEmptyRoot(t *testing.T) {
	root := t.TempDir()
	m := newTestModel(t, root)

	path := filepath.Join(root, "Welcome.md")
	if got := readFile(t, path); got != welcomeNote {
		t.Fatalf("unexpected welcome note content: %q", got)
	}
	if len(m.rows) != 1 || m.rows[0].Node.Path != path {
		t.Fatalf("expected the welcome note as only row, got %+v", m.rows)
	}
}

func TestNewDoesNotSeedNonEmptyRoot(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.md"), "a")

	newTestModel(t, root)

	if _, err := os.Stat(filepath.Join(root, "Welcome.md")); !os.IsNotExist(err) {
		t.Fatalf("expected no welcome note, stat err = %v", err)
	}
}

func TestOpenEditAndAutosave(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "hello")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeEditNote {
		t.Fatalf("expected edit mode, got %v", m.mode)
	}
	if got := m.editor.Value(); got != "hello" {
		t.Fatalf("expected editor to hold note text, got %q", got)
	}

	press(m, runes("x"))
	if !m.nb.Session().Dirty() {
		t.Fatal("expected session to be dirty after typing")
	}
	if got := readFile(t, path); got != "hello" {
		t.Fatalf("expected no write before autosave, got %q", got)
	}

	_, cmd := m.Update(autosaveTickMsg{})
	if cmd == nil {
		t.Fatal("expected autosave to be rescheduled")
	}
	if got := readFile(t, path); got != "hellox" {
		t.Fatalf("expected autosaved content, got %q", got)
	}
	if m.nb.Session().Dirty() {
		t.Fatal("expected session to be clean after autosave")
	}
}

func TestCtrlSSavesNote(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, runes("abc"))
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if got := readFile(t, path); got != "abc" {
		t.Fatalf("expected saved content, got %q", got)
	}
	if m.statusIsError {
		t.Fatalf("unexpected error status: %s", m.status)
	}
}

func TestEscReturnsToTreeAndKeepsNoteOpen(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "a")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode, got %v", m.mode)
	}
	if m.nb.Session().Path() != path {
		t.Fatalf("expected note to stay open, got %q", m.nb.Session().Path())
	}

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != modeEditNote {
		t.Fatalf("expected tab to focus the editor, got %v", m.mode)
	}
}

func TestCreateNoteInSelectedFolder(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "work")
	mustWriteFile(t, filepath.Join(dir, "plan.md"), "")
	m := newTestModel(t, root)

	selectPath(t, m, dir)
	press(m, runes("n"))
	if m.mode != modeNewNote {
		t.Fatalf("expected new note prompt, got %v", m.mode)
	}
	press(m, runes("Ideas"))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	created := filepath.Join(dir, "Ideas.md")
	if _, err := os.Stat(created); err != nil {
		t.Fatalf("expected %s to exist: %v", created, err)
	}
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after submit, got %v", m.mode)
	}
	if got := m.selectedPath(); got != created {
		t.Fatalf("expected cursor on new note, got %q", got)
	}
}

func TestCreateFolderAtRoot(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "work", "plan.md"), "")
	m := newTestModel(t, root)

	selectPath(t, m, filepath.Join(root, "work"))
	press(m, runes("F"))
	press(m, runes("archive"))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	info, err := os.Stat(filepath.Join(root, "archive"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected archive folder at root, err = %v", err)
	}
}

func TestCreateNoteWithInvalidNameShowsError(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.md"), "")
	m := newTestModel(t, root)

	press(m, runes("N"))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.statusIsError {
		t.Fatalf("expected error status for empty name, got %q", m.status)
	}
}

func TestCancelPromptWithEsc(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.md"), "")
	m := newTestModel(t, root)

	press(m, runes("n"))
	press(m, runes("draft"))
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode, got %v", m.mode)
	}
	if _, err := os.Stat(filepath.Join(root, "draft.md")); !os.IsNotExist(err) {
		t.Fatalf("expected no note after cancel, stat err = %v", err)
	}
}

func TestRenameOpenNoteFlushesAndClosesEditor(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "old")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, runes("!"))
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	press(m, runes("r"))
	if got := m.input.Value(); got != "a.md" {
		t.Fatalf("expected rename prompt prefilled with basename, got %q", got)
	}
	m.input.SetValue("b.md")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	renamed := filepath.Join(root, "b.md")
	if got := readFile(t, renamed); got != "old!" {
		t.Fatalf("expected edits flushed before rename, got %q", got)
	}
	if m.nb.Session().IsOpen() {
		t.Fatal("expected session to be detached after rename")
	}
	if m.editor.Value() != "" {
		t.Fatalf("expected editor cleared, got %q", m.editor.Value())
	}
	if got := m.selectedPath(); got != renamed {
		t.Fatalf("expected cursor on renamed note, got %q", got)
	}
}

func TestRenameFolderKeepsNestedFoldersExpanded(t *testing.T) {
	root := t.TempDir()
	note := filepath.Join(root, "work", "inner", "deep", "plan.md")
	mustWriteFile(t, note, "plan")
	mustWriteFile(t, filepath.Join(root, "other", "x.md"), "x")
	m := newTestModel(t, root)

	m.expandTo(note)
	m.expanded[filepath.Join(root, "other")] = true
	m.syncTree("")

	selectPath(t, m, filepath.Join(root, "work"))
	press(m, runes("r"))
	m.input.SetValue("projects")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	renamed := filepath.Join(root, "projects")
	for _, dir := range []string{
		renamed,
		filepath.Join(renamed, "inner"),
		filepath.Join(renamed, "inner", "deep"),
		filepath.Join(root, "other"),
	} {
		if !m.expanded[dir] {
			t.Fatalf("expected %s to stay expanded, got %v", dir, m.expanded)
		}
	}
	if m.expanded[filepath.Join(root, "work")] {
		t.Fatal("expected old folder path dropped from expanded set")
	}
	selectPath(t, m, filepath.Join(renamed, "inner", "deep", "plan.md"))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "a")
	mustWriteFile(t, filepath.Join(root, "b.md"), "b")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	press(m, runes("d"))
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	press(m, runes("n"))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected note to survive cancel: %v", err)
	}

	selectPath(t, m, path)
	press(m, runes("d"))
	press(m, runes("y"))
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected note deleted, stat err = %v", err)
	}
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode, got %v", m.mode)
	}
}

func TestDeleteAcceptsFrenchConfirmation(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "a")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	press(m, runes("d"))
	press(m, runes("o"))

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected note deleted, stat err = %v", err)
	}
}

func TestDeleteFolderOfOpenNoteDetachesEditor(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "work")
	note := filepath.Join(dir, "plan.md")
	mustWriteFile(t, note, "plan")
	mustWriteFile(t, filepath.Join(root, "keep.md"), "")
	m := newTestModel(t, root)

	selectPath(t, m, dir)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	selectPath(t, m, note)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, runes("?"))
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	selectPath(t, m, dir)
	press(m, runes("d"))
	press(m, runes("y"))

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected folder deleted, stat err = %v", err)
	}
	if m.nb.Session().IsOpen() || m.editor.Value() != "" {
		t.Fatal("expected editor detached after deleting its folder")
	}
	if _, err := os.Stat(note); !os.IsNotExist(err) {
		t.Fatalf("expected no resurrected note, stat err = %v", err)
	}
}

func TestRefreshDetachesNoteDeletedExternally(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "a")
	mustWriteFile(t, filepath.Join(root, "b.md"), "b")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	press(m, runes("R"))

	if m.nb.Session().IsOpen() {
		t.Fatal("expected session detached after refresh")
	}
	for _, row := range m.rows {
		if row.Node.Path == path {
			t.Fatal("expected deleted note to leave the tree")
		}
	}

	_, _ = m.Update(autosaveTickMsg{})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected autosave not to recreate the note, stat err = %v", err)
	}
}

func TestOpenStaleRowRefreshesTree(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "a")
	mustWriteFile(t, filepath.Join(root, "b.md"), "b")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeBrowse {
		t.Fatalf("expected to stay in browse mode, got %v", m.mode)
	}
	if m.statusIsError {
		t.Fatalf("expected a plain status for a stale row, got error %q", m.status)
	}
	if len(m.rows) != 1 {
		t.Fatalf("expected tree rebuilt without stale row, got %d rows", len(m.rows))
	}
}

func TestOpenNonNoteFileIsRefused(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "image.png")
	mustWriteFile(t, path, "png")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeBrowse || m.nb.Session().IsOpen() {
		t.Fatal("expected non-note file to stay closed")
	}
}

func TestFolderEnterTogglesExpansion(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "work")
	mustWriteFile(t, filepath.Join(dir, "plan.md"), "")
	m := newTestModel(t, root)

	selectPath(t, m, dir)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.rows) != 2 {
		t.Fatalf("expected folder expanded to 2 rows, got %d", len(m.rows))
	}
	press(m, runes("h"))
	if len(m.rows) != 1 {
		t.Fatalf("expected folder collapsed to 1 row, got %d", len(m.rows))
	}
}

func TestSearchPopupOpensResult(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "work", "plan.md")
	mustWriteFile(t, path, "quarterly goals")
	mustWriteFile(t, filepath.Join(root, "other.md"), "nothing")
	m := newTestModel(t, root)

	press(m, runes("/"))
	if m.mode != modeSearch {
		t.Fatalf("expected search mode, got %v", m.mode)
	}
	press(m, runes("goals"))
	if len(m.searchResults) != 1 || m.searchResults[0].Path != path {
		t.Fatalf("unexpected search results: %+v", m.searchResults)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeEditNote || m.nb.Session().Path() != path {
		t.Fatalf("expected result opened in editor, mode %v path %q", m.mode, m.nb.Session().Path())
	}
	if got := m.selectedPath(); got != path {
		t.Fatalf("expected tree expanded to the result, cursor on %q", got)
	}
}

func TestSearchStaleResultRefreshes(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "plan.md")
	mustWriteFile(t, path, "goals")
	mustWriteFile(t, filepath.Join(root, "keep.md"), "")
	m := newTestModel(t, root)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlP})
	press(m, runes("plan"))
	if len(m.searchResults) != 1 {
		t.Fatalf("expected one result, got %d", len(m.searchResults))
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeSearch {
		t.Fatalf("expected popup to stay open, got %v", m.mode)
	}
	if len(m.searchResults) != 0 {
		t.Fatalf("expected stale result dropped, got %+v", m.searchResults)
	}
	if m.nb.Session().IsOpen() {
		t.Fatal("expected no note opened")
	}
}

func TestSearchEscCloses(t *testing.T) {
	root := t.TempDir()
	m := newTestModel(t, root)

	press(m, runes("/"))
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode, got %v", m.mode)
	}
}

func TestToggleLanguagePersistsChoice(t *testing.T) {
	root := t.TempDir()
	nb, err := notebook.Open(notebook.Options{Root: root})
	if err != nil {
		t.Fatalf("open notebook: %v", err)
	}
	var saved string
	m, err := New(Options{
		Notebook:   nb,
		Language:   "en",
		SaveLocale: func(code string) error { saved = code; return nil },
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	press(m, runes("L"))
	if saved != "fr" || m.loc.Lang() != "fr" {
		t.Fatalf("expected switch to fr, saved %q lang %q", saved, m.loc.Lang())
	}
	if m.status != m.loc.Label() {
		t.Fatalf("expected language label in status, got %q", m.status)
	}
}

func TestToggleLanguageReportsSaveError(t *testing.T) {
	root := t.TempDir()
	nb, err := notebook.Open(notebook.Options{Root: root})
	if err != nil {
		t.Fatalf("open notebook: %v", err)
	}
	m, err := New(Options{
		Notebook:   nb,
		Language:   "fr",
		SaveLocale: func(string) error { return errors.New("disk full") },
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	press(m, runes("L"))
	if !m.statusIsError || !strings.Contains(m.status, "disk full") {
		t.Fatalf("expected save error in status, got %q", m.status)
	}
}

func TestChangeRootSwitchesNotebook(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "a")
	other := t.TempDir()
	mustWriteFile(t, filepath.Join(other, "b.md"), "b")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, runes("+"))
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	press(m, runes("c"))
	if m.mode != modeChangeRoot || m.input.Value() != root {
		t.Fatalf("expected prompt prefilled with root, got mode %v value %q", m.mode, m.input.Value())
	}
	m.input.SetValue(other)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.nb.Root() != other {
		t.Fatalf("expected root %q, got %q", other, m.nb.Root())
	}
	if got := readFile(t, path); got != "a+" {
		t.Fatalf("expected open note flushed before switching, got %q", got)
	}
	if m.nb.Session().IsOpen() {
		t.Fatal("expected note outside the new root to be detached")
	}
	if len(m.rows) != 1 || m.rows[0].Node.Name != "b.md" {
		t.Fatalf("expected rows of the new root, got %+v", m.rows)
	}
}

func TestQuitFlushesOpenNote(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "")
	m := newTestModel(t, root)

	selectPath(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, runes("bye"))
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	if cmd := press(m, runes("q")); cmd == nil {
		t.Fatal("expected quit command")
	}
	if got := readFile(t, path); got != "bye" {
		t.Fatalf("expected flush on quit, got %q", got)
	}
}

func TestCopyNotePathAndContent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "body")
	m := newTestModel(t, root)

	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	selectPath(t, m, path)
	press(m, runes("Y"))
	if copied != "" {
		t.Fatalf("expected nothing copied without an open note, got %q", copied)
	}

	press(m, runes("y"))
	if copied != path {
		t.Fatalf("expected selected path copied, got %q", copied)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	press(m, runes("Y"))
	if copied != "body" {
		t.Fatalf("expected note content copied, got %q", copied)
	}
}

func TestWatchMessagesFromOldRootAreDropped(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "a")
	m := newTestModel(t, root)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	_, cmd := m.Update(watchChanged(root, path))
	if cmd != nil {
		t.Fatal("expected no re-arm without a watcher")
	}
	if len(m.rows) != 1 {
		t.Fatalf("expected rows untouched without a watcher, got %d", len(m.rows))
	}
}

func TestViewRendersTreeAndFooter(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.md"), "one two")
	m := newTestModel(t, root)

	if got := m.View(); got != "Loading..." {
		t.Fatalf("expected loading view before sizing, got %q", got)
	}

	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	if !strings.Contains(view, "a.md") {
		t.Fatalf("expected tree row in view:\n%s", view)
	}
	if !strings.Contains(view, "D:0 F:1") {
		t.Fatalf("expected tree summary in footer:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != 30 {
		t.Fatalf("expected view to fill 30 rows, got %d", lines)
	}
}

func TestNewOpensRequestedNote(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "work", "plan.md")
	mustWriteFile(t, path, "plan")
	nb, err := notebook.Open(notebook.Options{Root: root})
	if err != nil {
		t.Fatalf("open notebook: %v", err)
	}

	m, err := New(Options{Notebook: nb, Language: "en", Open: path})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	if m.mode != modeEditNote || m.editor.Value() != "plan" {
		t.Fatalf("expected note open in editor, mode %v value %q", m.mode, m.editor.Value())
	}
	if got := m.selectedPath(); got != path {
		t.Fatalf("expected cursor on opened note, got %q", got)
	}
}

func TestNewResolvesRelativeOpenPath(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "work", "plan.md")
	mustWriteFile(t, path, "plan")
	nb, err := notebook.Open(notebook.Options{Root: root})
	if err != nil {
		t.Fatalf("open notebook: %v", err)
	}

	m, err := New(Options{Notebook: nb, Language: "en", Open: "work/plan.md"})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	if m.editorPath != path {
		t.Fatalf("expected resolved editor path %q, got %q", path, m.editorPath)
	}
	if !m.expanded[filepath.Join(root, "work")] {
		t.Fatalf("expected parent folder expanded, got %v", m.expanded)
	}
	if got := m.selectedPath(); got != path {
		t.Fatalf("expected cursor on opened note, got %q", got)
	}
	for dir := range m.expanded {
		if !filepath.IsAbs(dir) {
			t.Fatalf("expected only absolute expanded paths, got %q", dir)
		}
	}
}

func TestWatchChangeRebuildsRowsOnlyWhenTreeChanges(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.md"), "a")
	m := newTestModel(t, root)
	m.watcher = m.startWatcher(root)
	if m.watcher == nil {
		t.Skip("filesystem watching unavailable")
	}
	t.Cleanup(func() { _ = m.watcher.Close() })

	first := m.rows[0].Node
	_, cmd := m.Update(watchChanged(m.watcher.Root()))
	if cmd == nil {
		t.Fatal("expected watcher re-armed")
	}
	if m.rows[0].Node != first {
		t.Fatal("expected rows kept when the tree is unchanged")
	}

	added := filepath.Join(root, "b.md")
	mustWriteFile(t, added, "b")
	_, cmd = m.Update(watchChanged(m.watcher.Root(), added))
	if cmd == nil {
		t.Fatal("expected watcher re-armed")
	}
	if len(m.rows) != 2 || m.rows[1].Node.Path != added {
		t.Fatalf("expected new note in rows, got %+v", m.rows)
	}
}

func TestWatchChangeDetachesVanishedOpenNote(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	mustWriteFile(t, path, "a")
	mustWriteFile(t, filepath.Join(root, "b.md"), "b")
	m := newTestModel(t, root)
	m.watcher = m.startWatcher(root)
	if m.watcher == nil {
		t.Skip("filesystem watching unavailable")
	}
	t.Cleanup(func() { _ = m.watcher.Close() })

	selectPath(t, m, path)
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	_, _ = m.Update(watchChanged(m.watcher.Root(), path))

	if m.nb.Session().IsOpen() {
		t.Fatal("expected session detached after external delete")
	}
	if m.editor.Value() != "" || m.mode != modeBrowse {
		t.Fatalf("expected editor cleared in browse mode, got mode %v value %q", m.mode, m.editor.Value())
	}
	if len(m.rows) != 1 {
		t.Fatalf("expected one row left, got %d", len(m.rows))
	}
}
