package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// autosaveTickMsg is emitted by the periodic autosave timer. Receiving it
// flushes the open note and reschedules the next tick.
type autosaveTickMsg struct{}

// scheduleAutosave returns a command that emits autosaveTickMsg after the
// configured interval. It runs for the lifetime of the program, so the
// interval bounds how much typing a crash can lose.
func (m *Model) scheduleAutosave() tea.Cmd {
	return tea.Tick(m.autosaveInterval, func(time.Time) tea.Msg {
		return autosaveTickMsg{}
	})
}

// handleAutosaveTick flushes the open note. Failures are logged by the
// session and never interrupt typing; the next tick is always scheduled.
func (m *Model) handleAutosaveTick(_ autosaveTickMsg) (tea.Model, tea.Cmd) {
	if m.nb.Session().Dirty() {
		if err := m.nb.FlushNote(); err != nil {
			appLog.Debug("autosave skipped", "path", m.nb.Session().Path(), "error", err)
		}
	}
	return m, m.scheduleAutosave()
}
