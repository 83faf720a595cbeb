package app

import (
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
)

// oscColorReply matches a terminal's reply to a background color query,
// e.g. "]11;rgb:1e1e/1e1e/2e2e". Some terminals deliver it as key runes.
var oscColorReply = regexp.MustCompile(`\]?1?1;rgb:[0-9a-fA-F]{2,4}/[0-9a-fA-F]{2,4}/[0-9a-fA-F]{2,4}`)

// shouldIgnoreInput drops rune messages that are terminal responses or raw
// control characters rather than typed text.
func (m *Model) shouldIgnoreInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	seq := msg.String()
	if oscColorReply.MatchString(seq) || containsControlRunes(seq) {
		appLog.Debug("ignored input", "sequence", seq)
		return true
	}
	return false
}

func containsControlRunes(seq string) bool {
	for _, r := range seq {
		if r == '\n' || r == '\t' {
			continue
		}
		if r < 32 || r == 127 {
			return true
		}
	}
	return false
}
