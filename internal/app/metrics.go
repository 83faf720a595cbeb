package app

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type noteMetrics struct {
	words int
	chars int
	lines int
}

func computeNoteMetrics(content string) noteMetrics {
	if content == "" {
		return noteMetrics{}
	}
	lines := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		lines++
	}
	return noteMetrics{
		words: len(strings.Fields(content)),
		chars: utf8.RuneCountInString(content),
		lines: lines,
	}
}

// noteMetricsSummary describes the open note, or "" when none is open.
func (m *Model) noteMetricsSummary() string {
	session := m.nb.Session()
	if !session.IsOpen() {
		return ""
	}
	metrics := computeNoteMetrics(session.Content())
	return fmt.Sprintf("W:%d C:%d L:%d", metrics.words, metrics.chars, metrics.lines)
}

// treeSummary counts the folders and notes of the notebook.
func (m *Model) treeSummary() string {
	dirs, files := m.nb.Tree().Count()
	return fmt.Sprintf("D:%d F:%d", dirs, files)
}
