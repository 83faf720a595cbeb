// Package editor holds the single open note and its unsaved text.
//
// A Session is either Empty (no path, no content) or Open. Text typed by the
// user only lives in memory until Flush writes it back through the note
// store. Detach drops the note without writing, which is how tree mutations
// invalidate a session whose path is about to disappear.
package editor

import (
	"errors"
	"time"

	"github.com/treykane/cli-notebook/internal/logging"
	"github.com/treykane/cli-notebook/internal/notestore"
)

// ErrNotOpen is returned when editing while no note is open.
var ErrNotOpen = errors.New("no note is open")

var log = logging.New("editor")

// Session is the editing state for at most one note.
type Session struct {
	store *notestore.Store

	path    string
	content string
	saved   string
	savedAt time.Time
}

// NewSession returns an Empty session writing through store.
func NewSession(store *notestore.Store) *Session {
	return &Session{store: store}
}

// Load opens path and returns its content. Any previously open note is
// replaced without flushing. A note that cannot be read opens as empty; the
// failure is logged and the empty buffer is not written back unless edited.
func (s *Session) Load(path string) string {
	content, err := s.store.ReadText(path)
	if err != nil {
		log.Warn("read note", "path", path, "error", err)
		content = ""
	}
	s.path = path
	s.content = content
	s.saved = content
	s.savedAt = time.Time{}
	log.Debug("load note", "path", path, "bytes", len(content))
	return content
}

// Edit replaces the in-memory text of the open note.
func (s *Session) Edit(content string) error {
	if !s.IsOpen() {
		return ErrNotOpen
	}
	s.content = content
	return nil
}

// Flush writes the buffer to disk when it differs from what was last loaded
// or saved. It is a no-op for an Empty or clean session.
func (s *Session) Flush() error {
	if !s.Dirty() {
		return nil
	}
	if err := s.store.WriteText(s.path, s.content); err != nil {
		log.Warn("flush note", "path", s.path, "error", err)
		return err
	}
	s.saved = s.content
	s.savedAt = time.Now()
	log.Debug("flush note", "path", s.path, "bytes", len(s.content))
	return nil
}

// Detach forces the session Empty and discards unsaved text.
func (s *Session) Detach() {
	if s.path != "" {
		log.Debug("detach note", "path", s.path, "dirty", s.Dirty())
	}
	s.path = ""
	s.content = ""
	s.saved = ""
	s.savedAt = time.Time{}
}

// Close flushes and then detaches. The session is Empty afterwards even when
// the final flush fails.
func (s *Session) Close() error {
	err := s.Flush()
	s.Detach()
	return err
}

// Path is the backing file of the open note, or "" when Empty.
func (s *Session) Path() string { return s.path }

// Content is the current in-memory text.
func (s *Session) Content() string { return s.content }

// IsOpen reports whether a note is loaded.
func (s *Session) IsOpen() bool { return s.path != "" }

// Dirty reports whether the buffer has changes that are not on disk yet.
func (s *Session) Dirty() bool { return s.IsOpen() && s.content != s.saved }

// SavedAt is the time of the last successful flush, zero if none happened
// since the note was loaded.
func (s *Session) SavedAt() time.Time { return s.savedAt }
