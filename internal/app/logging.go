package app

import (
	"log/slog"

	"github.com/treykane/cli-notebook/internal/logging"
)

// appLog is the package-level structured logger for the app package.
var appLog = logging.New("app")

// setStatus shows an informational message in the footer.
func (m *Model) setStatus(status string) {
	m.status = status
	m.statusIsError = false
}

// setStatusError updates the status bar with a user-facing error message and
// simultaneously logs a structured error entry with full context.
//
// The status parameter is displayed verbatim in the UI, while the err and any
// additional key-value attrs are included only in the log entry.
//
//	m.setStatusError("Error: rename failed", err, "path", notePath)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	m.statusIsError = true
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
