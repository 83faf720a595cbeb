// Package cli wires the notebook into a cobra command tree. With no
// subcommand it starts the terminal UI; the subcommands expose the same
// notebook operations for scripts and quick edits.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/treykane/cli-notebook/internal/app"
	"github.com/treykane/cli-notebook/internal/config"
	"github.com/treykane/cli-notebook/internal/logging"
	"github.com/treykane/cli-notebook/internal/notebook"
)

var log = logging.New("cli")

// State is shared by every command of one invocation.
type State struct {
	// Root overrides the configured notebook folder for this run only.
	Root string
	// Launch starts the terminal UI. Defaults to app.Run.
	Launch func(app.Options) error

	nb       *notebook.Notebook
	autosave time.Duration
}

// Notebook opens the notebook once per invocation.
func (s *State) Notebook() (*notebook.Notebook, error) {
	if s.nb != nil {
		return s.nb, nil
	}
	root := s.Root
	if root == "" {
		cfg, err := config.Resolve()
		if err != nil {
			return nil, err
		}
		root = cfg.RootPath
		s.autosave = cfg.AutosaveInterval
	}
	nb, err := notebook.Open(notebook.Options{Root: root, SaveRoot: config.SaveRoot})
	if err != nil {
		return nil, err
	}
	s.nb = nb
	return nb, nil
}

// Close flushes the open note, if any.
func (s *State) Close() error {
	if s.nb == nil {
		return nil
	}
	return s.nb.Close()
}

// NewRootCommand builds the notebook command tree.
func NewRootCommand(s *State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebook",
		Short: "Keep plain-text notes in a folder tree, from the terminal.",
		Long: heredoc.Doc(`
			notebook keeps Markdown notes as plain files under one folder.

			Run it without arguments to open the two-pane editor. The
			subcommands work on the same folder without the UI.
		`),
		Example: heredoc.Doc(`
			notebook
			notebook new note "Ideas" --in work
			echo "- call Sam" | notebook write work/Ideas.md
			notebook search goals --pick
		`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(s, "")
		},
	}

	cmd.PersistentFlags().StringVar(&s.Root, "root", "", "notebook folder for this run (default is the configured one)")

	cmd.AddCommand(
		NewCmdTree(s),
		NewCmdNew(s),
		NewCmdRename(s),
		NewCmdRm(s),
		NewCmdCat(s),
		NewCmdWrite(s),
		NewCmdSearch(s),
		NewCmdOpen(s),
		NewCmdRootDir(s),
		NewCmdLang(s),
	)
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	s := &State{Launch: app.Run}
	cmd := NewRootCommand(s)
	err := cmd.Execute()
	if closeErr := s.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// runTUI starts the terminal UI with logs sent to the log file, since the UI
// owns the terminal.
func runTUI(s *State, open string) error {
	nb, err := s.Notebook()
	if err != nil {
		return err
	}

	restore := redirectLogs()
	defer restore()

	launch := s.Launch
	if launch == nil {
		launch = app.Run
	}
	return launch(app.Options{
		Notebook:         nb,
		AutosaveInterval: s.autosave,
		Language:         config.LoadLocale(),
		SaveLocale:       config.SaveLocale,
		Watch:            true,
		Open:             open,
	})
}

func redirectLogs() func() {
	path, err := config.LogPath()
	if err != nil {
		log.Warn("resolve log path", "error", err)
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.Warn("create log dir", "path", path, "error", err)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Warn("open log file", "path", path, "error", err)
		return func() {}
	}
	prev := logging.SetOutput(f)
	return func() {
		logging.SetOutput(prev)
		_ = f.Close()
	}
}
