package cli

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/treykane/cli-notebook/internal/pathutil"
	"github.com/treykane/cli-notebook/internal/tree"
)

// NewCmdTree prints the notebook as an indented tree.
func NewCmdTree(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the folders and notes of the notebook.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := s.Notebook()
			if err != nil {
				return err
			}
			root := nb.ListTree()
			expanded := map[string]bool{}
			root.Walk(func(n *tree.Node) bool {
				if n.IsDir() {
					expanded[n.Path] = true
				}
				return true
			})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, root.Path)
			for _, row := range root.Flatten(expanded) {
				name := row.Node.Name
				if row.Node.IsDir() {
					name += "/"
				}
				fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", row.Depth+1), name)
			}
			return nil
		},
	}
}

// NewCmdNew groups the note and folder creation commands.
func NewCmdNew(s *State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note or a folder.",
	}

	var noteIn, folderIn string
	note := &cobra.Command{
		Use:   "note <name>",
		Short: "Create an empty note. The .md extension is added when missing.",
		Example: heredoc.Doc(`
			notebook new note Ideas
			notebook new note "Meeting 12" --in work/2024
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := s.Notebook()
			if err != nil {
				return err
			}
			path, err := nb.CreateNote(noteIn, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pathutil.Relative(nb.Root(), path))
			return nil
		},
	}
	note.Flags().StringVar(&noteIn, "in", "", "folder to create the note in, relative to the root")

	folder := &cobra.Command{
		Use:   "folder <name>",
		Short: "Create a folder.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := s.Notebook()
			if err != nil {
				return err
			}
			path, err := nb.CreateFolder(folderIn, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pathutil.Relative(nb.Root(), path)+"/")
			return nil
		},
	}
	folder.Flags().StringVar(&folderIn, "in", "", "parent folder, relative to the root")

	cmd.AddCommand(note, folder)
	return cmd
}

// NewCmdRename renames a note or folder in place.
func NewCmdRename(s *State) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <path> <new-name>",
		Aliases: []string{"mv"},
		Short:   "Rename a note or folder within its folder.",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := s.Notebook()
			if err != nil {
				return err
			}
			path, err := nb.Rename(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pathutil.Relative(nb.Root(), path))
			return nil
		},
	}
}

// NewCmdRm deletes a note or a folder with everything in it.
func NewCmdRm(s *State) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <path>",
		Aliases: []string{"delete"},
		Short:   "Delete a note, or a folder and its contents.",
		Long: heredoc.Doc(`
			Delete a note, or a folder together with everything in it.
			Asks for confirmation unless --yes is given.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := s.Notebook()
			if err != nil {
				return err
			}
			target, err := nb.Resolve(args[0])
			if err != nil {
				return err
			}
			rel := pathutil.Relative(nb.Root(), target)
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %s? [y/N] ", rel)) {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			if err := nb.Delete(target); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", rel)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

// confirm reads one answer line. y, yes, o, and oui accept.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "o", "oui":
		return true
	}
	return false
}

// NewCmdCat prints a note.
func NewCmdCat(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Print the text of a note.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := s.Notebook()
			if err != nil {
				return err
			}
			content, err := nb.OpenNote(args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	}
}

// NewCmdWrite replaces a note's text with standard input.
func NewCmdWrite(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "write <path>",
		Short: "Replace the text of a note with standard input, creating the note if needed.",
		Example: heredoc.Doc(`
			date | notebook write journal/today.md
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := s.Notebook()
			if err != nil {
				return err
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			target, err := nb.Resolve(args[0])
			if err != nil {
				return err
			}
			if !nb.Store().Exists(target) {
				dir := filepath.Dir(target)
				if _, err := nb.Store().EnsureDirectory(dir); err != nil {
					return err
				}
				if target, err = nb.CreateNote(dir, filepath.Base(target)); err != nil {
					return err
				}
			}
			if _, err := nb.OpenNote(target); err != nil {
				return err
			}
			if err := nb.EditNote(string(data)); err != nil {
				return err
			}
			if err := nb.FlushNote(); err != nil {
				return err
			}
			log.Debug("wrote note", "path", target, "bytes", len(data))
			return nil
		},
	}
}
