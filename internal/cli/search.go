package cli

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/treykane/cli-notebook/internal/pathutil"
	"github.com/treykane/cli-notebook/internal/search"
	"github.com/treykane/cli-notebook/internal/tree"
)

// errNoNotes is returned when there is nothing to pick from.
var errNoNotes = errors.New("no matching notes")

// pick lets the user choose one of items interactively and returns its
// index. Replaced in tests.
var pick = func(items []string, header, query string) (int, error) {
	opts := []fuzzyfinder.Option{fuzzyfinder.WithHeader(header)}
	if query != "" {
		opts = append(opts, fuzzyfinder.WithQuery(query))
	}
	return fuzzyfinder.Find(items, func(i int) string { return items[i] }, opts...)
}

// choose runs pick and maps an aborted picker to ok == false.
func choose(items []string, header, query string) (int, bool, error) {
	if len(items) == 0 {
		return 0, false, errNoNotes
	}
	idx, err := pick(items, header, query)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return idx, true, nil
}

// NewCmdSearch lists notes whose name or text contains the query.
func NewCmdSearch(s *State) *cobra.Command {
	var (
		limit  int
		picker bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find notes by name or content.",
		Long: heredoc.Doc(`
			Find notes whose file name or text contains the query, ignoring case.
			Results are listed in folder order. With --pick, choose one result
			interactively and print only its path.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := s.Notebook()
			if err != nil {
				return err
			}
			results := search.Search(nb.Store(), nb.Root(), args[0], limit)

			labels := make([]string, len(results))
			for i, r := range results {
				labels[i] = pathutil.Relative(nb.Root(), r.Path)
			}

			out := cmd.OutOrStdout()
			if !picker {
				for _, label := range labels {
					fmt.Fprintln(out, label)
				}
				return nil
			}

			idx, ok, err := choose(labels, fmt.Sprintf("%d notes match %q", len(labels), args[0]), "")
			if err != nil || !ok {
				return err
			}
			fmt.Fprintln(out, results[idx].Path)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", search.MaxResults, "maximum number of results")
	cmd.Flags().BoolVarP(&picker, "pick", "p", false, "choose a result interactively and print its path")
	return cmd
}

// NewCmdOpen picks a note interactively and opens it in the editor.
func NewCmdOpen(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "open [query]",
		Short: "Pick a note by name and open it in the editor.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := s.Notebook()
			if err != nil {
				return err
			}
			var paths, labels []string
			nb.ListTree().Walk(func(n *tree.Node) bool {
				if !n.IsDir() && search.IsNote(n.Name) {
					paths = append(paths, n.Path)
					labels = append(labels, pathutil.Relative(nb.Root(), n.Path))
				}
				return true
			})

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			idx, ok, err := choose(labels, nb.Root(), query)
			if err != nil || !ok {
				return err
			}
			return runTUI(s, paths[idx])
		},
	}
}
