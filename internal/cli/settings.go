package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treykane/cli-notebook/internal/config"
	"github.com/treykane/cli-notebook/internal/i18n"
)

// NewCmdRootDir prints or changes the notebook folder.
func NewCmdRootDir(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "root [path]",
		Short: "Print the notebook folder, or switch to another one.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := s.Notebook()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				path, err := config.NormalizeRoot(args[0])
				if err != nil {
					return err
				}
				if err := nb.ChangeRoot(path); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), nb.Root())
			return nil
		},
	}
}

// NewCmdLang prints or sets the interface language.
func NewCmdLang(_ *State) *cobra.Command {
	return &cobra.Command{
		Use:       "lang [code]",
		Short:     "Print or set the interface language (fr or en).",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{i18n.French, i18n.English},
		RunE: func(cmd *cobra.Command, args []string) error {
			code := config.LoadLocale()
			if len(args) == 1 {
				code = i18n.Match(args[0])
				if err := config.SaveLocale(code); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.New(code).Label())
			return nil
		},
	}
}
