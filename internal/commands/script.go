package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/wesen/boardedit/internal/script"
	"github.com/wesen/boardedit/pkg/board"
)

func addScript(topLevel *cobra.Command, a *app) {
	var snapshot bool

	cmd := &cobra.Command{
		Use:   "script FILE.js",
		Short: "drive the demo board with a script of pointer events and commands",
		Long: `Runs a JavaScript file against the demo board. Scripts call
select, motion, drag, click, release, cancel, move, rotate, flip, remove,
properties, copy, paste, undo, redo, editFootprint and print.`,
		Example: `
boardedit script drag.js
boardedit script --snapshot ~/scripts/rotate.js
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			path, err := homedir.Expand(args[0])
			if err != nil {
				return err
			}
			r := script.New(board.Demo(), script.Options{Config: a.session, Logger: a.logger})
			runErr := r.RunFile(path)

			out := cmd.OutOrStdout()
			errColor := color.New(color.FgRed)
			for _, line := range r.Output {
				if len(line) > 0 && line[0] == '!' {
					_, _ = errColor.Fprintln(out, line)
					continue
				}
				_, _ = fmt.Fprintln(out, line)
			}
			if snapshot {
				_, _ = fmt.Fprintln(out, r.Workspace().Snapshot())
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "print the board after the script")

	topLevel.AddCommand(cmd)
}
