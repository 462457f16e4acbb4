package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesen/boardedit/internal/workspace"
	"github.com/wesen/boardedit/pkg/board"
	"github.com/wesen/boardedit/pkg/cellbuf"
	"github.com/wesen/boardedit/pkg/view"
)

func addRender(topLevel *cobra.Command, a *app) {
	var plain bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "print the demo board with its airwires",
		Example: `
boardedit render
boardedit render --plain > board.txt
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws := workspace.New(board.Demo(), workspace.Options{Config: a.session, Logger: a.logger})
			if plain {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), ws.Snapshot())
				return nil
			}
			r := ws.Board.Bounds().Inset(-1)
			buf := cellbuf.New(r.Dx(), r.Dy(), view.StyleBG)
			buf.Origin = r.Min
			ws.Render(buf)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), buf.Render(view.Styles))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print runes only, without colors")

	topLevel.AddCommand(cmd)
}
