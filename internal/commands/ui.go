package commands

import (
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wesen/boardedit/internal/boardui"
	"github.com/wesen/boardedit/pkg/board"
)

func addUI(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive editor on the demo board",
		Example: `
boardedit ui
boardedit ui --edit_children --log-file /tmp/boardedit.log
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runUI()
		},
	}

	topLevel.AddCommand(cmd)
}

func (a *app) runUI() error {
	// The alt screen owns the terminal; only a log file receives logs.
	logger := a.logger
	if a.v.GetString("log_file") == "" {
		logger = log.New(io.Discard)
	}
	m := boardui.NewModel(board.Demo(), a.session, logger)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}
