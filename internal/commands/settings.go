package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/wesen/boardedit/pkg/config"
)

// importOptions are the remembered choices of the drawing import.
type importOptions struct {
	Layer  string
	Origin string
	File   string
	Save   bool
}

func addSettings(topLevel *cobra.Command, a *app) {
	o := &importOptions{}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "show the session configuration and update remembered import choices",
		Example: `
boardedit settings
boardedit settings --import-layer Dwgs.User --import-origin board --save
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s := a.session
			if cmd.Flags().Changed("import-layer") {
				s.Import.Layer = o.Layer
			}
			if cmd.Flags().Changed("import-origin") {
				s.Import.Origin = o.Origin
			}
			if cmd.Flags().Changed("import-file") {
				s.Import.LastFile = o.File
			}
			printSettings(cmd.OutOrStdout(), s, a.v.ConfigFileUsed())
			if !o.Save {
				return nil
			}
			if err := config.Remember(a.v, s); err != nil {
				return err
			}
			a.logger.Info("import choices saved", "layer", s.Import.Layer, "origin", s.Import.Origin)
			return nil
		},
	}
	cmd.Flags().StringVar(&o.Layer, "import-layer", "", "layer imported drawings land on")
	cmd.Flags().StringVar(&o.Origin, "import-origin", "", "origin of imported drawings: page or board")
	cmd.Flags().StringVar(&o.File, "import-file", "", "last imported file")
	cmd.Flags().BoolVar(&o.Save, "save", false, "write the import choices to the config file")

	topLevel.AddCommand(cmd)
}

func printSettings(w io.Writer, s config.Session, file string) {
	bold := color.New(color.Bold)
	if file == "" {
		file = "(none)"
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("KEY"), bold.Sprint("VALUE"))
	tbl.AddRow("config file", file)
	tbl.AddRow(config.KeyRotationStep, int(s.RotationStep))
	tbl.AddRow(config.KeyEditChildren, s.EditChildren)
	tbl.AddRow(config.KeyUndoDepth, s.UndoDepth)
	tbl.AddRow(config.KeyAnchorAtOrigin, s.AnchorAtOrigin)
	tbl.AddRow(config.KeyLogLevel, s.LogLevel)
	tbl.AddRow(config.KeyClipboard, s.Clipboard)
	tbl.AddRow(config.KeyImportLayer, s.Import.Layer)
	tbl.AddRow(config.KeyImportOrigin, s.Import.Origin)
	tbl.AddRow(config.KeyImportLastFile, s.Import.LastFile)
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(w, tbl)
}
