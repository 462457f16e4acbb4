package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/wesen/boardedit/pkg/board"
)

func addList(topLevel *cobra.Command, _ *app) {
	var children bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "print the items of the demo board",
		Example: `
boardedit list
boardedit list --children
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printItems(cmd.OutOrStdout(), board.Demo(), children)
			return nil
		},
	}
	cmd.Flags().BoolVar(&children, "children", false, "also list the items inside footprints")

	topLevel.AddCommand(cmd)
}

func printItems(w io.Writer, b *board.Board, children bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("KIND"), bold.Sprint("POS"),
		bold.Sprint("LAYERS"), bold.Sprint("NET"), bold.Sprint("DETAIL"))

	for _, it := range b.Items() {
		addItemRow(tbl, b, it, "")
		if f, ok := it.(*board.Footprint); ok && children {
			f.RunOnChildren(func(c board.Item) { addItemRow(tbl, b, c, "  ") })
		}
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func addItemRow(tbl *uitable.Table, b *board.Board, it board.Item, indent string) {
	p := it.Position()
	layers := make([]string, 0, 2)
	for _, l := range it.Layers().Layers() {
		layers = append(layers, l.String())
	}
	net := ""
	if c, ok := it.(board.Conductor); ok && c.Net() > 0 {
		net = b.NetName(c.Net())
	}
	tbl.AddRow(indent+it.ID().String()[:8], it.Kind(), fmt.Sprintf("(%d,%d)", p.X, p.Y),
		strings.Join(layers, ","), net, detail(it))
}

func detail(it board.Item) string {
	switch v := it.(type) {
	case *board.Footprint:
		ref := ""
		if r := v.Reference(); r != nil {
			ref = r.Value
		}
		return fmt.Sprintf("%s %s, %d children", ref, v.Name, len(v.Children()))
	case *board.FootprintText:
		return fmt.Sprintf("%s %q", v.Role, v.Value)
	case *board.Text:
		return fmt.Sprintf("%q", v.Value)
	case *board.Pad:
		return "pad " + v.Number
	case *board.Dimension:
		return v.Label
	case *board.Marker:
		return v.Message
	}
	return ""
}
