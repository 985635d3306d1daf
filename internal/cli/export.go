package cli

import (
	"fmt"

	"kanban-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var render bool
	var width int
	var ids bool
	var title string
	var style string
	var toDir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			opt := publish.RenderOptions{Title: title, IncludeIDs: ids}
			if toDir != "" {
				res, err := publish.WriteBoard(b.Snapshot(), toDir, publish.WriteOptions{RenderOptions: opt, Overwrite: overwrite})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			}

			md := publish.RenderBoardMarkdown(b.Snapshot(), opt)
			if render {
				if style == "" {
					style = "dark"
					if app.NoColor {
						style = "notty"
					}
				}
				md, err = publish.RenderTerminal(md, width, style)
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Render for the terminal (glamour)")
	cmd.Flags().IntVar(&width, "width", 80, "Word wrap width for --render")
	cmd.Flags().BoolVar(&ids, "ids", false, "Include column ids in headings")
	cmd.Flags().StringVar(&title, "title", "", "Document title (default: Board)")
	cmd.Flags().StringVar(&toDir, "to", "", "Write board.md into this directory instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing board.md (with --to)")
	cmd.Flags().StringVar(&style, "style", "", "glamour style for --render (dark|light|notty; default dark)")
	return cmd
}
