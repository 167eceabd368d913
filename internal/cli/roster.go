package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/okian/dragonbalance/internal/domain/roster"
)

func newRosterCommand(e *env) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List the paddlers of the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := roster.Load(cmd.Context(), e.cfg.RosterPath, roster.WithLogger(e.log.Named("roster")))
			entries := r.Entries()

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			if len(entries) == 0 {
				e.printer.Info("No paddlers in %s.\n", e.cfg.RosterPath)
				return nil
			}

			tbl := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == table.HeaderRow:
						return headerStyle
					case col == 1:
						return numberStyle
					default:
						return cellStyle
					}
				}).
				Headers("NAME", "KG")
			for _, p := range entries {
				tbl.Row(p.Name, fmt.Sprintf("%.1f", p.Weight))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl.String())

			e.printer.Info("%d paddlers", r.Len())
			if r.Skipped() > 0 {
				e.printer.Info(", %d rows skipped", r.Skipped())
			}
			e.printer.Info("\n")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
