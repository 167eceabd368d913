package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/message"

	service "github.com/okian/dragonbalance/internal/app"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// Columns holding weights.
const (
	leftWeightCol  = 2
	rightWeightCol = 4
)

// writeOutcome prints totals, shares and the bench table in the language of p.
func writeOutcome(w io.Writer, p *message.Printer, out service.Outcome) {
	t := out.Result.Totals
	pc := out.Result.Percents
	kg := func(v float64) string { return p.Sprintf("%.1f", v) }
	pct := func(v float64) string { return p.Sprintf("%.2f%%", v) }

	_, _ = fmt.Fprintln(w, titleStyle.Render(p.Sprintf("app.title")))
	_, _ = fmt.Fprintln(w, p.Sprintf("report.boat", out.BoatSize, out.Benches))
	_, _ = fmt.Fprintln(w, p.Sprintf("report.crew", orDash(out.Drummer), t.Drummer, orDash(out.Helm), t.Helm))
	_, _ = fmt.Fprintln(w)

	for _, line := range [][2]string{
		{"zone.left_kg", kg(t.Left)},
		{"zone.right_kg", kg(t.Right)},
		{"zone.bow_kg", kg(t.Bow)},
		{"zone.stern_kg", kg(t.Stern)},
		{"zone.total_kg", kg(t.Total)},
	} {
		_, _ = fmt.Fprintf(w, "%s: %s\n", p.Sprintf(line[0]), line[1])
	}
	_, _ = fmt.Fprintf(w, "%s: %s / %s\n", p.Sprintf("result.sides"), pct(pc.Left), pct(pc.Right))
	_, _ = fmt.Fprintf(w, "%s: %s / %s\n", p.Sprintf("result.ends"), pct(pc.Bow), pct(pc.Stern))
	_, _ = fmt.Fprintln(w)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 || col == leftWeightCol || col == rightWeightCol:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		Headers(p.Sprintf("form.bench"), p.Sprintf("form.left"), "kg", p.Sprintf("form.right"), "kg")
	for _, b := range out.Result.Assignments {
		tbl.Row(strconv.Itoa(b.Bench), orDash(b.LeftName), kg(b.LeftWeight), orDash(b.RightName), kg(b.RightWeight))
	}
	_, _ = fmt.Fprintln(w, tbl.String())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
