package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/dragonbalance/internal/domain/layout"
)

func newReportCommand(e *env) *cobra.Command {
	var (
		crew crewFlags
		out  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the PDF report of a seating chart",
		Long: `Write the PDF report of a seating chart to a file.

Without --out the file is named after report_filename. The report uses the
language selected with --lang.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			svc, _, tag, err := e.local(ctx)
			if err != nil {
				return err
			}
			req, err := e.request(&crew)
			if err != nil {
				return err
			}
			if !svc.Layouts().Supports(req.BoatSize) {
				return e.unsupportedSize(req.BoatSize)
			}

			path := out
			if path == "" {
				path = e.cfg.ReportFilename
			}
			f, err := os.Create(path)
			if err != nil {
				return e.printer.Error("Cannot create report file", err.Error(), []string{
					"Choose a writable path with --out",
				})
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("failed to close %s: %w", path, cerr)
				}
			}()

			if err := svc.Export(ctx, f, tag, req); err != nil {
				_ = os.Remove(path)
				if errors.Is(err, layout.ErrUnsupportedBoatSize) {
					return e.unsupportedSize(req.BoatSize)
				}
				return e.printer.Error("Report failed", err.Error(), nil)
			}

			e.printer.Success("Report written to %s\n", path)
			return nil
		},
	}

	crew.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default report_filename)")
	return cmd
}
