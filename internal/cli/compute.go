package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/okian/dragonbalance/internal/domain/layout"
)

func newComputeCommand(e *env) *cobra.Command {
	var (
		crew   crewFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the balance of a seating chart",
		Long: `Compute the weight balance of a seating chart against the local roster.

Example:
  dragonbalance compute --size 10 --drummer Dani --helm Hugo \
    --seat L1=Ana --seat R1=Bea`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, p, _, err := e.local(ctx)
			if err != nil {
				return err
			}
			req, err := e.request(&crew)
			if err != nil {
				return err
			}

			out, err := svc.Compute(ctx, req)
			if errors.Is(err, layout.ErrUnsupportedBoatSize) {
				return e.unsupportedSize(req.BoatSize)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			writeOutcome(cmd.OutOrStdout(), p, out)
			return nil
		},
	}

	crew.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
