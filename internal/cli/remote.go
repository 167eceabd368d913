package cli

import (
	"time"

	"github.com/spf13/cobra"

	service "github.com/okian/dragonbalance/internal/app"
	"github.com/okian/dragonbalance/pkg/logger"
)

const defaultRemoteTimeout = 10 * time.Second

func newRemoteCommand(e *env) *cobra.Command {
	var (
		crew    crewFlags
		baseURL string
		timeout time.Duration
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Compute a seating chart on a running server",
		Long: `Send a seating chart to a running server's balance API and print the
result. Weights come from the server's roster. Without --size the server
picks its default boat size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seats, err := parseSeats(crew.seats)
			if err != nil {
				return e.printer.Error("Invalid seat", err.Error(), []string{
					"Write seats as --seat L1=Ana --seat R1=Bea",
				})
			}

			bundle, err := e.localizer()
			if err != nil {
				return err
			}

			client := NewHTTPClient(baseURL, timeout)
			out, id, err := client.Compute(cmd.Context(), service.Request{
				BoatSize: crew.size,
				Drummer:  crew.drummer,
				Helm:     crew.helm,
				Seats:    seats,
			})
			if err != nil {
				e.log.Debug(cmd.Context(), "remote compute failed",
					logger.String("request_id", id), logger.Error(err))
				return e.printer.Error("Remote compute failed", err.Error(), []string{
					"Check that the server is running at " + baseURL,
					"Search the server logs for request id " + id,
				})
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			writeOutcome(cmd.OutOrStdout(), bundle.Printer(bundle.Default()), out)
			return nil
		},
	}

	crew.register(cmd)
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:5000", "Server base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultRemoteTimeout, "Request timeout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
