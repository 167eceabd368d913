// Package cli implements the dragonbalance command line: offline balance
// computation and reports against a local roster, plus a client for a
// running server.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	service "github.com/okian/dragonbalance/internal/app"
	"github.com/okian/dragonbalance/internal/config"
	"github.com/okian/dragonbalance/internal/domain/layout"
	"github.com/okian/dragonbalance/internal/domain/report"
	"github.com/okian/dragonbalance/internal/domain/roster"
	"github.com/okian/dragonbalance/internal/platform/i18n"
	"github.com/okian/dragonbalance/pkg/logger"
)

// Build information injected at compile time.
var (
	version = "dev"
	commit  = "unknown"
)

// SetVersionInfo records build information shown by --version.
func SetVersionInfo(v, c string) {
	version = v
	commit = c
}

// env is the state shared by every subcommand once the root has set it up.
type env struct {
	rosterPath string
	lang       string
	logLevel   string

	cfg     *config.Config
	log     logger.Logger
	printer *Printer
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "dragonbalance",
		Short: "Dragon boat crew weight balance",
		Long: `dragonbalance computes the weight distribution of a dragon boat crew.

Seats are given as SEAT=NAME where SEAT is L or R followed by the bench
number, counted from the bow. Weights come from the roster CSV.

Configuration is read like the server's: defaults, then the YAML file named
by DRAGONBALANCE_CONFIG, then DRAGONBALANCE_* variables, then flags.`,
		Version:           fmt.Sprintf("%s (commit %s)", version, commit),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: e.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&e.rosterPath, "roster", "", "Roster CSV (overrides roster_path)")
	pf.StringVar(&e.lang, "lang", "", "Output and report language (overrides default_language)")
	pf.StringVar(&e.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		newComputeCommand(e),
		newReportCommand(e),
		newRosterCommand(e),
		newRemoteCommand(e),
	)
	return root
}

// Execute runs the command tree with ctx and os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (e *env) setup(cmd *cobra.Command, _ []string) error {
	e.printer = NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(e.logLevel); err != nil {
		return e.printer.Error("Invalid log level",
			fmt.Sprintf("%q is not a log level.", e.logLevel),
			[]string{"Use one of: debug, info, warn, error"})
	}
	e.log = logger.Named("cli")

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return e.printer.Error("Configuration error", err.Error(), []string{
			"Check the DRAGONBALANCE_* environment variables",
			"Check the file named by " + config.EnvConfigFile,
		})
	}
	if e.rosterPath != "" {
		cfg.RosterPath = e.rosterPath
	}
	if e.lang != "" {
		cfg.DefaultLanguage = e.lang
	}
	e.cfg = cfg
	return nil
}

// localizer returns the catalogs with the selected language as default.
func (e *env) localizer() (*i18n.Bundle, error) {
	bundle, err := i18n.Load(e.cfg.DefaultLanguage)
	if err != nil {
		return nil, e.printer.Error("Unknown language",
			fmt.Sprintf("No translations for %q.", e.cfg.DefaultLanguage),
			[]string{"Use --lang es or --lang en"})
	}
	return bundle, nil
}

// local builds an in-process service over the configured roster and layouts.
func (e *env) local(ctx context.Context) (*service.Service, *message.Printer, language.Tag, error) {
	bundle, err := e.localizer()
	if err != nil {
		return nil, nil, language.Und, err
	}

	sizes, err := e.cfg.BenchesBySize()
	if err != nil {
		return nil, nil, language.Und, e.printer.Error("Configuration error", err.Error(), nil)
	}
	layouts, err := layout.New(sizes)
	if err != nil {
		return nil, nil, language.Und, e.printer.Error("Configuration error", err.Error(), nil)
	}

	r := roster.Load(ctx, e.cfg.RosterPath, roster.WithLogger(e.log.Named("roster")))
	if r.Len() == 0 {
		e.printer.Warning("roster %s has no paddlers; every weight counts as 0\n", e.cfg.RosterPath)
	}

	svc := service.New(
		service.WithLogger(e.log.Named("service")),
		service.WithRoster(r),
		service.WithLayouts(layouts),
		service.WithRenderer(report.NewRenderer(bundle)),
	)
	tag := bundle.Default()
	return svc, bundle.Printer(tag), tag, nil
}

// request assembles a service request from the shared crew flags.
func (e *env) request(f *crewFlags) (service.Request, error) {
	seats, err := parseSeats(f.seats)
	if err != nil {
		return service.Request{}, e.printer.Error("Invalid seat", err.Error(), []string{
			"Write seats as --seat L1=Ana --seat R1=Bea",
		})
	}
	size := f.size
	if size == 0 {
		size = e.cfg.DefaultBoatSize
	}
	return service.Request{
		BoatSize: size,
		Drummer:  f.drummer,
		Helm:     f.helm,
		Seats:    seats,
	}, nil
}

// crewFlags are the seating flags shared by compute, report and remote.
type crewFlags struct {
	size    int
	drummer string
	helm    string
	seats   []string
}

func (f *crewFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVar(&f.size, "size", 0, "Boat size; 0 uses default_boat_size")
	fl.StringVar(&f.drummer, "drummer", "", "Drummer name")
	fl.StringVar(&f.helm, "helm", "", "Helm name")
	fl.StringArrayVar(&f.seats, "seat", nil, "Seat assignment SEAT=NAME, e.g. L1=Ana (repeatable)")
}

// unsupportedSize reports a boat size with no layout.
func (e *env) unsupportedSize(size int) error {
	sizes := make([]string, 0)
	if e.cfg != nil {
		if bySize, err := e.cfg.BenchesBySize(); err == nil {
			if t, err := layout.New(bySize); err == nil {
				for _, l := range t.All() {
					sizes = append(sizes, fmt.Sprint(l.Size))
				}
			}
		}
	}
	return e.printer.Error("Unsupported boat size",
		fmt.Sprintf("There is no layout for a boat of size %d.", size),
		[]string{
			fmt.Sprintf("Use one of the configured sizes: %v", sizes),
			"Add a layout with DRAGONBALANCE_LAYOUTS__<size>=<benches>",
		})
}
