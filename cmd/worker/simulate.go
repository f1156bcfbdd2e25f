package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/logging"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/catalogue"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/clock"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/engine"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/report"
	"github.com/spf13/cobra"
)

type simulateOptions struct {
	seed           uint64
	minutes        int
	classification string
	scenarios      string
	severities     []string
	eventTypes     []string
	logLevel       string
}

var simOpts simulateOptions

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one simulation on a virtual clock and print its report",
	Long: `Runs a simulation for the given number of simulated minutes without
waiting in real time, stops it and prints the report as JSON. The same seed
and scenario file always produce the same report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulate(cmd.OutOrStdout(), simOpts)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	f := simulateCmd.Flags()
	f.Uint64Var(&simOpts.seed, "seed", 0, "Random seed (0 picks one)")
	f.IntVar(&simOpts.minutes, "minutes", 60, "Simulated minutes to run")
	f.StringVar(&simOpts.classification, "classification", "internal", "Report classification (public, internal, confidential, restricted, secret)")
	f.StringVar(&simOpts.scenarios, "scenarios", "", "YAML scenario catalogue (defaults to the built-in set)")
	f.StringSliceVar(&simOpts.severities, "severity", nil, "Severities to include in the report (repeatable)")
	f.StringSliceVar(&simOpts.eventTypes, "event-type", nil, "Event types to include in the report (repeatable)")
	f.StringVar(&simOpts.logLevel, "log-level", "warn", "Engine log level")
}

func runSimulate(w io.Writer, opts simulateOptions) error {
	if opts.minutes <= 0 {
		return fmt.Errorf("--minutes must be positive, got %d", opts.minutes)
	}

	cat := catalogue.Default()
	if opts.scenarios != "" {
		loaded, err := catalogue.LoadFile(opts.scenarios)
		if err != nil {
			return err
		}
		cat = loaded
	}

	repOpts := report.Options{Classification: report.Classification(opts.classification)}
	for _, s := range opts.severities {
		repOpts.Severities = append(repOpts.Severities, domain.Severity(s))
	}
	for _, t := range opts.eventTypes {
		repOpts.EventTypes = append(repOpts.EventTypes, domain.EventType(t))
	}
	// fail on bad filters before spending time on the run
	if _, err := repOpts.Normalize(); err != nil {
		return err
	}

	cfg := engine.DefaultConfig()
	cfg.DurationMinutes = opts.minutes

	fake := clock.NewFake(time.Now().UTC().Truncate(time.Second))
	engOpts := []engine.Option{
		engine.WithClock(fake),
		engine.WithCatalogue(cat),
		engine.WithLogger(logging.New("worker", logging.ParseLevel(opts.logLevel))),
	}
	if opts.seed != 0 {
		engOpts = append(engOpts, engine.WithSeed(opts.seed))
	}
	eng, err := engine.New(cfg, engOpts...)
	if err != nil {
		return err
	}
	defer eng.Close()

	eng.Start()
	fake.Advance(time.Duration(opts.minutes) * time.Minute)
	eng.Stop()

	rep, err := report.Build(eng.State(), repOpts, fake.Now())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Seed   uint64         `json:"seed"`
		Report *report.Report `json:"report"`
	}{eng.Seed(), rep})
}
