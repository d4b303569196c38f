// Command epidemicsim runs the agent-based SEIRD epidemic engine headless:
// load a scenario, step it for a fixed number of ticks, report aggregates.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/Acteus/Simple-Epidemic/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "scenario YAML file (defaults used when empty)")
	steps := flag.Int("steps", 400, "number of simulation steps to run")
	seed := flag.Int64("seed", 42, "random seed")
	reportEvery := flag.Int("report", 20, "log a progress report every N steps")
	csvPath := flag.String("csv", "", "write per-step counts and Rt to this CSV file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	log := slog.With("run_id", uuid.NewString())

	cfg := sim.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = sim.LoadConfig(*configPath)
		if err != nil {
			log.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}

	simulation, err := sim.New(&cfg, *seed)
	if err != nil {
		log.Error("failed to construct simulation", "error", err)
		os.Exit(1)
	}

	log.Info("epidemic simulation started",
		"population", humanize.Comma(int64(cfg.Population)),
		"grid_size", cfg.GridSize,
		"beta", cfg.Beta,
		"dt", cfg.DT,
		"seed", *seed,
		"steps", *steps,
	)

	for i := 1; i <= *steps; i++ {
		counts := simulation.Step()

		if *reportEvery > 0 && i%*reportEvery == 0 {
			log.Info("progress",
				"step", i,
				"day", fmt.Sprintf("%.1f", simulation.Day()),
				"s", counts.S,
				"e", counts.E,
				"i", counts.I,
				"r", counts.R,
				"d", counts.D,
				"rt", fmt.Sprintf("%.2f", simulation.Rt()),
			)
		}

		// Nothing left to incubate or transmit: the run is over.
		if counts.E == 0 && counts.I == 0 {
			log.Info("epidemic extinguished", "step", i, "day", fmt.Sprintf("%.1f", simulation.Day()))
			break
		}
	}

	summarize(log, simulation, cfg.Population)

	if *csvPath != "" {
		if err := writeCSV(*csvPath, simulation); err != nil {
			log.Error("failed to write CSV", "path", *csvPath, "error", err)
			os.Exit(1)
		}
		log.Info("results written", "path", *csvPath)
	}
}

func summarize(log *slog.Logger, s *sim.Simulation, population int) {
	history := s.History()

	peak := 0
	for _, n := range history.I {
		if n > peak {
			peak = n
		}
	}

	final := s.Counts()
	everInfected := population - final.S

	log.Info("final summary",
		"steps", s.CurrentStep(),
		"days", fmt.Sprintf("%.1f", s.Day()),
		"peak_infectious", humanize.Comma(int64(peak)),
		"ever_infected", humanize.Comma(int64(everInfected)),
		"attack_rate", fmt.Sprintf("%.1f%%", 100*float64(everInfected)/float64(population)),
		"deceased", humanize.Comma(int64(final.D)),
		"recovered", humanize.Comma(int64(final.R)),
	)
}

// writeCSV exports the recorded time series, one row per step including the
// initial step-0 snapshot.
func writeCSV(path string, s *sim.Simulation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "s", "e", "i", "r", "d", "rt"}); err != nil {
		return err
	}

	history := s.History()
	rt := s.RtHistory()
	for i := range history.S {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(history.S[i]),
			strconv.Itoa(history.E[i]),
			strconv.Itoa(history.I[i]),
			strconv.Itoa(history.R[i]),
			strconv.Itoa(history.D[i]),
			strconv.FormatFloat(rt[i], 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
