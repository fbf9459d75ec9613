package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"gaopt/internal/config"
	"gaopt/internal/fitness"
	"gaopt/internal/ga"
	"gaopt/internal/logging"
	"gaopt/internal/metrics"
	"gaopt/internal/runner"
)

type rootFlags struct {
	configPath  string
	envFile     string
	seed        uint64
	generations int
	encoding    string
	bits        int
	logLevel    string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:           "gaopt",
		Short:         "Genetic algorithm optimiser for single-variable functions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "path to YAML config (built-in defaults when empty)")
	root.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "dotenv file with GAOPT_* overrides")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured integer and/or real coded GA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return runGA(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}
	runCmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (overrides config)")
	runCmd.Flags().IntVar(&f.generations, "generations", 0, "number of generations (overrides config)")
	runCmd.Flags().StringVar(&f.encoding, "encoding", "", "integer|real|both (overrides config)")
	runCmd.Flags().IntVar(&f.bits, "bits", 0, "integer gene width: 8, 16, 32 or 64 (overrides config)")
	runCmd.Flags().StringVar(&f.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	championCmd := &cobra.Command{
		Use:   "champion [file]",
		Short: "Show a saved champion and re-check its fitness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return showChampion(cmd.OutOrStdout(), cfg, args[0])
		},
	}

	root.AddCommand(runCmd, configCmd, championCmd)
	return root
}

// loadConfig resolves file, environment and flag layers, in that order
func loadConfig(cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	if err := config.LoadDotEnv(f.envFile); err != nil {
		return nil, err
	}

	var cfg *config.Config
	if f.configPath != "" {
		c, err := config.Load(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = c
	} else {
		cfg = config.Default()
		if err := config.ApplyEnv(cfg); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("generations") {
		cfg.Generations = f.generations
	}
	if flags.Changed("encoding") {
		cfg.Encoding.Mode = f.encoding
	}
	if flags.Changed("bits") {
		cfg.Encoding.Bits = f.bits
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	return cfg, cfg.Validate()
}

func runGA(out, errOut io.Writer, cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	log := logging.New(errOut, level)

	reg := prometheus.NewRegistry()
	r, err := runner.New(cfg, log, reg)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := r.Run(ga.NewRand(cfg.Seed))
	if err != nil {
		return err
	}
	log.Info("runs complete", "elapsed", time.Since(start), "seed", cfg.Seed)

	renderResults(out, cfg, results)

	if cfg.Logging.ChampionDir != "" {
		for _, res := range results {
			path := filepath.Join(cfg.Logging.ChampionDir, fmt.Sprintf("champion_%s.json", res.Run))
			if err := logging.SaveChampion(path, res.Champion(cfg.Seed)); err != nil {
				log.Warn("failed to save champion", "path", path, "error", err)
			}
		}
	}
	if cfg.Logging.MetricsPath != "" {
		if err := metrics.WriteTextfile(cfg.Logging.MetricsPath, reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func renderResults(out io.Writer, cfg *config.Config, results []runner.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("f = %s on [%g, %g], %d generations, population %d",
		cfg.Fitness.Name, cfg.Domain.Min, cfg.Domain.Max, cfg.Generations, cfg.GA.Population))
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Run", "Encoding", "Rank", "x", "Fitness"})
	for _, res := range results {
		enc := res.Encoding
		if res.Bits > 0 {
			enc = fmt.Sprintf("%s/%d", res.Encoding, res.Bits)
		}
		for i, e := range res.Top {
			t.AppendRow(table.Row{res.Run, enc, i + 1, e.Value, e.Fitness})
		}
		t.AppendSeparator()
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, Transformer: text.NewNumberTransformer("%.6f")},
		{Number: 5, Align: text.AlignRight, Transformer: text.NewNumberTransformer("%.6f")},
	})
	t.Render()
	fmt.Fprintln(out)
	for _, res := range results {
		fmt.Fprintf(out, "%s result = %g\n", res.Run, res.BestFitness)
	}
}

func showChampion(out io.Writer, cfg *config.Config, path string) error {
	c, err := logging.LoadChampion(path)
	if err != nil {
		return fmt.Errorf("loading champion: %w", err)
	}
	fn, err := fitness.Lookup(cfg.Fitness.Name)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Run", c.Run},
		{"Encoding", c.Encoding},
		{"Seed", c.Seed},
		{"Generations", c.Generations},
		{"x", c.Value},
		{"Saved fitness", c.Fitness},
		{"Fitness (" + cfg.Fitness.Name + ")", fn(c.Value)},
	})
	if c.Code != nil {
		t.AppendRow(table.Row{"Code", fmt.Sprintf("%0*b", c.Bits, *c.Code)})
	}
	t.Render()
	return nil
}
