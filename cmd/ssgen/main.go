package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/derekprior/ssgen/internal/config"
	"github.com/derekprior/ssgen/internal/excel"
	"github.com/derekprior/ssgen/internal/schedule"
	"github.com/derekprior/ssgen/internal/score"
	"github.com/derekprior/ssgen/internal/search"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "ssgen",
		Short: "Summer softball league schedule generator",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	var configFile string
	checkCmd := &cobra.Command{
		Use:          "check",
		Short:        "Check a config file for feasibility before searching",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runCheck(configPath)
		},
	}
	checkCmd.Flags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var genConfigFile string
	var outputDir string
	var verbose bool
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Search for schedules and write the best ones to Excel workbooks",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(genConfigFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputDir, verbose)
		},
	}
	generateCmd.Flags().StringVar(&genConfigFile, "config", "", "Path to config file (default: config.yaml in current directory)")
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "schedules", "Output directory for workbooks and run summary")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log search internals")

	rootCmd.AddCommand(initCmd, checkCmd, generateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Summer Softball Season Configuration
# ====================================
# This file defines the parameters for the randomized schedule search.

# Teams in the league. Names must be unique; team ids are assigned in order.
teams:
  - Bombers
  - Cyclones
  - Dingers
  - Mudcats
  - Renegades
  - Sandlot Kings

# Games each team plays over the season. Must be even so home and away
# assignments balance.
games_per_team: 10

# Diamonds available per timeslot. Bounds how many games run concurrently.
diamonds: 2

# Timeslots on each game day, in order. The first slot is the "early" game;
# everything else counts as "late" for fairness scoring.
timeslots: ["10:00", "12:00"]

# Season date range and the weekly game day. Games land only on that weekday.
season:
  start_date: "2026-06-07"
  end_date: "2026-08-30"
  game_day: sunday

# Search settings.
#   target_valid_schedules: stop once this many schedules pass all hard
#     constraints. Higher values explore more candidates.
#   save_top: how many of the best-scoring schedules to keep and write out.
#   min_score: schedules scoring below this are still counted as valid but
#     never retained.
#   max_workers: concurrent search workers.
search:
  target_valid_schedules: 1000
  save_top: 5
  min_score: 0
  max_workers: 8
`

func runCheck(configPath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations := schedule.Feasibility(cfg)
	if len(violations) == 0 {
		fmt.Printf("✓ Configuration is feasible: %d games into %d slots over %d game days\n",
			cfg.TotalGames(), len(cfg.GameDays())*len(cfg.Timeslots)*cfg.Diamonds, len(cfg.GameDays()))
		return nil
	}

	for _, v := range violations {
		fmt.Printf("✗ %s: %s\n", v.Name, v.Message)
	}
	return fmt.Errorf("%d feasibility violations found", len(violations))
}

func runGenerate(configPath, outputDir string, verbose bool) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if violations := schedule.Feasibility(cfg); len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", v.Name, v.Message)
		}
		return fmt.Errorf("configuration is infeasible; fix the violations above")
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Searching for %d valid schedules (%d games each) across %d workers...\n",
		cfg.Search.TargetValidSchedules, cfg.TotalGames(), cfg.Search.MaxWorkers)

	searcher := search.New(cfg, logger)

	done := make(chan struct{})
	go reportProgress(searcher, done)

	outcome := searcher.Run(ctx)
	close(done)
	fmt.Println()

	if ctx.Err() != nil {
		fmt.Println("⚠ Interrupted; keeping results found so far")
	}

	fmt.Printf("✓ %d valid schedules out of %d attempts in %s\n",
		outcome.Stats.ValidAttempts, outcome.Stats.TotalAttempts, outcome.Stats.Elapsed.Round(time.Millisecond))

	if len(outcome.Results) == 0 {
		return fmt.Errorf("no schedules met the minimum score of %d", cfg.Search.MinScore)
	}

	best := outcome.Results[0]
	fmt.Printf("\nBest schedule (score %d):\n", best.Score)
	fmt.Printf("  %-20s %6s %4s %6s %5s %5s\n", "Team", "Games", "DH", "Early", "Late", "Byes")
	for _, ts := range score.Breakdown(cfg, best.Games) {
		fmt.Printf("  %-20s %6d %4d %6d %5d %5d\n",
			cfg.TeamName(ts.Team), ts.Games, ts.Doubleheaders, ts.Early, ts.Late, ts.Byes)
	}

	if err := writeOutputs(cfg, outcome, outputDir); err != nil {
		return err
	}

	fmt.Printf("\n✓ Wrote %d schedules and summary.txt to %s\n", len(outcome.Results), outputDir)
	return nil
}

// reportProgress prints an advisory status line on an interval. The counters
// it reads may be slightly stale; that is fine for display.
func reportProgress(s *search.Searcher, done <-chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p := s.Progress()
			fmt.Printf("\r  %d attempts, %d valid, %s elapsed",
				p.TotalAttempts, p.ValidAttempts, p.Elapsed.Round(time.Second))
		}
	}
}

func writeOutputs(cfg *config.Config, outcome *search.Outcome, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	summary := cfg.Summary()
	summary += fmt.Sprintf("\nRun: %d total attempts, %d valid, %s elapsed\n",
		outcome.Stats.TotalAttempts, outcome.Stats.ValidAttempts,
		outcome.Stats.Elapsed.Round(time.Millisecond))
	for i, r := range outcome.Results {
		summary += fmt.Sprintf("  #%d: score %d\n", i+1, r.Score)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "summary.txt"), []byte(summary), 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	for i, r := range outcome.Results {
		f, err := excel.Generate(cfg, r)
		if err != nil {
			return fmt.Errorf("generating workbook %d: %w", i+1, err)
		}
		path := filepath.Join(outputDir, fmt.Sprintf("schedule_%02d.xlsx", i+1))
		if err := f.SaveAs(path); err != nil {
			return fmt.Errorf("saving %s: %w", path, err)
		}
	}

	return nil
}
