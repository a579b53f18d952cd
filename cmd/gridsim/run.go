package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zanice/2D-Game-Framework/internal/engine"
	"github.com/Zanice/2D-Game-Framework/internal/storage"
	"github.com/spf13/cobra"
)

var (
	runTicks    uint64
	replayDir   string
	historyPath string
	runTickRate time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless simulation",
	Long:  `Run the scenario for a fixed number of ticks without pauses, save the replay and record the run in the history database.`,
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Uint64Var(&runTicks, "ticks", 600, "Number of ticks to simulate")
	runCmd.Flags().StringVar(&replayDir, "replay-dir", engine.DefaultReplayDir, "Directory for replay files (empty - do not record)")
	runCmd.Flags().StringVar(&historyPath, "history", "", "SQLite history database (empty - do not record)")
	runCmd.Flags().DurationVar(&runTickRate, "tick-rate", 0, "Real-time tick period (0s - as fast as possible)")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Ticks = runTicks
	cfg.TickRate = runTickRate

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inst, cleanup, err := newInstance(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := inst.Run(ctx)
	if err != nil {
		return err
	}
	printSummary(summary)
	return nil
}

// newInstance строит мир и подключает запись и историю по флагам
func newInstance(ctx context.Context, cfg engine.Config) (*engine.Instance, func(), error) {
	sim, err := buildSimulation(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	inst := engine.NewInstance(cfg, sim, nil)
	cleanup := func() {}

	if replayDir != "" {
		svc, err := storage.NewReplayService(replayDir)
		if err != nil {
			return nil, nil, err
		}
		inst.WithReplays(svc)
	}
	if historyPath != "" {
		db, err := storage.OpenHistory(historyPath)
		if err != nil {
			return nil, nil, err
		}
		inst.WithHistory(db)
		cleanup = func() { db.Close() }
	}
	return inst, cleanup, nil
}

func printSummary(s engine.RunSummary) {
	fmt.Printf("Run %s (seed %d)\n", s.RunID, s.Seed)
	fmt.Printf("   Ticks:     %d\n", s.Ticks)
	fmt.Printf("   Survivors: %d\n", s.Survivors)
	fmt.Printf("   Deaths:    %d\n", s.Deaths)
	if s.ReplayPath != "" {
		fmt.Printf("   Replay:    %s\n", s.ReplayPath)
	}
}
