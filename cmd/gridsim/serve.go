package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/Zanice/2D-Game-Framework/internal/engine"
	"github.com/Zanice/2D-Game-Framework/internal/server"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	servePort     int
	serveTickRate time.Duration
	serveTicks    uint64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulation in real time with a spectator server",
	Long: `Run the scenario in real time and serve snapshots to websocket spectators on /ws.
Debug endpoints live under /debug/.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (0 - from GRIDSIM_PORT or 8080)")
	serveCmd.Flags().DurationVar(&serveTickRate, "tick-rate", 0, "Tick period (0 - from GRIDSIM_TICK_RATE or 50ms)")
	serveCmd.Flags().Uint64Var(&serveTicks, "ticks", 0, "Stop after this many ticks (0 - run until interrupted)")
	serveCmd.Flags().StringVar(&replayDir, "replay-dir", engine.DefaultReplayDir, "Directory for replay files (empty - do not record)")
	serveCmd.Flags().StringVar(&historyPath, "history", "", "SQLite history database (empty - do not record)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveTickRate != 0 {
		cfg.TickRate = serveTickRate
	}
	cfg.Ticks = serveTicks
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inst, cleanup, err := newInstance(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(inst, cfg.Port)
	logger.Log.WithFields(logrus.Fields{
		"port":   cfg.Port,
		"run_id": inst.RunID,
	}).Info("Server started")

	// Сервер живет, пока идет прогон; ошибка сервера останавливает прогон
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run(ctx)
		stop()
	}()

	summary, runErr := inst.Run(ctx)
	stop()
	if err := <-serverErr; err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	printSummary(summary)
	return nil
}
