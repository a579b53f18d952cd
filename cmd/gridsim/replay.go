package main

import (
	"fmt"
	"path/filepath"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/engine"
	"github.com/Zanice/2D-Game-Framework/internal/storage"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/spf13/cobra"
)

var replayVerbose bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Play back a recorded run",
	Long: `Rebuild the world from the replay seed and re-execute the recorded commands.
The file does not store the scenario: pass the same --scenario as the original run.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&replayVerbose, "verbose", "v", false, "Print every tick")
}

func runReplay(cmd *cobra.Command, args []string) error {
	path := args[0]
	svc := &storage.ReplayService{SaveDir: filepath.Dir(path)}
	session, err := svc.Load(path)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Seed = session.Seed

	sim, err := buildSimulation(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var onTick func(api.Snapshot)
	if replayVerbose {
		onTick = func(s api.Snapshot) {
			fmt.Printf("tick %5d  entities %d  strikes %d\n", s.Tick, len(s.Entities), len(s.Strikes))
		}
	}

	last, err := engine.Playback(sim, session, onTick)
	if err != nil {
		return err
	}

	fmt.Printf("Replay %s (seed %d)\n", session.RunID, session.Seed)
	fmt.Printf("   Commands:  %d\n", len(session.Commands))
	fmt.Printf("   Ticks:     %d\n", session.Ticks)
	fmt.Printf("   Entities:  %d alive at tick %d\n", len(last.Entities), last.Tick)
	survivors := sim.Survivors()
	for _, a := range []domain.Allegiance{domain.AllegianceCop, domain.AllegianceRobber, domain.AllegianceNeutral} {
		fmt.Printf("   %-10s %d\n", a.String()+":", survivors[a])
	}
	return nil
}
