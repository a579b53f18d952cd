package engine

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/sirupsen/logrus"
)

// Playback проигрывает запись на свежей симуляции того же сценария и сида.
// Боты выключаются: их решения уже лежат в записи как обычные команды.
// onTick вызывается после каждого тика (может быть nil).
func Playback(sim *Simulation, session *domain.ReplaySession, onTick func(api.Snapshot)) (api.Snapshot, error) {
	if sim.Seed != session.Seed {
		return api.Snapshot{}, domain.Configf("replay seed %d does not match simulation seed %d", session.Seed, sim.Seed)
	}
	if sim.Tick() != 0 {
		return api.Snapshot{}, domain.Configf("playback requires a fresh simulation, at tick %d", sim.Tick())
	}

	sim.DisableBots()
	sim.replay = nil
	for _, cmd := range session.Commands {
		sim.scheduler.Schedule(cmd)
	}

	var snap api.Snapshot
	for sim.Tick() < session.Ticks {
		snap = sim.Step()
		if onTick != nil {
			onTick(snap)
		}
	}

	sim.log.WithFields(logrus.Fields{
		"run_id":   session.RunID,
		"ticks":    session.Ticks,
		"commands": len(session.Commands),
	}).Info("Replay finished")
	return snap, nil
}
