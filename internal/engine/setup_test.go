package engine

import (
	"context"
	"os"
	"testing"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/stretchr/testify/require"
)

// arenaRows is a 7×7 room: walls around a 5×5 floor, no pillars.
const arenaRows = "{2,2,2,2,2,2,2}\n" +
	"{2,1,1,1,1,1,2}\n" +
	"{2,1,1,1,1,1,2}\n" +
	"{2,1,1,1,1,1,2}\n" +
	"{2,1,1,1,1,1,2}\n" +
	"{2,1,1,1,1,1,2}\n" +
	"{2,2,2,2,2,2,2}\n"

func TestMain(m *testing.M) {
	logger.Init()
	logger.Silence()
	os.Exit(m.Run())
}

func arenaScenario() Scenario {
	return Scenario{
		Name: "arena",
		Map:  MapSpec{Source: MapSourceInline, Width: 7, Height: 7, Rows: arenaRows},
	}
}

// newArena builds an empty arena simulation.
func newArena(t *testing.T, seed int64) *Simulation {
	t.Helper()
	sim, err := BuildSimulation(context.Background(), arenaScenario(), seed, nil)
	require.NoError(t, err)
	return sim
}

func mustSpawn(t *testing.T, sim *Simulation, kind domain.EntityKind, a domain.Allegiance, pos geom.Vec2) *domain.Entity {
	t.Helper()
	e, err := sim.Spawn(kind, a, pos, false)
	require.NoError(t, err)
	return e
}

func mustCommand(t *testing.T, tick uint64, actor domain.EntityID, action domain.ActionType, payload any) domain.Command {
	t.Helper()
	cmd, err := domain.NewCommand(tick, actor, action, payload)
	require.NoError(t, err)
	return cmd
}
