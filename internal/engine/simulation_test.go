package engine

import (
	"context"
	"testing"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/engine/handlers"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func TestSimulation_MoveCommand(t *testing.T) {
	sim := newArena(t, 1)
	cop := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))

	require.NoError(t, sim.Submit(mustCommand(t, 0, cop.ID, domain.ActionMove, api.MovePayload{Right: true})))
	snap := sim.Step()

	assert.Equal(t, uint64(0), snap.Tick)
	assert.Equal(t, uint64(1), sim.Tick())
	assert.InDelta(t, 2.6, cop.Position.X, delta)
	assert.InDelta(t, 2.5, cop.Position.Y, delta)
	assert.Equal(t, geom.V(1, 0), cop.Facing)

	require.Len(t, snap.Entities, 1)
	assert.InDelta(t, 2.6, snap.Entities[0].X, delta)
	assert.Equal(t, "COP", snap.Entities[0].Allegiance)
}

func TestSimulation_MoveStopsAtWall(t *testing.T) {
	sim := newArena(t, 1)
	cop := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceCop, geom.V(1.4, 3.5))

	for i := 0; i < 10; i++ {
		require.NoError(t, sim.Submit(mustCommand(t, sim.Tick(), cop.ID, domain.ActionMove, api.MovePayload{Left: true})))
		sim.Step()
	}

	// Wall cell x=0 ends at 1.0, so the body stops one radius away from it
	assert.InDelta(t, 1.0+cop.Radius, cop.Position.X, delta)
}

func TestSimulation_Submit(t *testing.T) {
	sim := newArena(t, 1)
	cop := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))

	t.Run("unknown actor", func(t *testing.T) {
		stranger := domain.PackEntityID(domain.KindPlayer, domain.AllegianceRobber, 99)
		err := sim.Submit(domain.Command{Actor: stranger, Action: domain.ActionWait})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown action", func(t *testing.T) {
		err := sim.Submit(domain.Command{Actor: cop.ID, Action: domain.ActionUnknown})
		assert.ErrorIs(t, err, domain.ErrRejected)
	})

	t.Run("future command waits for its tick", func(t *testing.T) {
		require.NoError(t, sim.Submit(mustCommand(t, 2, cop.ID, domain.ActionMove, api.MovePayload{Up: true})))
		sim.Step()
		sim.Step()
		assert.InDelta(t, 2.5, cop.Position.Y, delta)
		sim.Step()
		assert.InDelta(t, 2.6, cop.Position.Y, delta)
	})
}

func TestSimulation_InvalidMoveIgnored(t *testing.T) {
	sim := newArena(t, 1)
	cop := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))

	// Empty intent fails payload validation
	require.NoError(t, sim.Submit(mustCommand(t, 0, cop.ID, domain.ActionMove, api.MovePayload{})))
	sim.Step()

	assert.Equal(t, geom.V(2.5, 2.5), cop.Position)
}

func TestSimulation_KnifeKillsAndSweeps(t *testing.T) {
	sim := newArena(t, 1)
	cop := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))
	bystander := mustSpawn(t, sim, domain.KindBystander, domain.AllegianceNeutral, geom.V(2.5, 3.3))

	require.NoError(t, sim.Submit(mustCommand(t, 0, cop.ID, domain.ActionKnife, api.AimPayload{X: 0, Y: 1})))
	snap := sim.Step()

	require.Len(t, snap.Strikes, 1)
	assert.Equal(t, []uint64{uint64(bystander.ID)}, snap.Strikes[0].Kills)
	assert.Len(t, snap.Entities, 1)
	assert.Nil(t, sim.GetEntity(bystander.ID))
	assert.Equal(t, 1, sim.Deaths())
	assert.Equal(t, map[domain.Allegiance]int{domain.AllegianceCop: 1}, sim.Survivors())

	var types []string
	for _, l := range snap.Logs {
		types = append(types, l.Type)
	}
	assert.Contains(t, types, "COMBAT")
	assert.Contains(t, types, "DEATH")

	// No tile keeps the dead entity
	sim.Grid.Tiles(func(tile *domain.Tile) {
		assert.False(t, tile.HasEntity(bystander), "tile %v still tracks the dead entity", tile.Coord())
	})
}

func TestSimulation_StrikeSeesSameTickMove(t *testing.T) {
	sim := newArena(t, 1)
	cop := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))
	robber := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceRobber, geom.V(2.5, 4.02))
	oldCell := sim.Grid.GridCoordinatesFromPosition(robber.Position)

	// Both close in during the tick; before moving they are 1.52 apart, out of knife reach
	require.NoError(t, sim.Submit(mustCommand(t, 0, cop.ID, domain.ActionMove, api.MovePayload{Up: true})))
	require.NoError(t, sim.Submit(mustCommand(t, 0, robber.ID, domain.ActionMove, api.MovePayload{Down: true})))
	require.NoError(t, sim.Submit(mustCommand(t, 0, cop.ID, domain.ActionKnife, api.AimPayload{X: 0, Y: 1})))

	// The weapon phase must see every entity indexed around the cell it occupies now
	knife := sim.handlers[domain.ActionKnife]
	var checked bool
	sim.handlers[domain.ActionKnife] = func(ctx handlers.Context, cmd domain.Command) (handlers.Result, error) {
		checked = true
		for _, e := range sim.Entities() {
			last, ok := e.LastCell()
			require.True(t, ok)
			assert.Equal(t, sim.Grid.GridCoordinatesFromPosition(e.Position), last, "entity %s indexed at a stale cell", e.ID)
		}
		return knife(ctx, cmd)
	}

	snap := sim.Step()
	require.True(t, checked)

	newCell := sim.Grid.GridCoordinatesFromPosition(robber.Position)
	require.NotEqual(t, oldCell, newCell, "the robber must change cell during the tick")
	assert.InDelta(t, 3.92, robber.Position.Y, delta)

	require.Len(t, snap.Strikes, 1)
	assert.Equal(t, []uint64{uint64(robber.ID)}, snap.Strikes[0].Hits)
	assert.Equal(t, 90, robber.Health)
}

func TestSimulation_WeaponCooldown(t *testing.T) {
	sim := newArena(t, 1)
	cop := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))

	require.NoError(t, sim.Submit(mustCommand(t, 0, cop.ID, domain.ActionKnife, api.AimPayload{})))
	require.NoError(t, sim.Submit(mustCommand(t, 1, cop.ID, domain.ActionKnife, api.AimPayload{})))

	first := sim.Step()
	second := sim.Step()

	assert.Len(t, first.Strikes, 1, "a miss is still a strike")
	assert.Empty(t, second.Strikes, "knife is on cooldown")
}

func TestSimulation_TazerProjectile(t *testing.T) {
	sim := newArena(t, 1)
	cop := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceCop, geom.V(1.5, 3.5))
	robber := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceRobber, geom.V(4.5, 3.5))

	require.NoError(t, sim.Submit(mustCommand(t, 0, cop.ID, domain.ActionTazer, api.AimPayload{X: 1})))
	snap := sim.Step()
	require.Len(t, snap.Projectiles, 1)
	assert.Equal(t, "tazer", snap.Projectiles[0].Weapon)
	assert.Equal(t, uint64(cop.ID), snap.Projectiles[0].Owner)

	hitTick := uint64(0)
	for i := 0; i < 20 && hitTick == 0; i++ {
		snap = sim.Step()
		if len(snap.Strikes) > 0 {
			hitTick = snap.Tick
		}
	}

	// 1.5 -> 4.25 in steps of 0.25 takes 11 ticks
	assert.Equal(t, uint64(11), hitTick)
	assert.Equal(t, robber.MaxHealth-10, robber.Health)
	assert.Empty(t, snap.Projectiles)
	assert.Empty(t, sim.Projectiles())
}

func TestSimulation_DeadActorCommandsIgnored(t *testing.T) {
	sim := newArena(t, 1)
	cop := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))
	robber := mustSpawn(t, sim, domain.KindPlayer, domain.AllegianceRobber, geom.V(4.5, 4.5))

	require.NoError(t, sim.Submit(mustCommand(t, 1, robber.ID, domain.ActionKnife, api.AimPayload{X: -1, Y: -1})))
	robber.Kill()
	first := sim.Step()
	second := sim.Step()

	assert.Len(t, first.Entities, 1)
	assert.Empty(t, second.Strikes)
	assert.Equal(t, cop.MaxHealth, cop.Health)
}

func TestSimulation_SpawnOutsideGrid(t *testing.T) {
	sim := newArena(t, 1)
	_, err := sim.Spawn(domain.KindPlayer, domain.AllegianceCop, geom.V(-1, 3), false)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestSimulation_BotsAreDeterministic(t *testing.T) {
	run := func() api.Snapshot {
		sim, err := BuildSimulation(context.Background(), DefaultScenario(), 99, nil)
		require.NoError(t, err)
		var snap api.Snapshot
		for i := 0; i < 120; i++ {
			snap = sim.Step()
		}
		return snap
	}

	assert.Equal(t, run(), run())
}

func TestSimulation_BotsAct(t *testing.T) {
	sim, err := BuildSimulation(context.Background(), DefaultScenario(), 5, nil)
	require.NoError(t, err)
	session := &domain.ReplaySession{}
	sim.Record(session)

	for i := 0; i < 50; i++ {
		sim.Step()
	}

	// The robber bot chases visible targets, so it emits commands without any input
	require.NotEmpty(t, session.Commands)
	assert.Equal(t, uint64(50), session.Ticks)
	assert.Equal(t, int64(5), session.Seed)
	for _, c := range session.Commands {
		assert.True(t, sim.IsBot(c.Actor) || sim.GetEntity(c.Actor) == nil)
	}
}
