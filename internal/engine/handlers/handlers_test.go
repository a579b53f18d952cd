package handlers

import (
	"math"
	"os"
	"testing"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/systems"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/Zanice/2D-Game-Framework/pkg/mapfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Silence()
	os.Exit(m.Run())
}

type finder map[domain.EntityID]*domain.Entity

func (f finder) GetEntity(id domain.EntityID) *domain.Entity { return f[id] }

type fixture struct {
	grid        *world.Grid
	entities    finder
	projectiles []*systems.Projectile
	nextID      uint64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	g := world.NewGrid(nil)
	g.SetParameters(6, 6, 0, 0)
	require.NoError(t, g.CreateGridFromMap(mapfile.Filled(6, 6, int(domain.TileFloor))))
	return &fixture{grid: g, entities: finder{}}
}

func (f *fixture) spawn(t *testing.T, index uint64, kind domain.EntityKind, a domain.Allegiance, pos geom.Vec2) *domain.Entity {
	t.Helper()
	e, err := domain.NewEntity(domain.PackEntityID(kind, a, index), kind, a, pos)
	require.NoError(t, err)
	systems.RefreshTracking(f.grid, e)
	f.entities[e.ID] = e
	return e
}

func (f *fixture) ctx(actor *domain.Entity, loadout *systems.Loadout, tick uint64) Context {
	return Context{
		Finder:  f.entities,
		Grid:    f.grid,
		Actor:   actor,
		Loadout: loadout,
		Tick:    tick,
		Launch: func(p *systems.Projectile) {
			f.projectiles = append(f.projectiles, p)
		},
		NextProjectileID: func() uint64 {
			f.nextID++
			return f.nextID
		},
	}
}

func command(t *testing.T, actor *domain.Entity, action domain.ActionType, payload any) domain.Command {
	t.Helper()
	cmd, err := domain.NewCommand(0, actor.ID, action, payload)
	require.NoError(t, err)
	return cmd
}

func TestDecode(t *testing.T) {
	actor := domain.PackEntityID(domain.KindPlayer, domain.AllegianceCop, 1)

	t.Run("valid", func(t *testing.T) {
		cmd, err := domain.NewCommand(0, actor, domain.ActionMove, api.MovePayload{Left: true})
		require.NoError(t, err)
		p, err := Decode[api.MovePayload](cmd)
		require.NoError(t, err)
		assert.True(t, p.Left)
	})

	t.Run("missing payload", func(t *testing.T) {
		_, err := Decode[api.MovePayload](domain.Command{Actor: actor, Action: domain.ActionMove})
		assert.ErrorIs(t, err, domain.ErrRejected)
	})

	t.Run("fails validation", func(t *testing.T) {
		cmd, err := domain.NewCommand(0, actor, domain.ActionTazer, api.AimPayload{X: math.Inf(1)})
		require.NoError(t, err)
		_, err = Decode[api.AimPayload](cmd)
		assert.ErrorIs(t, err, domain.ErrRejected)
	})
}

func TestRegistry_CoversWeaponActions(t *testing.T) {
	reg := Registry()
	for _, a := range []domain.ActionType{domain.ActionKnife, domain.ActionTazer, domain.ActionFlashbang, domain.ActionShieldBash, domain.ActionWait} {
		assert.Contains(t, reg, a, "missing handler for %s", a)
	}
	assert.NotContains(t, reg, domain.ActionMove, "movement is applied by the simulation itself")
}

func TestHandleKnife(t *testing.T) {
	f := newFixture(t)
	cop := f.spawn(t, 1, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))
	robber := f.spawn(t, 2, domain.KindPlayer, domain.AllegianceRobber, geom.V(3.3, 2.5))
	loadout := systems.NewLoadout(cop.Allegiance)

	res, err := Registry()[domain.ActionKnife](f.ctx(cop, loadout, 0), command(t, cop, domain.ActionKnife, api.AimPayload{X: 1}))
	require.NoError(t, err)

	require.NotNil(t, res.Strike)
	assert.Equal(t, []domain.EntityID{robber.ID}, res.Strike.Hits)
	assert.Equal(t, "COMBAT", res.MsgType)
	assert.Equal(t, geom.V(1, 0), cop.Facing)
	assert.Equal(t, robber.MaxHealth-systems.KnifeDamage, robber.Health)

	// Second swing on the next tick is still on cooldown
	_, err = Registry()[domain.ActionKnife](f.ctx(cop, loadout, 1), command(t, cop, domain.ActionKnife, api.AimPayload{X: 1}))
	assert.ErrorIs(t, err, domain.ErrRejected)
}

func TestHandleTazer_Launches(t *testing.T) {
	f := newFixture(t)
	cop := f.spawn(t, 1, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))

	res, err := Registry()[domain.ActionTazer](f.ctx(cop, nil, 0), command(t, cop, domain.ActionTazer, api.AimPayload{Y: -2}))
	require.NoError(t, err)

	assert.Nil(t, res.Strike)
	assert.NotEmpty(t, res.Msg)
	require.Len(t, f.projectiles, 1)
	p := f.projectiles[0]
	assert.Equal(t, uint64(1), p.ID)
	assert.Equal(t, cop.ID, p.Owner)
	assert.InDelta(t, -systems.TazerSpeed, p.Velocity.Y, 1e-9)
}

func TestHandleFlashbang_RequiresCharges(t *testing.T) {
	f := newFixture(t)
	cop := f.spawn(t, 1, domain.KindPlayer, domain.AllegianceCop, geom.V(1.5, 1.5))
	robber := f.spawn(t, 2, domain.KindPlayer, domain.AllegianceRobber, geom.V(4.5, 4.5))
	bystander := f.spawn(t, 3, domain.KindBystander, domain.AllegianceNeutral, geom.V(4.5, 3.5))

	// Cops carry no flashbangs
	_, err := Registry()[domain.ActionFlashbang](f.ctx(cop, systems.NewLoadout(cop.Allegiance), 0),
		command(t, cop, domain.ActionFlashbang, api.PositionPayload{X: 1.5, Y: 3.5}))
	assert.ErrorIs(t, err, domain.ErrRejected)

	// Robber throws at the bystander's cell
	res, err := Registry()[domain.ActionFlashbang](f.ctx(robber, systems.NewLoadout(robber.Allegiance), 0),
		command(t, robber, domain.ActionFlashbang, api.PositionPayload{X: 4.5, Y: 3.5}))
	require.NoError(t, err)
	require.NotNil(t, res.Strike)
	assert.Equal(t, []domain.EntityID{bystander.ID}, res.Strike.Kills)
	assert.Equal(t, robber.MaxHealth, robber.Health, "thrower is not hurt by its own flashbang")
}

func TestHandleShieldBash(t *testing.T) {
	f := newFixture(t)
	cop := f.spawn(t, 1, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))
	robber := f.spawn(t, 2, domain.KindPlayer, domain.AllegianceRobber, geom.V(2.5, 3.4))

	res, err := Registry()[domain.ActionShieldBash](f.ctx(cop, systems.NewLoadout(cop.Allegiance), 0),
		command(t, cop, domain.ActionShieldBash, api.AimPayload{}))
	require.NoError(t, err)

	require.NotNil(t, res.Strike)
	assert.Equal(t, []domain.EntityID{robber.ID}, res.Strike.Hits)
	assert.Equal(t, robber.MaxHealth-systems.ShieldBashDamage, robber.Health)
}

func TestHandleWait(t *testing.T) {
	f := newFixture(t)
	cop := f.spawn(t, 1, domain.KindPlayer, domain.AllegianceCop, geom.V(2.5, 2.5))

	res, err := Registry()[domain.ActionWait](f.ctx(cop, nil, 0), domain.Command{Actor: cop.ID, Action: domain.ActionWait})
	require.NoError(t, err)
	assert.Equal(t, EmptyResult(), res)
}
