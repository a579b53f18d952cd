package systems

import (
	"testing"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTazerStoppedByWall(t *testing.T) {
	g := newTestGrid(t, 10, 5, geom.C(5, 2))
	actor := spawn(t, g, 1, domain.AllegianceCop, geom.V(1.5, 2.5), 0.35)

	p, err := FireTazer(1, actor, geom.V(1, 0))
	require.NoError(t, err)

	for i := 0; i < 100 && !p.Destroyed; i++ {
		_, hit := p.Advance(g)
		assert.False(t, hit)
	}
	assert.True(t, p.Destroyed)
	assert.Equal(t, 5, g.GridCoordinatesFromPosition(p.Position).X)
}

func TestTazerHitsTarget(t *testing.T) {
	g := newTestGrid(t, 10, 5)
	actor := spawn(t, g, 1, domain.AllegianceCop, geom.V(1.5, 2.5), 0.35)
	target := spawn(t, g, 2, domain.AllegianceRobber, geom.V(4.5, 2.5), 0.35)

	p, err := FireTazer(7, actor, geom.V(3, 0))
	require.NoError(t, err)
	assert.InDelta(t, TazerSpeed, p.Velocity.Length(), delta)

	var strike Strike
	for i := 0; i < 100 && !p.Destroyed; i++ {
		if s, hit := p.Advance(g); hit {
			strike = s
		}
	}
	assert.True(t, p.Destroyed)
	assert.Equal(t, []domain.EntityID{target.ID}, strike.Hits)
	assert.Equal(t, actor.ID, strike.Actor)
	assert.Equal(t, 100-TazerDamage, target.Health)
	assert.Equal(t, 100, actor.Health)
}

func TestTazerLeavesGrid(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	actor := spawn(t, g, 1, domain.AllegianceCop, geom.V(0.5, 2.5), 0.35)

	p, err := FireTazer(1, actor, geom.V(-1, 0))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		p.Advance(g)
	}
	assert.True(t, p.Destroyed)

	// Destroyed projectiles stay put
	pos := p.Position
	_, hit := p.Advance(g)
	assert.False(t, hit)
	assert.Equal(t, pos, p.Position)
}

func TestFireTazerRejectsZeroDirection(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	actor := spawn(t, g, 1, domain.AllegianceCop, geom.V(2.5, 2.5), 0.35)

	_, err := FireTazer(1, actor, geom.Vec2{})
	assert.ErrorIs(t, err, domain.ErrDegenerateInput)
}
