package systems

import (
	"testing"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingBufferSize(t *testing.T) {
	assert.Equal(t, 1, TrackingOffset(0))
	assert.Equal(t, 3, TrackingSide(0.35))
	assert.Equal(t, 3, TrackingSide(0.99))
	assert.Equal(t, 5, TrackingSide(1.0))
	assert.Equal(t, 7, TrackingSide(2.5))
}

func TestRefreshTrackingRegistersBuffer(t *testing.T) {
	g := newTestGrid(t, 6, 6)
	e := spawn(t, g, 1, domain.AllegianceCop, geom.V(2.5, 2.5), 0.35)

	want := []geom.CoordinatePair{
		geom.C(1, 1), geom.C(2, 1), geom.C(3, 1),
		geom.C(1, 2), geom.C(2, 2), geom.C(3, 2),
		geom.C(1, 3), geom.C(2, 3), geom.C(3, 3),
	}
	assert.Equal(t, want, TrackedCells(e))

	// Membership in tiles matches the entity's own view
	count := 0
	g.Tiles(func(tile *domain.Tile) {
		if tile.HasEntity(e) {
			count++
		}
	})
	assert.Equal(t, 9, count)
}

func TestRefreshTrackingClipsAtGridEdge(t *testing.T) {
	g := newTestGrid(t, 6, 6)
	e := spawn(t, g, 1, domain.AllegianceCop, geom.V(0.5, 0.5), 0.35)

	assert.Equal(t, []geom.CoordinatePair{
		geom.C(0, 0), geom.C(1, 0),
		geom.C(0, 1), geom.C(1, 1),
	}, TrackedCells(e))
}

func TestRefreshTrackingLargeRadius(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	e := spawn(t, g, 1, domain.AllegianceCop, geom.V(5.5, 5.5), 1.2)
	assert.Equal(t, 25, e.TileCount())
}

func TestRefreshTrackingSkipsSameCell(t *testing.T) {
	g := newTestGrid(t, 6, 6)
	e := spawn(t, g, 1, domain.AllegianceCop, geom.V(2.5, 2.5), 0.35)

	e.Position = geom.V(2.9, 2.1)
	assert.False(t, RefreshTracking(g, e))
	assert.Equal(t, 9, e.TileCount())
}

func TestRefreshTrackingMovesBuffer(t *testing.T) {
	g := newTestGrid(t, 6, 6)
	e := spawn(t, g, 1, domain.AllegianceCop, geom.V(2.5, 2.5), 0.35)

	e.Position = geom.V(3.5, 2.5)
	require.True(t, RefreshTracking(g, e))

	old, err := g.GetTileAt(1, 1)
	require.NoError(t, err)
	assert.False(t, old.HasEntity(e))

	fresh, err := g.GetTileAt(4, 3)
	require.NoError(t, err)
	assert.True(t, fresh.HasEntity(e))
	assert.Equal(t, 9, e.TileCount())

	cell, ok := e.LastCell()
	assert.True(t, ok)
	assert.Equal(t, geom.C(3, 2), cell)
}

func TestDeathRemovesFromIndex(t *testing.T) {
	g := newTestGrid(t, 6, 6)
	e := spawn(t, g, 1, domain.AllegianceCop, geom.V(2.5, 2.5), 0.35)

	e.TakeDamage(e.MaxHealth)
	require.True(t, e.IsDead)
	assert.Equal(t, 0, e.TileCount())
	g.Tiles(func(tile *domain.Tile) {
		assert.False(t, tile.HasEntity(e))
	})

	// Dead entities are never re-registered
	e.Position = geom.V(4.5, 4.5)
	assert.False(t, RefreshTracking(g, e))
	assert.Empty(t, g.EntitiesInArea(geom.V(4.5, 4.5), 2))
}

func TestRefreshAll(t *testing.T) {
	g := newTestGrid(t, 6, 6)
	a := spawn(t, g, 1, domain.AllegianceCop, geom.V(1.5, 1.5), 0.35)
	b := spawn(t, g, 2, domain.AllegianceRobber, geom.V(4.5, 4.5), 0.35)

	a.Position = geom.V(2.5, 1.5)
	assert.Equal(t, 1, RefreshAll(g, []*domain.Entity{a, b}))
}
