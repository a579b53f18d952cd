package systems

import (
	"testing"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/stretchr/testify/assert"
)

func TestVisibleCells(t *testing.T) {
	g := newTestGrid(t, 10, 10, geom.C(5, 4))
	visible := VisibleCells(g, geom.V(5.5, 2.5), 6)

	assert.True(t, visible.Has(geom.C(5, 2)), "observer cell")
	assert.True(t, visible.Has(geom.C(5, 3)))
	assert.True(t, visible.Has(geom.C(5, 4)), "the wall itself is visible")
	assert.True(t, visible.Has(geom.C(2, 2)))
	assert.False(t, visible.Has(geom.C(5, 5)), "shadow behind the wall")
	assert.False(t, visible.Has(geom.C(5, 6)), "shadow behind the wall")
}

func TestVisibleCellsRadius(t *testing.T) {
	g := newTestGrid(t, 20, 20)

	assert.Zero(t, VisibleCells(g, geom.V(5.5, 5.5), 0).Size(), "blind observer")
	assert.Zero(t, VisibleCells(g, geom.V(-5, -5), 5).Size(), "observer outside the grid")

	visible := VisibleCells(g, geom.V(10.5, 10.5), 3)
	assert.True(t, visible.Has(geom.C(12, 10)))
	assert.False(t, visible.Has(geom.C(14, 10)))
}

func TestCanSee(t *testing.T) {
	g := newTestGrid(t, 10, 10, geom.C(5, 4))
	observer := spawn(t, g, 1, domain.AllegianceCop, geom.V(5.5, 2.5), 0.35)
	hidden := spawn(t, g, 2, domain.AllegianceRobber, geom.V(5.5, 6.5), 0.35)
	open := spawn(t, g, 3, domain.AllegianceRobber, geom.V(2.5, 2.5), 0.35)

	assert.False(t, CanSee(g, observer, hidden, 8))
	assert.True(t, CanSee(g, observer, open, 8))
}
