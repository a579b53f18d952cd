package systems

import (
	"testing"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseKnifeHitsClosestOnly(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	actor := spawn(t, g, 1, domain.AllegianceCop, geom.V(5.5, 5.5), 0.35)
	near := spawn(t, g, 2, domain.AllegianceRobber, geom.V(5.5, 6.3), 0.35)
	far := spawn(t, g, 3, domain.AllegianceRobber, geom.V(5.5, 6.8), 0.35)

	strike, err := UseKnife(g, actor)
	require.NoError(t, err)

	assert.Equal(t, []domain.EntityID{near.ID}, strike.Hits)
	assert.Equal(t, 100-KnifeDamage, near.Health)
	assert.Equal(t, 100, far.Health)
	assert.Equal(t, 100, actor.Health)
}

func TestUseKnifeKills(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	actor := spawn(t, g, 1, domain.AllegianceCop, geom.V(5.5, 5.5), 0.35)
	victim := spawn(t, g, 2, domain.AllegianceRobber, geom.V(5.5, 6.3), 0.35)
	victim.Health = KnifeDamage

	strike, err := UseKnife(g, actor)
	require.NoError(t, err)

	assert.Equal(t, []domain.EntityID{victim.ID}, strike.Kills)
	assert.True(t, victim.IsDead)
	assert.Zero(t, victim.TileCount())
}

func TestUseKnifeMissesBehind(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	actor := spawn(t, g, 1, domain.AllegianceCop, geom.V(5.5, 5.5), 0.35)
	spawn(t, g, 2, domain.AllegianceRobber, geom.V(5.5, 4.7), 0.35)

	strike, err := UseKnife(g, actor)
	require.NoError(t, err)
	assert.Empty(t, strike.Hits)
}

func TestUseFlashbang(t *testing.T) {
	g := newTestGrid(t, 16, 12)
	actor := spawn(t, g, 1, domain.AllegianceRobber, geom.V(5.5, 5.5), 0.35)
	target := spawn(t, g, 2, domain.AllegianceCop, geom.V(9.5, 5.5), 0.35)

	// Aim beyond the throw range, the grenade lands at the limit
	strike, err := UseFlashbang(g, actor, geom.V(15.5, 5.5))
	require.NoError(t, err)

	assert.Equal(t, []domain.EntityID{target.ID}, strike.Hits)
	assert.Equal(t, 100-FlashbangDamage, target.Health)
	assert.Equal(t, 100, actor.Health)
}

func TestUseShieldBash(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	actor := spawn(t, g, 1, domain.AllegianceCop, geom.V(5.5, 5.5), 0.35)
	actor.Facing = geom.V(1, 0)
	target := spawn(t, g, 2, domain.AllegianceRobber, geom.V(6.5, 5.5), 0.35)
	spawn(t, g, 3, domain.AllegianceRobber, geom.V(5.5, 7.0), 0.35)

	strike, err := UseShieldBash(g, actor)
	require.NoError(t, err)

	assert.Equal(t, []domain.EntityID{target.ID}, strike.Hits)
	assert.Equal(t, 100-ShieldBashDamage, target.Health)
}

func TestParseWeapon(t *testing.T) {
	for _, w := range []WeaponKind{WeaponKnife, WeaponTazer, WeaponFlashbang, WeaponShieldBash} {
		got, err := ParseWeapon(w.String())
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
	_, err := ParseWeapon("bazooka")
	assert.ErrorIs(t, err, domain.ErrConfig)
}
