package systems

import (
	"testing"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadoutCooldown(t *testing.T) {
	l := NewLoadout(domain.AllegianceCop)

	require.True(t, l.Ready(WeaponTazer, 0))
	require.NoError(t, l.Use(WeaponTazer, 0))
	assert.Equal(t, 5, l.Charges(WeaponTazer))

	assert.False(t, l.Ready(WeaponTazer, 19))
	assert.ErrorIs(t, l.Use(WeaponTazer, 19), domain.ErrRejected)
	assert.True(t, l.Ready(WeaponTazer, 20))
}

func TestLoadoutCharges(t *testing.T) {
	l := NewLoadout(domain.AllegianceRobber)

	require.NoError(t, l.Use(WeaponFlashbang, 0))
	require.NoError(t, l.Use(WeaponFlashbang, 100))
	assert.Zero(t, l.Charges(WeaponFlashbang))
	assert.False(t, l.Ready(WeaponFlashbang, 1000))

	// Robbers carry no shield
	assert.False(t, l.Ready(WeaponShieldBash, 0))
}

func TestLoadoutKnifeIsUnlimited(t *testing.T) {
	l := NewLoadout(domain.AllegianceNeutral)
	for tick := uint64(0); tick < 100; tick += 5 {
		require.NoError(t, l.Use(WeaponKnife, tick))
	}
	assert.Equal(t, Unlimited, l.Charges(WeaponKnife))
	assert.False(t, l.Ready(WeaponTazer, 0))
}
