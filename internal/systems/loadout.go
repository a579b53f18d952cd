package systems

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
)

// Unlimited - заряды оружия не расходуются
const Unlimited = -1

// Задержки между применениями (в тиках)
var weaponCooldowns = map[WeaponKind]uint64{
	WeaponKnife:      5,
	WeaponTazer:      20,
	WeaponFlashbang:  30,
	WeaponShieldBash: 10,
}

// Loadout - снаряжение сущности: заряды и момент последнего применения
type Loadout struct {
	charges  map[WeaponKind]int
	lastUsed map[WeaponKind]uint64
	used     map[WeaponKind]bool
}

// NewLoadout выдает стандартный набор по стороне конфликта
func NewLoadout(a domain.Allegiance) *Loadout {
	l := &Loadout{
		charges:  map[WeaponKind]int{WeaponKnife: Unlimited},
		lastUsed: make(map[WeaponKind]uint64),
		used:     make(map[WeaponKind]bool),
	}
	switch a {
	case domain.AllegianceCop:
		l.charges[WeaponTazer] = 6
		l.charges[WeaponShieldBash] = Unlimited
	case domain.AllegianceRobber:
		l.charges[WeaponTazer] = 3
		l.charges[WeaponFlashbang] = 2
	}
	return l
}

// Charges - оставшиеся заряды (0, если оружия нет)
func (l *Loadout) Charges(w WeaponKind) int {
	return l.charges[w]
}

// Ready - можно ли применить оружие на тике tick
func (l *Loadout) Ready(w WeaponKind, tick uint64) bool {
	c, ok := l.charges[w]
	if !ok || c == 0 {
		return false
	}
	if l.used[w] && tick < l.lastUsed[w]+weaponCooldowns[w] {
		return false
	}
	return true
}

// Use расходует заряд. Ошибка, если оружие не готово.
func (l *Loadout) Use(w WeaponKind, tick uint64) error {
	if !l.Ready(w, tick) {
		return domain.Rejectedf("weapon %s not ready at tick %d", w, tick)
	}
	if l.charges[w] != Unlimited {
		l.charges[w]--
	}
	l.lastUsed[w] = tick
	l.used[w] = true
	return nil
}
