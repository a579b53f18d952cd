package systems

import (
	"fmt"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
)

// WeaponKind - оружие или способность, вызывающая запрос формы
type WeaponKind uint8

const (
	WeaponKnife WeaponKind = iota + 1
	WeaponTazer
	WeaponFlashbang
	WeaponShieldBash
)

func (w WeaponKind) String() string {
	switch w {
	case WeaponKnife:
		return "knife"
	case WeaponTazer:
		return "tazer"
	case WeaponFlashbang:
		return "flashbang"
	case WeaponShieldBash:
		return "shield_bash"
	default:
		return fmt.Sprintf("weapon_%d", uint8(w))
	}
}

// ParseWeapon разбирает имя оружия
func ParseWeapon(s string) (WeaponKind, error) {
	for _, w := range []WeaponKind{WeaponKnife, WeaponTazer, WeaponFlashbang, WeaponShieldBash} {
		if w.String() == s {
			return w, nil
		}
	}
	return 0, domain.Configf("unknown weapon %q", s)
}

// Параметры оружия
const (
	KnifeRange  = 1.0
	KnifeAngle  = 90.0
	KnifeDamage = 10

	TazerSpeed  = 5 * 0.05 // единиц за тик
	TazerRadius = 0.0
	TazerDamage = 10

	FlashbangRange      = 1.5
	FlashbangThrowRange = 4.0
	FlashbangDamage     = 5

	ShieldBashWidth  = 1.2
	ShieldBashHeight = 0.8
	ShieldBashReach  = 0.6
	ShieldBashDamage = 15
)

// Strike - результат применения оружия
type Strike struct {
	Weapon WeaponKind        `json:"weapon" msgpack:"weapon"`
	Actor  domain.EntityID   `json:"actor" msgpack:"actor"`
	Hits   []domain.EntityID `json:"hits" msgpack:"hits"`
	Damage int               `json:"damage" msgpack:"damage"`
	Kills  []domain.EntityID `json:"kills,omitempty" msgpack:"kills,omitempty"`
}

// applyDamage наносит урон целям и заполняет Strike
func applyDamage(weapon WeaponKind, actor domain.EntityID, targets []*domain.Entity, damage int) Strike {
	s := Strike{Weapon: weapon, Actor: actor, Damage: damage}
	for _, t := range targets {
		t.TakeDamage(damage)
		s.Hits = append(s.Hits, t.ID)
		if t.IsDead {
			s.Kills = append(s.Kills, t.ID)
		}
	}

	if len(s.Hits) > 0 {
		logger.Log.WithFields(logrus.Fields{
			"component": "combat_system",
			"weapon":    weapon,
			"actor":     actor,
			"hits":      len(s.Hits),
			"kills":     len(s.Kills),
		}).Info("Strike landed")
	}
	return s
}

// UseKnife бьёт конусом перед собой и ранит только ближайшую цель
func UseKnife(g *world.Grid, actor *domain.Entity) (Strike, error) {
	hits, err := DetermineHits(g, actor.Position, Cone{
		Range:     KnifeRange,
		Angle:     KnifeAngle,
		Direction: actor.Facing,
	})
	if err != nil {
		return Strike{}, fmt.Errorf("knife: %w", err)
	}
	hits = ExcludeEntity(hits, actor)
	if len(hits) > 1 {
		hits = hits[:1]
	}
	return applyDamage(WeaponKnife, actor.ID, hits, KnifeDamage), nil
}

// UseFlashbang бросает гранату в точку target (не дальше FlashbangThrowRange)
func UseFlashbang(g *world.Grid, actor *domain.Entity, target geom.Vec2) (Strike, error) {
	throw := target.Sub(actor.Position)
	if throw.Length() > FlashbangThrowRange {
		throw = throw.Normalized().Scale(FlashbangThrowRange)
	}
	hits, err := DetermineHits(g, actor.Position.Add(throw), Circle{Range: FlashbangRange})
	if err != nil {
		return Strike{}, fmt.Errorf("flashbang: %w", err)
	}
	return applyDamage(WeaponFlashbang, actor.ID, ExcludeEntity(hits, actor), FlashbangDamage), nil
}

// UseShieldBash бьёт прямоугольником перед собой
func UseShieldBash(g *world.Grid, actor *domain.Entity) (Strike, error) {
	facing := actor.Facing
	if facing.IsZero() {
		facing = geom.Up
	}
	center := actor.Position.Add(facing.Normalized().Scale(ShieldBashReach))
	hits, err := DetermineHits(g, center, Rectangle{
		Width:     ShieldBashWidth,
		Height:    ShieldBashHeight,
		Direction: facing,
	})
	if err != nil {
		return Strike{}, fmt.Errorf("shield bash: %w", err)
	}
	return applyDamage(WeaponShieldBash, actor.ID, ExcludeEntity(hits, actor), ShieldBashDamage), nil
}
