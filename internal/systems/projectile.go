package systems

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Projectile - снаряд с дискретной проверкой попадания на каждом тике
type Projectile struct {
	ID        uint64          `json:"id" msgpack:"id"`
	Weapon    WeaponKind      `json:"weapon" msgpack:"weapon"`
	Owner     domain.EntityID `json:"owner" msgpack:"owner"`
	Position  geom.Vec2       `json:"position" msgpack:"position"`
	Velocity  geom.Vec2       `json:"velocity" msgpack:"velocity"`
	Radius    float64         `json:"radius" msgpack:"radius"`
	Damage    int             `json:"damage" msgpack:"damage"`
	Destroyed bool            `json:"destroyed" msgpack:"destroyed"`

	owner *domain.Entity
}

// FireTazer выпускает заряд тазера из позиции сущности в направлении dir
func FireTazer(id uint64, actor *domain.Entity, dir geom.Vec2) (*Projectile, error) {
	if dir.IsZero() {
		return nil, domain.DegenerateInputf("tazer direction must be non-zero")
	}
	return &Projectile{
		ID:       id,
		Weapon:   WeaponTazer,
		Owner:    actor.ID,
		Position: actor.Position,
		Velocity: dir.Normalized().Scale(TazerSpeed),
		Radius:   TazerRadius,
		Damage:   TazerDamage,
		owner:    actor,
	}, nil
}

// Advance сдвигает снаряд на один тик и проверяет попадания.
// Возвращает Strike и true, если кто-то был поражён.
func (p *Projectile) Advance(g *world.Grid) (Strike, bool) {
	if p.Destroyed {
		return Strike{}, false
	}

	projLogger := logger.Log.WithFields(logrus.Fields{
		"component":  "projectile_system",
		"projectile": p.ID,
		"owner":      p.Owner,
	})

	// 1. Полёт
	p.Position = p.Position.Add(p.Velocity)

	// 2. Вылет за пределы или стена
	if !g.ContainsPosition(p.Position) || HitsWall(g, p.Position) {
		p.Destroyed = true
		projLogger.WithField("position", p.Position).Debug("Projectile stopped by bounds or wall")
		return Strike{}, false
	}

	// 3. Попадания (без владельца)
	hits := excludeOwner(g.EntitiesInArea(p.Position, p.Radius), p)
	if len(hits) == 0 {
		return Strike{}, false
	}

	p.Destroyed = true
	return applyDamage(p.Weapon, p.Owner, hits, p.Damage), true
}

func excludeOwner(hits []*domain.Entity, p *Projectile) []*domain.Entity {
	if p.owner != nil {
		return ExcludeEntity(hits, p.owner)
	}
	out := hits[:0:0]
	for _, h := range hits {
		if h.ID != p.Owner {
			out = append(out, h)
		}
	}
	return out
}
