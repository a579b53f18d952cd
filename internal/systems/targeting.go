package systems

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/world"
)

// EntityProvider - поиск сущностей по ID (чтобы не зависеть от движка напрямую)
type EntityProvider interface {
	GetEntity(id domain.EntityID) *domain.Entity
}

// ValidationResult - результат проверки цели
type ValidationResult struct {
	Target  *domain.Entity
	Valid   bool
	Message string
}

// ValidateTarget проверяет, может ли actor действовать по targetID.
// rangeLimit считается от центра до края цели, needLOS требует прямой видимости.
func ValidateTarget(g *world.Grid, actor *domain.Entity, targetID domain.EntityID, rangeLimit float64, needLOS bool, finder EntityProvider) ValidationResult {
	// 1. Поиск цели
	target := finder.GetEntity(targetID)
	if target == nil || target.IsDead {
		return ValidationResult{Message: "target not found"}
	}
	if target == actor {
		return ValidationResult{Message: "cannot target self"}
	}

	// 2. Дистанция
	dist := actor.Position.DistanceTo(target.Position)
	if dist > rangeLimit+target.Radius {
		return ValidationResult{Message: "target out of range"}
	}

	// 3. Прямая видимость
	if needLOS && !HasLineOfSight(g, actor.Position, target.Position) {
		return ValidationResult{Message: "target not visible"}
	}

	return ValidationResult{Target: target, Valid: true}
}

// NearestHostile - ближайшая живая не союзная сущность в радиусе
func NearestHostile(g *world.Grid, actor *domain.Entity, radius float64) *domain.Entity {
	target, _ := g.NearestInArea(actor.Position, radius, func(e *domain.Entity) bool {
		return e != actor && !e.IsDead && !actor.IsAlliedWith(e)
	})
	return target
}
