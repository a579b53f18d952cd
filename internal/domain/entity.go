package domain

import (
	"sort"

	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/zyedidia/generic/mapset"
)

// Entity - подвижный круглый актор на сетке
type Entity struct {
	ID         EntityID   `json:"id"`
	Kind       EntityKind `json:"kind"`
	Allegiance Allegiance `json:"allegiance"`

	Position geom.Vec2 `json:"position"`
	Facing   geom.Vec2 `json:"facing"`
	Radius   float64   `json:"radius"`
	Speed    float64   `json:"speed"`

	Health    int  `json:"health"`
	MaxHealth int  `json:"max_health"`
	IsDead    bool `json:"is_dead"`

	// Индекс отслеживания: последняя клетка и клетки, в которых сущность числится
	lastCell geom.CoordinatePair
	tracked  bool
	tiles    *mapset.Set[*Tile]
}

// NewEntity создает сущность по пресету типа
func NewEntity(id EntityID, kind EntityKind, allegiance Allegiance, pos geom.Vec2) (*Entity, error) {
	p, ok := PresetFor(kind)
	if !ok {
		return nil, Configf("no preset for entity kind %s", kind)
	}
	return &Entity{
		ID:         id,
		Kind:       kind,
		Allegiance: allegiance,
		Position:   pos,
		Facing:     geom.Up,
		Radius:     p.Radius,
		Speed:      p.Speed,
		Health:     p.MaxHealth,
		MaxHealth:  p.MaxHealth,
	}, nil
}

// IsAlliedWith - союзники только внутри одной стороны
func (e *Entity) IsAlliedWith(other *Entity) bool {
	return e.Allegiance.IsAlliedWith(other.Allegiance)
}

// TakeDamage уменьшает здоровье. Ноль здоровья убивает сущность.
func (e *Entity) TakeDamage(amount int) {
	if e.IsDead || amount <= 0 {
		return
	}
	e.setHealth(e.Health - amount)
}

// Heal восстанавливает здоровье не выше максимума
func (e *Entity) Heal(amount int) {
	if e.IsDead || amount <= 0 {
		return
	}
	e.setHealth(e.Health + amount)
}

func (e *Entity) setHealth(v int) {
	if v < 0 {
		v = 0
	}
	if v > e.MaxHealth {
		v = e.MaxHealth
	}
	e.Health = v
	if e.Health == 0 {
		e.Kill()
	}
}

// Kill помечает сущность мёртвой и снимает её со всех клеток индекса
func (e *Entity) Kill() {
	if e.IsDead {
		return
	}
	e.Health = 0
	e.IsDead = true
	e.Untrack()
}

// --- Индекс отслеживания ---

// LastCell возвращает последнюю клетку отслеживания. ok=false до первого обновления.
func (e *Entity) LastCell() (geom.CoordinatePair, bool) {
	return e.lastCell, e.tracked
}

// Retrack записывает новую клетку и набор клеток индекса
func (e *Entity) Retrack(cell geom.CoordinatePair, tiles []*Tile) {
	e.ensureTiles()
	e.tiles.Clear()
	for _, t := range tiles {
		e.tiles.Put(t)
	}
	e.lastCell = cell
	e.tracked = true
}

// Untrack снимает сущность со всех клеток, где она числится
func (e *Entity) Untrack() {
	e.ensureTiles()
	e.tiles.Each(func(t *Tile) {
		t.RemoveEntity(e)
	})
	e.tiles.Clear()
	e.tracked = false
}

// Tiles возвращает клетки индекса, упорядоченные по координатам
func (e *Entity) Tiles() []*Tile {
	e.ensureTiles()
	out := make([]*Tile, 0, e.tiles.Size())
	e.tiles.Each(func(t *Tile) {
		out = append(out, t)
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Coord(), out[j].Coord()
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}

// TileCount - количество клеток индекса
func (e *Entity) TileCount() int {
	e.ensureTiles()
	return e.tiles.Size()
}

func (e *Entity) ensureTiles() {
	if e.tiles == nil {
		s := mapset.New[*Tile]()
		e.tiles = &s
	}
}
