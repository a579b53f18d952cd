package world

import (
	"math"
	"sort"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/zyedidia/generic/mapset"
)

// EntitiesInArea возвращает сущности из клеток квадрата [point-rng, point+rng],
// у которых distance(point, center) <= radius + rng, по возрастанию расстояния.
func (g *Grid) EntitiesInArea(point geom.Vec2, rng float64) []*domain.Entity {
	if rng < 0 || len(g.tiles) == 0 {
		return nil
	}

	// 1. Квадрат клеток, покрывающий область, обрезанный по границам сетки
	lo := g.GridCoordinatesFromPosition(geom.V(point.X-rng, point.Y-rng))
	hi := g.GridCoordinatesFromPosition(geom.V(point.X+rng, point.Y+rng))
	lo.X, lo.Y = max(lo.X, 0), max(lo.Y, 0)
	hi.X, hi.Y = min(hi.X, g.width-1), min(hi.Y, g.height-1)
	if lo.X > hi.X || lo.Y > hi.Y {
		return nil
	}

	// 2. Объединение без дубликатов + фильтр по расстоянию
	type hit struct {
		e    *domain.Entity
		dist float64
	}
	seen := mapset.New[*domain.Entity]()
	var hits []hit
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			g.tiles[y*g.width+x].EachEntity(func(e *domain.Entity) {
				if seen.Has(e) {
					return
				}
				seen.Put(e)
				d := point.DistanceTo(e.Position)
				if d <= e.Radius+rng {
					hits = append(hits, hit{e: e, dist: d})
				}
			})
		}
	}

	// 3. По возрастанию расстояния, при равенстве - по ID
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].e.ID < hits[j].e.ID
	})

	out := make([]*domain.Entity, len(hits))
	for i, h := range hits {
		out[i] = h.e
	}
	return out
}

// NearestInArea - ближайшая к точке сущность, удовлетворяющая фильтру
func (g *Grid) NearestInArea(point geom.Vec2, rng float64, keep func(e *domain.Entity) bool) (*domain.Entity, float64) {
	for _, e := range g.EntitiesInArea(point, rng) {
		if keep == nil || keep(e) {
			return e, point.DistanceTo(e.Position)
		}
	}
	return nil, math.Inf(1)
}
