package systems

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// octant - матрица перевода локальных (dx, dy) в координаты сетки
type octant struct{ xx, xy, yx, yy int }

var octants = [8]octant{
	{1, 0, 0, 1}, {0, 1, 1, 0}, {0, -1, 1, 0}, {-1, 0, 0, 1},
	{-1, 0, 0, -1}, {0, -1, -1, 0}, {0, 1, -1, 0}, {1, 0, 0, -1},
}

// VisibleCells возвращает клетки сетки, видимые из клетки точки from в радиусе radius клеток.
// Стены и края сетки отбрасывают тень.
func VisibleCells(g *world.Grid, from geom.Vec2, radius int) mapset.Set[geom.CoordinatePair] {
	visible := mapset.New[geom.CoordinatePair]()
	origin := g.GridCoordinatesFromPosition(from)

	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component": "fov_system",
		"origin":    origin,
		"radius":    radius,
	})

	if radius <= 0 || !g.InBounds(origin.X, origin.Y) {
		fovLogger.Debug("FOV skipped")
		return visible
	}

	// 1. Клетка наблюдателя видна всегда
	visible.Put(origin)

	// 2. Рекурсивный shadowcasting по восьми октантам
	sc := shadowcaster{grid: g, origin: origin, radius: radius, visible: visible}
	for _, o := range octants {
		sc.scan(1, 1.0, 0.0, o)
	}

	fovLogger.WithField("visible", visible.Size()).Debug("FOV computed")
	return visible
}

type shadowcaster struct {
	grid    *world.Grid
	origin  geom.CoordinatePair
	radius  int
	visible mapset.Set[geom.CoordinatePair]
}

func (sc *shadowcaster) scan(row int, start, end float64, o octant) {
	if start < end {
		return
	}
	radiusSq := sc.radius * sc.radius

	for j := row; j <= sc.radius; j++ {
		blocked := false
		nextStart := start
		dy := -j

		for dx := -j; dx <= 0; dx++ {
			leftSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rightSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rightSlope {
				continue
			}
			if end > leftSlope {
				break
			}

			cell := geom.C(sc.origin.X+dx*o.xx+dy*o.xy, sc.origin.Y+dx*o.yx+dy*o.yy)
			if sc.grid.InBounds(cell.X, cell.Y) && dx*dx+dy*dy < radiusSq {
				sc.visible.Put(cell)
			}

			opaque := sc.opaque(cell)
			switch {
			case blocked && opaque:
				nextStart = rightSlope
			case blocked:
				blocked = false
				start = nextStart
			case opaque && j < sc.radius:
				blocked = true
				sc.scan(j+1, start, leftSlope, o)
				nextStart = rightSlope
			}
		}
		if blocked {
			return
		}
	}
}

// opaque - стены и клетки вне сетки закрывают обзор
func (sc *shadowcaster) opaque(c geom.CoordinatePair) bool {
	t, err := sc.grid.GetTileAt(c.X, c.Y)
	if err != nil {
		return true
	}
	return t.Obstacle() == domain.ObstacleWall
}

// CanSee - видит ли наблюдатель клетку сущности
func CanSee(g *world.Grid, observer *domain.Entity, target *domain.Entity, radius int) bool {
	cell := g.GridCoordinatesFromPosition(target.Position)
	return VisibleCells(g, observer.Position, radius).Has(cell)
}
