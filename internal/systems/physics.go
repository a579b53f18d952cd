package systems

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
)

// HitsWall проверяет, что мировая точка внутри клетки-стены
func HitsWall(g *world.Grid, pos geom.Vec2) bool {
	c := g.GridCoordinatesFromPosition(pos)
	t, err := g.GetTileAt(c.X, c.Y)
	if err != nil {
		return false
	}
	return t.Obstacle() == domain.ObstacleWall
}

// HasLineOfSight проверяет прямую видимость между клетками двух точек.
// Алгоритм Брезенхэма, стены блокируют, начальная и конечная клетки не проверяются.
func HasLineOfSight(g *world.Grid, from, to geom.Vec2) bool {
	p1 := g.GridCoordinatesFromPosition(from)
	p2 := g.GridCoordinatesFromPosition(to)

	losLogger := logger.Log.WithFields(logrus.Fields{
		"component": "physics_system",
		"function":  "HasLineOfSight",
		"start":     p1,
		"end":       p2,
	})

	if p1 == p2 {
		return true
	}

	x0, y0 := p1.X, p1.Y
	dx := abs(p2.X - x0)
	dy := abs(p2.Y - y0)
	sx, sy := sign(p2.X-x0), sign(p2.Y-y0)
	err := dx - dy

	for {
		cur := geom.C(x0, y0)
		if cur != p1 && cur != p2 {
			// 1. Границы карты
			t, tileErr := g.GetTileAt(x0, y0)
			if tileErr != nil {
				losLogger.WithField("blocking", cur).Debug("Line is blocked by map bounds")
				return false
			}
			// 2. Стена
			if t.Obstacle() == domain.ObstacleWall {
				losLogger.WithField("blocking", cur).Debug("Line is blocked by wall")
				return false
			}
		}

		if cur == p2 {
			break
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
