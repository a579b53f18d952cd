package systems

import (
	"math"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
)

// TrackingOffset - расстояние в клетках от центральной клетки до края буфера
func TrackingOffset(radius float64) int {
	return int(math.Floor(radius)) + 1
}

// TrackingSide - сторона квадратного буфера отслеживания
func TrackingSide(radius float64) int {
	return 2*TrackingOffset(radius) + 1
}

// RefreshTracking обновляет клетки индекса для сущности, если её клетка сменилась.
// Возвращает true, если индекс пересчитан.
//
// Пересчёт намеренно простой: сущность удаляется из всех клеток сетки,
// затем добавляется во все существующие клетки нового буфера.
func RefreshTracking(g *world.Grid, e *domain.Entity) bool {
	if e.IsDead {
		return false
	}

	cell := g.GridCoordinatesFromPosition(e.Position)
	if upToDate(g, e, cell) {
		return false
	}

	// 1. Полный проход по сетке
	g.Tiles(func(t *domain.Tile) {
		t.RemoveEntity(e)
	})

	// 2. Новый буфер вокруг текущей клетки, слоты вне сетки пропускаются
	offset := TrackingOffset(e.Radius)
	side := TrackingSide(e.Radius)
	sample := g.GetUnboundedSample(cell.X-offset, cell.Y-offset, side, side)
	tiles := sample.Present()
	for _, t := range tiles {
		t.AddEntity(e)
	}
	e.Retrack(cell, tiles)

	logger.Log.WithFields(logrus.Fields{
		"component": "tracking_system",
		"entity":    e.ID,
		"cell":      cell,
		"tiles":     len(tiles),
	}).Debug("Tracking refreshed")
	return true
}

// upToDate - клетка не сменилась и индекс построен на текущих клетках сетки.
// После ResetGrid клетки новые и пустые, поэтому сущность в своей клетке не найдется.
func upToDate(g *world.Grid, e *domain.Entity, cell geom.CoordinatePair) bool {
	last, ok := e.LastCell()
	if !ok || last != cell {
		return false
	}
	if !g.InBounds(cell.X, cell.Y) {
		return true
	}
	tile, err := g.GetTileAt(cell.X, cell.Y)
	return err == nil && tile.HasEntity(e)
}

// RefreshAll обновляет индекс для всех сущностей и возвращает число пересчётов
func RefreshAll(g *world.Grid, entities []*domain.Entity) int {
	refreshed := 0
	for _, e := range entities {
		if RefreshTracking(g, e) {
			refreshed++
		}
	}
	return refreshed
}

// Untrack снимает сущность со всех клеток, где она числится (смерть, удаление)
func Untrack(e *domain.Entity) {
	e.Untrack()
}

// TrackedCells - координаты клеток, в которых числится сущность
func TrackedCells(e *domain.Entity) []geom.CoordinatePair {
	tiles := e.Tiles()
	out := make([]geom.CoordinatePair, len(tiles))
	for i, t := range tiles {
		out[i] = t.Coord()
	}
	return out
}
