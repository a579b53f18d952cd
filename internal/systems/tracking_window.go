package systems

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/Zanice/2D-Game-Framework/pkg/matrix"
	"github.com/sirupsen/logrus"
)

// window - буфер отслеживания одной сущности: side×side клеток вокруг центра.
// Слоты вне сетки хранятся как nil.
type window struct {
	origin geom.CoordinatePair // клетка сетки для слота (0,0)
	tiles  *matrix.Sliding[*domain.Tile]
}

// Tracker ведет индекс отслеживания, как RefreshTracking, но хранит буфер
// каждой сущности в скользящей матрице. Шаг на соседнюю клетку сдвигает
// буфер на одну строку/колонку вместо полной выборки.
// Итоговое членство в клетках совпадает с RefreshTracking.
type Tracker struct {
	windows map[domain.EntityID]*window
	slides  int
	builds  int
	log     *logrus.Entry
}

func NewTracker() *Tracker {
	return &Tracker{
		windows: make(map[domain.EntityID]*window),
		log:     logger.For("tracking_system"),
	}
}

// Refresh обновляет индекс сущности, если её клетка сменилась
func (t *Tracker) Refresh(g *world.Grid, e *domain.Entity) bool {
	if e.IsDead {
		return false
	}
	cell := g.GridCoordinatesFromPosition(e.Position)
	if upToDate(g, e, cell) {
		return false
	}

	// 1. Полный проход по сетке, как в RefreshTracking
	g.Tiles(func(tile *domain.Tile) {
		tile.RemoveEntity(e)
	})

	// 2. Буфер: сдвиг или новая выборка
	offset := TrackingOffset(e.Radius)
	side := TrackingSide(e.Radius)
	origin := cell.Shift(-offset, -offset)

	w := t.windows[e.ID]
	if !t.slide(g, e, w, origin, side) {
		w = buildWindow(g, origin, side)
		t.windows[e.ID] = w
		t.builds++
	}

	// 3. Регистрация во всех существующих клетках буфера
	var tiles []*domain.Tile
	for _, row := range w.tiles.Resolve() {
		for _, tile := range row {
			if tile != nil {
				tile.AddEntity(e)
				tiles = append(tiles, tile)
			}
		}
	}
	e.Retrack(cell, tiles)

	t.log.WithFields(logrus.Fields{
		"entity": e.ID,
		"cell":   cell,
		"tiles":  len(tiles),
	}).Debug("Tracking refreshed")
	return true
}

// RefreshAll обновляет все сущности и возвращает число пересчётов
func (t *Tracker) RefreshAll(g *world.Grid, entities []*domain.Entity) int {
	refreshed := 0
	for _, e := range entities {
		if t.Refresh(g, e) {
			refreshed++
		}
	}
	return refreshed
}

// Forget снимает сущность с клеток и забывает её буфер
func (t *Tracker) Forget(e *domain.Entity) {
	Untrack(e)
	delete(t.windows, e.ID)
}

// Stats - сколько раз буфер сдвигался и сколько раз строился заново
func (t *Tracker) Stats() (slides, builds int) {
	return t.slides, t.builds
}

// slide сдвигает буфер w к новому origin, если это шаг не больше чем на клетку
// по каждой оси и буфер построен на текущих клетках сетки
func (t *Tracker) slide(g *world.Grid, e *domain.Entity, w *window, origin geom.CoordinatePair, side int) bool {
	if w == nil || w.tiles.Rows() != side {
		return false
	}
	dx, dy := origin.X-w.origin.X, origin.Y-w.origin.Y
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return false
	}

	// После ResetGrid центр буфера указывает на старую клетку
	if last, ok := e.LastCell(); ok {
		center, _ := w.tiles.At(last.Y-w.origin.Y, last.X-w.origin.X)
		if g.InBounds(last.X, last.Y) {
			if current, err := g.GetTileAt(last.X, last.Y); err != nil || current != center {
				return false
			}
		}
	}

	// 1. Колонка по X (строки пока по старому origin)
	if dx != 0 {
		x := origin.X
		if dx > 0 {
			x = origin.X + side - 1
		}
		col := columnTiles(g, x, w.origin.Y, side)
		var err error
		if dx > 0 {
			err = w.tiles.InsertColumnRight(col)
		} else {
			err = w.tiles.InsertColumnLeft(col)
		}
		if err != nil {
			return false
		}
	}

	// 2. Строка по Y (колонки уже по новому origin)
	if dy != 0 {
		y := origin.Y
		if dy > 0 {
			y = origin.Y + side - 1
		}
		row := rowTiles(g, origin.X, y, side)
		var err error
		if dy > 0 {
			err = w.tiles.InsertRowBelow(row)
		} else {
			err = w.tiles.InsertRowAbove(row)
		}
		if err != nil {
			return false
		}
	}

	w.origin = origin
	t.slides++
	return true
}

func buildWindow(g *world.Grid, origin geom.CoordinatePair, side int) *window {
	sample := g.GetUnboundedSample(origin.X, origin.Y, side, side)
	rows := make([][]*domain.Tile, side)
	for j := range rows {
		rows[j] = make([]*domain.Tile, side)
		for i := range rows[j] {
			rows[j][i], _ = sample.At(i, j)
		}
	}
	// side >= 3 и строки прямоугольные, ошибки быть не может
	m, _ := matrix.FromRows(rows)
	return &window{origin: origin, tiles: m}
}

func columnTiles(g *world.Grid, x, y, side int) []*domain.Tile {
	sample := g.GetUnboundedSample(x, y, 1, side)
	col := make([]*domain.Tile, side)
	for j := range col {
		col[j], _ = sample.At(0, j)
	}
	return col
}

func rowTiles(g *world.Grid, x, y, side int) []*domain.Tile {
	sample := g.GetUnboundedSample(x, y, side, 1)
	row := make([]*domain.Tile, side)
	for i := range row {
		row[i], _ = sample.At(i, 0)
	}
	return row
}
