package world

import (
	"math"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/Zanice/2D-Game-Framework/pkg/mapfile"
	"github.com/sirupsen/logrus"
)

// Grid - пространственная сетка: владеет клетками, переводит координаты,
// отвечает на запросы выборок и поиска сущностей по радиусу.
type Grid struct {
	width, height int
	corner        geom.Vec2 // мировые координаты левого нижнего угла клетки (0,0)

	tiles     []*domain.Tile // плотный массив [y*width+x]
	mapData   mapfile.Matrix
	hasMap    bool
	presenter Presenter
}

// NewGrid создает пустую сетку. presenter может быть nil.
func NewGrid(presenter Presenter) *Grid {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &Grid{presenter: presenter}
}

// SetParameters меняет логический размер и начало координат. Клетки не создаются.
func (g *Grid) SetParameters(width, height int, cornerX, cornerY float64) {
	g.width = width
	g.height = height
	g.corner = geom.V(cornerX, cornerY)
}

func (g *Grid) Width() int        { return g.width }
func (g *Grid) Height() int       { return g.height }
func (g *Grid) Corner() geom.Vec2 { return g.corner }

// Bounds возвращает мировой прямоугольник сетки
func (g *Grid) Bounds() (lo, hi geom.Vec2) {
	return g.corner, g.corner.Add(geom.V(float64(g.width), float64(g.height)))
}

// CreateGridFromMap запоминает матрицу карты и пересоздаёт все клетки.
// Размер сетки берётся из матрицы, угол сохраняется.
func (g *Grid) CreateGridFromMap(m mapfile.Matrix) error {
	g.mapData = m
	g.hasMap = true
	g.width = m.Width
	g.height = m.Height
	return g.ResetGrid()
}

// ResetGrid освобождает старые клетки и создаёт width×height новых из последней загруженной карты
func (g *Grid) ResetGrid() error {
	gridLogger := logger.Log.WithFields(logrus.Fields{
		"component": "spatial_grid",
		"function":  "ResetGrid",
		"width":     g.width,
		"height":    g.height,
	})

	// 1. Проверяем, что карта есть и совпадает с параметрами
	if !g.hasMap {
		return domain.Configf("no map loaded for %dx%d grid", g.width, g.height)
	}
	if g.mapData.Width != g.width || g.mapData.Height != g.height {
		return domain.OutOfRangef("map is %dx%d but grid is %dx%d",
			g.mapData.Width, g.mapData.Height, g.width, g.height)
	}

	// 2. Декодируем всю карту до того, как трогать старые клетки
	fresh := make([]*domain.Tile, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			typ, el, err := domain.DecodeTileCode(g.mapData.At(x, y))
			if err != nil {
				return domain.Configf("tile (%d,%d): %v", x, y, err).WithMeta("x", x).WithMeta("y", y)
			}
			coord := geom.C(x, y)
			fresh[y*g.width+x] = domain.NewTile(coord, g.PositionFromGridCoordinates(coord), typ, el)
		}
	}

	// 3. Освобождаем старые клетки
	for _, t := range g.tiles {
		g.presenter.TileReleased(t)
	}

	// 4. Публикуем новые
	g.tiles = fresh
	for _, t := range g.tiles {
		g.presenter.TileCreated(t)
	}

	gridLogger.Info("Grid rebuilt")
	return nil
}

// GetTileAt возвращает клетку или ошибку OutOfRange
func (g *Grid) GetTileAt(x, y int) (*domain.Tile, error) {
	if err := g.validate(x, y); err != nil {
		return nil, err
	}
	return g.tiles[y*g.width+x], nil
}

// tileAt без проверки ошибок: nil вне сетки
func (g *Grid) tileAt(x, y int) *domain.Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.tiles[y*g.width+x]
}

// InBounds проверяет, что клетка внутри сетки и клетки созданы
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height && len(g.tiles) == g.width*g.height
}

func (g *Grid) validate(x, y int) error {
	if len(g.tiles) != g.width*g.height {
		return domain.OutOfRangef("grid has no tiles")
	}
	badX := x < 0 || x >= g.width
	badY := y < 0 || y >= g.height
	switch {
	case badX && badY:
		return domain.OutOfRangef("coordinates (%d,%d) outside %dx%d grid", x, y, g.width, g.height)
	case badX:
		return domain.OutOfRangef("x coordinate %d outside [0,%d)", x, g.width)
	case badY:
		return domain.OutOfRangef("y coordinate %d outside [0,%d)", y, g.height)
	}
	return nil
}

// Tiles обходит все клетки построчно снизу вверх
func (g *Grid) Tiles(fn func(t *domain.Tile)) {
	for _, t := range g.tiles {
		fn(t)
	}
}

// GridCoordinatesFromPosition переводит мировую точку в клетку (floor, не усечение)
func (g *Grid) GridCoordinatesFromPosition(pos geom.Vec2) geom.CoordinatePair {
	return geom.C(
		int(math.Floor(pos.X-g.corner.X)),
		int(math.Floor(pos.Y-g.corner.Y)),
	)
}

// PositionFromGridCoordinates возвращает мировой центр клетки
func (g *Grid) PositionFromGridCoordinates(c geom.CoordinatePair) geom.Vec2 {
	return geom.V(
		g.corner.X+float64(c.X)+0.5,
		g.corner.Y+float64(c.Y)+0.5,
	)
}

// ContainsPosition проверяет, что мировая точка внутри сетки
func (g *Grid) ContainsPosition(pos geom.Vec2) bool {
	lo, hi := g.Bounds()
	return pos.X >= lo.X && pos.X <= hi.X && pos.Y >= lo.Y && pos.Y <= hi.Y
}
