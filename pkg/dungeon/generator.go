// Package dungeon генерирует карты "комнаты и коридоры" в формате матрицы кодов клеток.
package dungeon

import (
	"math/rand"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/Zanice/2D-Game-Framework/pkg/mapfile"
	"github.com/sirupsen/logrus"
)

// Константы генерации по умолчанию
const (
	MapWidth  = 40
	MapHeight = 25
	MaxRooms  = 8
	MinSize   = 4
	MaxSize   = 10

	// Комнаты не меньше этого размера получают колонну
	PillarRoomSize = 7
)

// Коды клеток матрицы
var (
	WallCode   = domain.EncodeTileCode(domain.TileWall, domain.ElementEmpty)
	FloorCode  = domain.EncodeTileCode(domain.TileFloor, domain.ElementEmpty)
	PillarCode = domain.EncodeTileCode(domain.TileFloor, domain.ElementPillar)
)

// Config - параметры генерации
type Config struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	MaxRooms int `yaml:"rooms"`
	MinSize  int `yaml:"min_size"`
	MaxSize  int `yaml:"max_size"`
}

// DefaultConfig - карта 40×25 с восемью попытками комнат
func DefaultConfig() Config {
	return Config{Width: MapWidth, Height: MapHeight, MaxRooms: MaxRooms, MinSize: MinSize, MaxSize: MaxSize}
}

// withDefaults подставляет значения по умолчанию в нулевые поля
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.MaxRooms == 0 {
		c.MaxRooms = d.MaxRooms
	}
	if c.MinSize == 0 {
		c.MinSize = d.MinSize
	}
	if c.MaxSize == 0 {
		c.MaxSize = d.MaxSize
	}
	return c
}

// Validate проверяет, что комната любого размера помещается в карту
func (c Config) Validate() error {
	if c.MinSize < 3 || c.MaxSize < c.MinSize {
		return domain.Configf("room size range [%d, %d] is invalid", c.MinSize, c.MaxSize)
	}
	if c.Width < c.MaxSize+2 || c.Height < c.MaxSize+2 {
		return domain.Configf("map %dx%d is too small for rooms up to %d", c.Width, c.Height, c.MaxSize)
	}
	if c.MaxRooms <= 0 {
		return domain.Configf("rooms must be positive, got %d", c.MaxRooms)
	}
	return nil
}

// Rect - Вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Level - результат генерации: матрица и комнаты в порядке соединения
type Level struct {
	Matrix mapfile.Matrix
	Rooms  []Rect
}

// SpawnPoints - клетки центров комнат. Центр всегда пол.
func (l Level) SpawnPoints() []geom.CoordinatePair {
	out := make([]geom.CoordinatePair, 0, len(l.Rooms))
	for _, r := range l.Rooms {
		cx, cy := r.Center()
		out = append(out, geom.C(cx, cy))
	}
	return out
}

// Generate создает новый уровень. Один и тот же rng дает одну и ту же карту.
func Generate(cfg Config, rng *rand.Rand) (Level, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Level{}, err
	}

	// 1. Заполняем стенами
	m := mapfile.Filled(cfg.Width, cfg.Height, WallCode)
	var rooms []Rect

	// 2. Генерируем комнаты
	for i := 0; i < cfg.MaxRooms; i++ {
		w := randRange(rng, cfg.MinSize, cfg.MaxSize)
		h := randRange(rng, cfg.MinSize, cfg.MaxSize)
		x := randRange(rng, 1, cfg.Width-w-1)
		y := randRange(rng, 1, cfg.Height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}
		failed := false
		for _, other := range rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(m, newRoom)
		if len(rooms) > 0 {
			// Соединяем с предыдущей комнатой
			prevX, prevY := rooms[len(rooms)-1].Center()
			currX, currY := newRoom.Center()
			if rng.Intn(2) == 0 {
				createHCorridor(m, prevX, currX, prevY)
				createVCorridor(m, prevY, currY, currX)
			} else {
				createVCorridor(m, prevY, currY, prevX)
				createHCorridor(m, prevX, currX, currY)
			}
		}
		rooms = append(rooms, newRoom)
	}

	// 3. Колонны в больших комнатах (после коридоров, в стороне от центра)
	for _, r := range rooms {
		if r.W >= PillarRoomSize && r.H >= PillarRoomSize {
			placePillar(m, r)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon_generator",
		"width":     cfg.Width,
		"height":    cfg.Height,
		"rooms":     len(rooms),
	}).Debug("Level generated")

	return Level{Matrix: m, Rooms: rooms}, nil
}

// --- Вспомогательные функции ---

func createRoom(m mapfile.Matrix, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			m.Set(x, y, FloorCode)
		}
	}
}

func createHCorridor(m mapfile.Matrix, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		m.Set(x, y, FloorCode)
	}
}

func createVCorridor(m mapfile.Matrix, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		m.Set(x, y, FloorCode)
	}
}

// placePillar ставит колонну во вторую клетку от угла комнаты, если там пол
// и она не лежит на линии центра (там проходят коридоры)
func placePillar(m mapfile.Matrix, r Rect) {
	x, y := r.X+2, r.Y+2
	cx, cy := r.Center()
	if x == cx || y == cy || m.At(x, y) != FloorCode {
		return
	}
	m.Set(x, y, PillarCode)
}

func randRange(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}
