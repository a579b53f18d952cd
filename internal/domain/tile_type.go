package domain

// TileType - код типа клетки из файла карты
type TileType int

const (
	TileEmpty  TileType = 0
	TileFloor  TileType = 1
	TileWall   TileType = 2
	TileRubble TileType = 3
)

var tileTypeNames = map[TileType]string{
	TileEmpty:  "EMPTY",
	TileFloor:  "FLOOR",
	TileWall:   "WALL",
	TileRubble: "RUBBLE",
}

var tileObstacles = map[TileType]Obstacle{
	TileEmpty:  ObstacleHole,
	TileFloor:  ObstacleFloor,
	TileWall:   ObstacleWall,
	TileRubble: ObstacleHole,
}

// ParseTileType проверяет код из матрицы карты
func ParseTileType(code int) (TileType, error) {
	t := TileType(code)
	if _, ok := tileObstacles[t]; !ok {
		return TileEmpty, Configf("unknown tile type code %d", code).WithMeta("code", code)
	}
	return t, nil
}

func (t TileType) String() string {
	if n, ok := tileTypeNames[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// Obstacle возвращает классификацию препятствия для типа
func (t TileType) Obstacle() Obstacle {
	return tileObstacles[t]
}

// TileElement - объект, стоящий в клетке поверх типа (колонна и т.п.)
type TileElement int

const (
	ElementEmpty  TileElement = 0
	ElementPillar TileElement = 1
)

var elementBuffers = map[TileElement]ObstacleBuffer{
	ElementEmpty:  DeadBuffer,
	ElementPillar: mustBuffer(0, 0, 0.2, 0.2),
}

// ParseTileElement проверяет код элемента
func ParseTileElement(code int) (TileElement, error) {
	e := TileElement(code)
	if _, ok := elementBuffers[e]; !ok {
		return ElementEmpty, Configf("unknown tile element code %d", code).WithMeta("code", code)
	}
	return e, nil
}

func (e TileElement) String() string {
	switch e {
	case ElementEmpty:
		return "EMPTY"
	case ElementPillar:
		return "PILLAR"
	default:
		return "UNKNOWN"
	}
}

// Buffer возвращает буфер элемента
func (e TileElement) Buffer() ObstacleBuffer {
	return elementBuffers[e]
}
