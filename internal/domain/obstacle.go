package domain

import (
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
)

// MaxBufferExtent - предельное смещение/полуразмер буфера внутри клетки
const MaxBufferExtent = 0.5

// Obstacle - классификация препятствия клетки
type Obstacle uint8

const (
	ObstacleFloor Obstacle = iota
	ObstacleHole
	ObstacleWall
)

func (o Obstacle) String() string {
	switch o {
	case ObstacleFloor:
		return "FLOOR"
	case ObstacleHole:
		return "HOLE"
	case ObstacleWall:
		return "WALL"
	default:
		return "UNKNOWN"
	}
}

// ObstacleBuffer - осевой прямоугольник внутри клетки, блокирующий движение.
// Нулевые полуразмеры означают "препятствия нет" (мёртвый буфер).
type ObstacleBuffer struct {
	Offset      geom.Vec2 `json:"offset" msgpack:"offset"`
	HalfExtents geom.Vec2 `json:"half_extents" msgpack:"half_extents"`
}

// DeadBuffer - буфер "нет препятствия"
var DeadBuffer = ObstacleBuffer{}

// NewObstacleBuffer валидирует смещение и полуразмеры: каждая ось в [0, 0.5]
func NewObstacleBuffer(offsetX, offsetY, halfX, halfY float64) (ObstacleBuffer, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"offset.x", offsetX},
		{"offset.y", offsetY},
		{"half_extents.x", halfX},
		{"half_extents.y", halfY},
	} {
		if v.val < 0 || v.val > MaxBufferExtent {
			return DeadBuffer, Configf("obstacle buffer %s=%v outside [0, %v]", v.name, v.val, MaxBufferExtent).
				WithMeta("axis", v.name)
		}
	}
	return ObstacleBuffer{
		Offset:      geom.V(offsetX, offsetY),
		HalfExtents: geom.V(halfX, halfY),
	}, nil
}

// mustBuffer используется только для встроенных таблиц
func mustBuffer(offsetX, offsetY, halfX, halfY float64) ObstacleBuffer {
	b, err := NewObstacleBuffer(offsetX, offsetY, halfX, halfY)
	if err != nil {
		panic(err)
	}
	return b
}

// IsDead true, если буфер ничего не блокирует
func (b ObstacleBuffer) IsDead() bool {
	return b.HalfExtents.X == 0 && b.HalfExtents.Y == 0
}

// obstacleBuffers - фиксированная таблица буферов по классификации
var obstacleBuffers = map[Obstacle]ObstacleBuffer{
	ObstacleFloor: DeadBuffer,
	ObstacleHole:  mustBuffer(0, 0, 0.5, 0.5),
	ObstacleWall:  mustBuffer(0, 0, 0.5, 0.5),
}

// Buffer возвращает буфер препятствия для классификации
func (o Obstacle) Buffer() ObstacleBuffer {
	return obstacleBuffers[o]
}
