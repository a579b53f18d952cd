package geom

import "fmt"

// CoordinatePair - целочисленные координаты клетки сетки.
// Сравнивается по значению, годится как ключ map и как ключ смены клетки.
type CoordinatePair struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

func C(x, y int) CoordinatePair {
	return CoordinatePair{X: x, Y: y}
}

// Shift возвращает новую пару со смещением, не меняя текущую
func (c CoordinatePair) Shift(dx, dy int) CoordinatePair {
	return CoordinatePair{X: c.X + dx, Y: c.Y + dy}
}

func (c CoordinatePair) Add(o CoordinatePair) CoordinatePair {
	return CoordinatePair{X: c.X + o.X, Y: c.Y + o.Y}
}

// IsAdjacent возвращает true, если клетка соседняя (включая диагональ)
func (c CoordinatePair) IsAdjacent(o CoordinatePair) bool {
	dx, dy := absInt(c.X-o.X), absInt(c.Y-o.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

func (c CoordinatePair) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
