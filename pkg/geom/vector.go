package geom

import "math"

// Epsilon - допуск для сравнения вещественных координат
const Epsilon = 1e-9

// Vec2 - точка или смещение в мировых координатах
type Vec2 struct {
	X float64 `json:"x" msgpack:"x" yaml:"x"`
	Y float64 `json:"y" msgpack:"y" yaml:"y"`
}

// Up - мировое "вверх" (Y растёт вверх)
var Up = Vec2{X: 0, Y: 1}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length возвращает длину вектора
func (v Vec2) Length() float64 {
	return Hypot(v.X, v.Y)
}

// DistanceTo возвращает евклидово расстояние между точками
func (v Vec2) DistanceTo(o Vec2) float64 {
	return Hypot(v.X-o.X, v.Y-o.Y)
}

// IsZero true, если вектор не задаёт направления
func (v Vec2) IsZero() bool {
	return math.Abs(v.X) < Epsilon && math.Abs(v.Y) < Epsilon
}

// Normalized возвращает единичный вектор. Для нулевого вектора возвращает нулевой.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// ApproxEqual сравнивает векторы с допуском eps
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Hypot - длина гипотенузы по двум катетам
func Hypot(a, b float64) float64 {
	return math.Sqrt(a*a + b*b)
}

// Leg - длина катета по гипотенузе и второму катету.
// Если катет длиннее гипотенузы, возвращает 0.
func Leg(hypotenuse, other float64) float64 {
	d := hypotenuse*hypotenuse - other*other
	if d <= 0 {
		return 0
	}
	return math.Sqrt(d)
}

// Clamp ограничивает значение отрезком [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
