package geom

import "math"

const (
	radToDeg = 180 / math.Pi
	degToRad = math.Pi / 180
)

// AngleBetween возвращает знаковый угол в градусах от v1 к v2.
// Положительный угол - против часовой стрелки. Результат в (-180, 180].
func AngleBetween(v1, v2 Vec2) float64 {
	a := (math.Atan2(v2.Y, v2.X) - math.Atan2(v1.Y, v1.X)) * radToDeg
	return WrapDegrees(a)
}

// WrapDegrees приводит угол к диапазону (-180, 180]
func WrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}

// Rotate поворачивает вектор на угол в градусах (против часовой стрелки)
func Rotate(v Vec2, degrees float64) Vec2 {
	rad := degrees * degToRad
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
