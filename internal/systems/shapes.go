package systems

import (
	"math"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
)

// ShapeKind - вариант формы эффекта
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota + 1
	ShapeCone
	ShapeRectangle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeCone:
		return "cone"
	case ShapeRectangle:
		return "rectangle"
	default:
		return "unknown"
	}
}

// Shape - закрытый набор форм эффектов. Реализации только в этом пакете.
type Shape interface {
	Kind() ShapeKind
	hits(g *world.Grid, origin geom.Vec2) ([]*domain.Entity, error)
}

// Circle - круг радиуса Range
type Circle struct {
	Range float64
}

// Cone - сектор радиуса Range. Angle - полный угол от края до края в градусах.
type Cone struct {
	Range     float64
	Angle     float64
	Direction geom.Vec2
}

// Rectangle - прямоугольник Width×Height с центром в origin.
// Direction задаёт локальное "вверх", нулевое направление - мировое вверх.
type Rectangle struct {
	Width     float64
	Height    float64
	Direction geom.Vec2
}

func (Circle) Kind() ShapeKind    { return ShapeCircle }
func (Cone) Kind() ShapeKind      { return ShapeCone }
func (Rectangle) Kind() ShapeKind { return ShapeRectangle }

// DetermineHits возвращает сущности, пересекающие форму, по возрастанию расстояния
// от origin. Исполнитель действия сам исключает себя из результата.
func DetermineHits(g *world.Grid, origin geom.Vec2, s Shape) ([]*domain.Entity, error) {
	return s.hits(g, origin)
}

// ExcludeEntity возвращает hits без сущности e (порядок сохраняется)
func ExcludeEntity(hits []*domain.Entity, e *domain.Entity) []*domain.Entity {
	out := hits[:0:0]
	for _, h := range hits {
		if h != e {
			out = append(out, h)
		}
	}
	return out
}

// --- Circle ---

func (c Circle) hits(g *world.Grid, origin geom.Vec2) ([]*domain.Entity, error) {
	return g.EntitiesInArea(origin, c.Range), nil
}

// --- Cone ---

func (c Cone) hits(g *world.Grid, origin geom.Vec2) ([]*domain.Entity, error) {
	if c.Direction.IsZero() {
		return nil, domain.DegenerateInputf("cone direction must be non-zero")
	}
	angle := geom.Clamp(c.Angle, 0, 360)
	if angle == 0 {
		return nil, nil
	}
	dir := c.Direction.Normalized()
	half := angle / 2

	var out []*domain.Entity
	for _, e := range g.EntitiesInArea(origin, c.Range) {
		if coneOverlaps(origin, dir, half, e.Position, e.Radius) {
			out = append(out, e)
		}
	}
	return out, nil
}

// coneOverlaps проверяет пересечение круга (center, r) с сектором полуугла half
func coneOverlaps(origin, dir geom.Vec2, half float64, center geom.Vec2, r float64) bool {
	toCenter := center.Sub(origin)

	// 1. Совпадает с вершиной
	if toCenter.IsZero() {
		return true
	}

	// 2. Центр внутри сектора
	if math.Abs(geom.AngleBetween(dir, toCenter)) <= half {
		return true
	}

	// 3. Касательные точки к краям сектора
	leftEdge := geom.Rotate(dir, half)
	rightEdge := geom.Rotate(dir, -half)
	leftNormal := geom.V(leftEdge.Y, -leftEdge.X)   // внутрь сектора от левого края
	rightNormal := geom.V(-rightEdge.Y, rightEdge.X) // внутрь сектора от правого края

	leftTangent := center.Add(leftNormal.Scale(r)).Sub(origin)
	rightTangent := center.Add(rightNormal.Scale(r)).Sub(origin)

	leftAngle := geom.AngleBetween(leftEdge, leftTangent)
	rightAngle := geom.AngleBetween(rightEdge, rightTangent)

	if !(leftAngle <= 0 && rightAngle >= 0) {
		return false
	}

	// 4. Круг целиком позади вершины
	if math.Abs(leftAngle) > 90 && math.Abs(rightAngle) > 90 && toCenter.Length() > r {
		return false
	}
	return true
}

// --- Rectangle ---

func (rc Rectangle) hits(g *world.Grid, origin geom.Vec2) ([]*domain.Entity, error) {
	if rc.Width < 0 || rc.Height < 0 {
		return nil, domain.DegenerateInputf("rectangle size %vx%v must be non-negative", rc.Width, rc.Height)
	}
	halfW, halfH := rc.Width/2, rc.Height/2
	searchRange := geom.Hypot(halfW, halfH)

	// Поворот в локальную систему прямоугольника
	rotation := 0.0
	if !rc.Direction.IsZero() {
		rotation = geom.AngleBetween(geom.Up, rc.Direction)
	}

	var out []*domain.Entity
	for _, e := range g.EntitiesInArea(origin, searchRange) {
		local := geom.Rotate(e.Position.Sub(origin), -rotation)
		if rectangleOverlaps(halfW, halfH, local, e.Radius) {
			out = append(out, e)
		}
	}
	return out, nil
}

// rectangleOverlaps проверяет круг радиуса r с центром local (в локальной системе)
// против осевого прямоугольника с полуразмерами halfW, halfH
func rectangleOverlaps(halfW, halfH float64, local geom.Vec2, r float64) bool {
	edge := local.Length() - r

	// 1. Край круга дотягивается до центра
	if edge <= 0 {
		return true
	}

	// 2. Край круга внутри вписанной окружности
	if edge <= math.Min(halfW, halfH) {
		return true
	}

	inBox := func(p geom.Vec2) bool {
		return math.Abs(p.X) <= halfW && math.Abs(p.Y) <= halfH
	}

	// 3. Касательные точки вдоль локальных осей
	for _, off := range []geom.Vec2{{X: r}, {X: -r}, {Y: r}, {Y: -r}} {
		if inBox(local.Add(off)) {
			return true
		}
	}

	// 4. Углы прямоугольника внутри круга
	for _, corner := range []geom.Vec2{{X: halfW, Y: halfH}, {X: -halfW, Y: halfH}, {X: halfW, Y: -halfH}, {X: -halfW, Y: -halfH}} {
		if corner.DistanceTo(local) <= r {
			return true
		}
	}
	return false
}
