package systems

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Intent - запрошенное направление движения по осям (как нажатые клавиши)
type Intent struct {
	Left  bool `json:"left" msgpack:"l"`
	Right bool `json:"right" msgpack:"r"`
	Up    bool `json:"up" msgpack:"u"`
	Down  bool `json:"down" msgpack:"d"`
}

// Resolved убирает взаимоисключающие направления
func (i Intent) Resolved() Intent {
	if i.Left && i.Right {
		i.Left, i.Right = false, false
	}
	if i.Up && i.Down {
		i.Up, i.Down = false, false
	}
	return i
}

// IsIdle - нет движения ни по одной оси
func (i Intent) IsIdle() bool {
	r := i.Resolved()
	return !r.Left && !r.Right && !r.Up && !r.Down
}

// Direction - вектор намерения (не нормирован)
func (i Intent) Direction() geom.Vec2 {
	r := i.Resolved()
	var d geom.Vec2
	if r.Right {
		d.X++
	}
	if r.Left {
		d.X--
	}
	if r.Up {
		d.Y++
	}
	if r.Down {
		d.Y--
	}
	return d
}

// IntentToward подбирает осевое намерение в сторону цели
func IntentToward(from, to geom.Vec2, deadZone float64) Intent {
	d := to.Sub(from)
	return Intent{
		Right: d.X > deadZone,
		Left:  d.X < -deadZone,
		Up:    d.Y > deadZone,
		Down:  d.Y < -deadZone,
	}
}

// Displacement - ограниченные величины смещения по четырём направлениям
type Displacement struct {
	Left, Right, Up, Down float64
}

// Vector собирает итоговое смещение (right-left, up-down)
func (d Displacement) Vector() geom.Vec2 {
	return geom.V(d.Right-d.Left, d.Up-d.Down)
}

// buffer - мировые границы буфера препятствия
type buffer struct {
	left, right, bottom, top float64
}

// neighborBuffer возвращает буфер слота выборки 3×3. Слоты вне сетки - сплошная стена.
func neighborBuffer(s world.Sample, i, j int) (buffer, bool) {
	tile, ok := s.At(i, j)
	if !ok {
		c := s.CenterOf(i, j)
		return buffer{left: c.X - 0.5, right: c.X + 0.5, bottom: c.Y - 0.5, top: c.Y + 0.5}, true
	}
	b := tile.Buffer()
	if b.IsDead() {
		return buffer{}, false
	}
	c := tile.BufferCenter()
	return buffer{
		left:   c.X - b.HalfExtents.X,
		right:  c.X + b.HalfExtents.X,
		bottom: c.Y - b.HalfExtents.Y,
		top:    c.Y + b.HalfExtents.Y,
	}, true
}

// ClipMovement ограничивает смещение по каждой оси буферами соседних клеток.
// sample - выборка 3×3 с текущей клеткой сущности в слоте (1,1).
func ClipMovement(pos geom.Vec2, radius float64, intent Intent, speed float64, sample world.Sample) Displacement {
	intent = intent.Resolved()

	magnitude := speed
	if (intent.Left || intent.Right) && (intent.Up || intent.Down) {
		magnitude *= domain.DiagonalScale
	}

	var d Displacement
	if intent.Right {
		d.Right = clipAxis(magnitude, func(i int) (float64, bool) {
			b, ok := neighborBuffer(sample, 2, i)
			if !ok || !overlapsY(pos, radius, b) {
				return 0, false
			}
			return b.left - (pos.X + radius), true
		})
	}
	if intent.Left {
		d.Left = clipAxis(magnitude, func(i int) (float64, bool) {
			b, ok := neighborBuffer(sample, 0, i)
			if !ok || !overlapsY(pos, radius, b) {
				return 0, false
			}
			return (pos.X - radius) - b.right, true
		})
	}
	if intent.Up {
		d.Up = clipAxis(magnitude, func(i int) (float64, bool) {
			b, ok := neighborBuffer(sample, i, 2)
			if !ok || !overlapsX(pos, radius, b) {
				return 0, false
			}
			return b.bottom - (pos.Y + radius), true
		})
	}
	if intent.Down {
		d.Down = clipAxis(magnitude, func(i int) (float64, bool) {
			b, ok := neighborBuffer(sample, i, 0)
			if !ok || !overlapsX(pos, radius, b) {
				return 0, false
			}
			return (pos.Y - radius) - b.top, true
		})
	}
	return d
}

// clipAxis перебирает три клетки стороны. gap возвращает расстояние от края
// сущности до края буфера, если буфер перекрывает сущность поперёк оси движения.
func clipAxis(magnitude float64, gap func(i int) (float64, bool)) float64 {
	allowed := magnitude
	for i := 0; i < 3; i++ {
		g, ok := gap(i)
		if !ok {
			continue
		}
		// Край буфера пересекается, только если смещение его достигает
		if g < allowed {
			allowed = geom.Clamp(g, 0, allowed)
		}
	}
	return allowed
}

func overlapsY(pos geom.Vec2, r float64, b buffer) bool {
	return pos.Y-r < b.top && b.bottom < pos.Y+r
}

func overlapsX(pos geom.Vec2, r float64, b buffer) bool {
	return pos.X-r < b.right && b.left < pos.X+r
}

// MoveEntity клипует и применяет движение сущности. Возвращает применённое смещение.
func MoveEntity(g *world.Grid, e *domain.Entity, intent Intent) geom.Vec2 {
	if e.IsDead || intent.IsIdle() {
		return geom.Vec2{}
	}

	cell := g.GridCoordinatesFromPosition(e.Position)
	sample := g.GetUnboundedSample(cell.X-1, cell.Y-1, 3, 3)

	d := ClipMovement(e.Position, e.Radius, intent, e.Speed, sample)
	delta := d.Vector()
	e.Position = e.Position.Add(delta)

	if dir := intent.Direction(); !dir.IsZero() {
		e.Facing = dir.Normalized()
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "movement_system",
		"entity":    e.ID,
		"delta":     delta,
	}).Debug("Entity moved")
	return delta
}
