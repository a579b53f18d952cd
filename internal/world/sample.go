package world

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
)

// Sample - прямоугольная выборка клеток. Слоты вне сетки явно отсутствуют.
type Sample struct {
	origin geom.CoordinatePair // клетка сетки для слота (0,0)
	width  int
	height int
	corner geom.Vec2
	slots  []*domain.Tile
}

// At возвращает клетку слота (i, j). ok=false, если слот вне сетки или вне выборки.
func (s Sample) At(i, j int) (*domain.Tile, bool) {
	if i < 0 || i >= s.width || j < 0 || j >= s.height {
		return nil, false
	}
	t := s.slots[j*s.width+i]
	return t, t != nil
}

func (s Sample) Width() int                  { return s.width }
func (s Sample) Height() int                 { return s.height }
func (s Sample) Origin() geom.CoordinatePair { return s.origin }

// CoordOf - координата сетки для слота (i, j)
func (s Sample) CoordOf(i, j int) geom.CoordinatePair {
	return s.origin.Shift(i, j)
}

// CenterOf - мировой центр слота (i, j), определён и для отсутствующих слотов
func (s Sample) CenterOf(i, j int) geom.Vec2 {
	c := s.CoordOf(i, j)
	return geom.V(s.corner.X+float64(c.X)+0.5, s.corner.Y+float64(c.Y)+0.5)
}

// Present - все существующие клетки выборки
func (s Sample) Present() []*domain.Tile {
	out := make([]*domain.Tile, 0, len(s.slots))
	for _, t := range s.slots {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// GetUnboundedSample возвращает выборку w×h с углом (x, y). Никогда не падает.
func (g *Grid) GetUnboundedSample(x, y, w, h int) Sample {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s := Sample{
		origin: geom.C(x, y),
		width:  w,
		height: h,
		corner: g.corner,
		slots:  make([]*domain.Tile, w*h),
	}
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			s.slots[j*w+i] = g.tileAt(x+i, y+j)
		}
	}
	return s
}

// GetInBoundsSample - как GetUnboundedSample, но падает с OutOfRange,
// если хоть одна клетка выборки вне сетки
func (g *Grid) GetInBoundsSample(x, y, w, h int) (Sample, error) {
	if w <= 0 || h <= 0 {
		return Sample{}, domain.OutOfRangef("sample size %dx%d must be positive", w, h)
	}
	if err := g.validate(x, y); err != nil {
		return Sample{}, err
	}
	if err := g.validate(x+w-1, y+h-1); err != nil {
		return Sample{}, domain.OutOfRangef("sample %dx%d at (%d,%d) exceeds %dx%d grid",
			w, h, x, y, g.width, g.height)
	}
	return g.GetUnboundedSample(x, y, w, h), nil
}
