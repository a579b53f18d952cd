package domain

import (
	"sort"

	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/zyedidia/generic/mapset"
)

// ElementCodeBase - десятки кода карты задают элемент клетки (11 = пол с колонной)
const ElementCodeBase = 10

// DecodeTileCode раскладывает код матрицы карты на тип и элемент
func DecodeTileCode(code int) (TileType, TileElement, error) {
	if code < 0 {
		return TileEmpty, ElementEmpty, Configf("negative tile code %d", code)
	}
	t, err := ParseTileType(code % ElementCodeBase)
	if err != nil {
		return TileEmpty, ElementEmpty, err
	}
	e, err := ParseTileElement(code / ElementCodeBase)
	if err != nil {
		return TileEmpty, ElementEmpty, err
	}
	return t, e, nil
}

// EncodeTileCode - обратная операция к DecodeTileCode
func EncodeTileCode(t TileType, e TileElement) int {
	return int(e)*ElementCodeBase + int(t)
}

// Tile - одна клетка сетки: статическая классификация + живое множество сущностей
type Tile struct {
	coord   geom.CoordinatePair
	center  geom.Vec2
	typ     TileType
	element TileElement
	buffer  ObstacleBuffer

	entities mapset.Set[*Entity]
}

// NewTile создает клетку. Буфер типа имеет приоритет, если он не мёртвый.
func NewTile(coord geom.CoordinatePair, center geom.Vec2, typ TileType, element TileElement) *Tile {
	buffer := typ.Obstacle().Buffer()
	if buffer.IsDead() {
		buffer = element.Buffer()
	}
	return &Tile{
		coord:    coord,
		center:   center,
		typ:      typ,
		element:  element,
		buffer:   buffer,
		entities: mapset.New[*Entity](),
	}
}

func (t *Tile) Coord() geom.CoordinatePair { return t.coord }
func (t *Tile) Center() geom.Vec2           { return t.center }
func (t *Tile) Type() TileType              { return t.typ }
func (t *Tile) Element() TileElement        { return t.element }
func (t *Tile) Buffer() ObstacleBuffer      { return t.buffer }
func (t *Tile) Obstacle() Obstacle          { return t.typ.Obstacle() }

// BufferCenter - мировой центр буфера препятствия
func (t *Tile) BufferCenter() geom.Vec2 {
	return t.center.Sub(t.buffer.Offset)
}

// AddEntity добавляет сущность без дубликатов
func (t *Tile) AddEntity(e *Entity) {
	t.entities.Put(e)
}

// RemoveEntity удаляет сущность. Отсутствие сущности не ошибка.
func (t *Tile) RemoveEntity(e *Entity) {
	t.entities.Remove(e)
}

func (t *Tile) HasEntity(e *Entity) bool {
	return t.entities.Has(e)
}

func (t *Tile) EntityCount() int {
	return t.entities.Size()
}

// Entities возвращает копию множества, отсортированную по ID
func (t *Tile) Entities() []*Entity {
	out := make([]*Entity, 0, t.entities.Size())
	t.entities.Each(func(e *Entity) {
		out = append(out, e)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EachEntity обходит сущности клетки без копирования (порядок не определён)
func (t *Tile) EachEntity(fn func(e *Entity)) {
	t.entities.Each(fn)
}
