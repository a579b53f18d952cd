// Package matrix содержит скользящую матрицу на кольцевом буфере.
package matrix

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
)

// Sliding - логическая матрица R×C, хранящаяся как кольцевой буфер.
// Вставка новой граничной строки/колонки стоит O(C)/O(R): данные пишутся
// по текущему смещению верхнего левого угла, противоположный край вытесняется.
type Sliding[T any] struct {
	rows, cols int
	cells      [][]T // физическое хранение [row][col]

	// Смещение логического (0,0) в физическом хранении
	topRow  int
	leftCol int
}

// NewSliding создает матрицу rows×cols, заполненную нулевыми значениями
func NewSliding[T any](rows, cols int) (*Sliding[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, domain.Configf("matrix dimensions must be positive, got %dx%d", rows, cols)
	}
	cells := make([][]T, rows)
	for r := range cells {
		cells[r] = make([]T, cols)
	}
	return &Sliding[T]{rows: rows, cols: cols, cells: cells}, nil
}

// FromRows создает матрицу из прямоугольного набора строк
func FromRows[T any](data [][]T) (*Sliding[T], error) {
	if len(data) == 0 {
		return nil, domain.Configf("matrix needs at least one row")
	}
	m, err := NewSliding[T](len(data), len(data[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range data {
		if len(row) != m.cols {
			return nil, domain.LengthMismatchf("row %d has length %d, expected %d", r, len(row), m.cols)
		}
		copy(m.cells[r], row)
	}
	return m, nil
}

func (m *Sliding[T]) Rows() int { return m.rows }
func (m *Sliding[T]) Cols() int { return m.cols }

// At читает логическую ячейку (r, c)
func (m *Sliding[T]) At(r, c int) (T, error) {
	var zero T
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return zero, domain.OutOfRangef("cell (%d,%d) outside %dx%d matrix", r, c, m.rows, m.cols)
	}
	return m.cells[wrap(m.topRow+r, m.rows)][wrap(m.leftCol+c, m.cols)], nil
}

// InsertRowAbove вставляет строку сверху, нижняя строка вытесняется
func (m *Sliding[T]) InsertRowAbove(row []T) error {
	if err := m.checkLen(len(row), m.cols, "row"); err != nil {
		return err
	}
	m.topRow = wrap(m.topRow-1, m.rows)
	m.writeRow(m.topRow, row)
	return nil
}

// InsertRowBelow вставляет строку снизу, верхняя строка вытесняется
func (m *Sliding[T]) InsertRowBelow(row []T) error {
	if err := m.checkLen(len(row), m.cols, "row"); err != nil {
		return err
	}
	m.writeRow(m.topRow, row)
	m.topRow = wrap(m.topRow+1, m.rows)
	return nil
}

// InsertColumnLeft вставляет колонку слева, правая колонка вытесняется
func (m *Sliding[T]) InsertColumnLeft(col []T) error {
	if err := m.checkLen(len(col), m.rows, "column"); err != nil {
		return err
	}
	m.leftCol = wrap(m.leftCol-1, m.cols)
	m.writeColumn(m.leftCol, col)
	return nil
}

// InsertColumnRight вставляет колонку справа, левая колонка вытесняется
func (m *Sliding[T]) InsertColumnRight(col []T) error {
	if err := m.checkLen(len(col), m.rows, "column"); err != nil {
		return err
	}
	m.writeColumn(m.leftCol, col)
	m.leftCol = wrap(m.leftCol+1, m.cols)
	return nil
}

// Resolve материализует текущий логический вид построчно
func (m *Sliding[T]) Resolve() [][]T {
	out := make([][]T, m.rows)
	for r := 0; r < m.rows; r++ {
		src := m.cells[wrap(m.topRow+r, m.rows)]
		row := make([]T, m.cols)
		for c := 0; c < m.cols; c++ {
			row[c] = src[wrap(m.leftCol+c, m.cols)]
		}
		out[r] = row
	}
	return out
}

// writeRow пишет логическую строку в физическую строку phys, начиная с колонки leftCol
func (m *Sliding[T]) writeRow(phys int, row []T) {
	dst := m.cells[phys]
	for c, v := range row {
		dst[wrap(m.leftCol+c, m.cols)] = v
	}
}

func (m *Sliding[T]) writeColumn(phys int, col []T) {
	for r, v := range col {
		m.cells[wrap(m.topRow+r, m.rows)][phys] = v
	}
}

func (m *Sliding[T]) checkLen(got, want int, what string) error {
	if got != want {
		return domain.LengthMismatchf("%s length %d does not match matrix dimension %d", what, got, want)
	}
	return nil
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
