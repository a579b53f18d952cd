package mapfile

import (
	"fmt"
	"strings"
)

// Matrix - матрица кодов клеток, индексируется [x, y], y растёт вверх
type Matrix struct {
	Width  int   `json:"width" msgpack:"width"`
	Height int   `json:"height" msgpack:"height"`
	Cells  []int `json:"cells" msgpack:"cells"` // построчно снизу вверх: Cells[y*Width+x]
}

// NewMatrix создает матрицу, заполненную нулями
func NewMatrix(width, height int) Matrix {
	return Matrix{Width: width, Height: height, Cells: make([]int, width*height)}
}

// Filled создает матрицу, заполненную кодом code
func Filled(width, height, code int) Matrix {
	m := NewMatrix(width, height)
	for i := range m.Cells {
		m.Cells[i] = code
	}
	return m
}

func (m Matrix) At(x, y int) int {
	return m.Cells[y*m.Width+x]
}

func (m Matrix) Set(x, y, v int) {
	m.Cells[y*m.Width+x] = v
}

// Clone - независимая копия матрицы
func (m Matrix) Clone() Matrix {
	c := m
	c.Cells = append([]int(nil), m.Cells...)
	return c
}

// InBounds проверяет, что (x, y) внутри матрицы
func (m Matrix) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Format сериализует матрицу обратно в текстовый формат карты (верхняя строка первой)
func (m Matrix) Format() string {
	var b strings.Builder
	for y := m.Height - 1; y >= 0; y-- {
		b.WriteByte('{')
		for x := 0; x < m.Width; x++ {
			if x > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", m.At(x, y))
		}
		b.WriteString("}\n")
	}
	return b.String()
}
