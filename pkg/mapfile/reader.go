// Package mapfile читает карты уровней - прямоугольные матрицы целочисленных кодов клеток.
//
// Формат: каждая строка матрицы заключена в фигурные скобки, числа внутри
// разделены любыми символами, кроме цифр и букв. Первая строка файла - верхняя
// строка карты (y = height-1).
//
//	{2,2,2}
//	{2,1,2}
//	{2,2,2}
package mapfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Extension - расширение файлов карт
const Extension = ".map"

// NoRow - значение FormatError.Row, когда ошибка не привязана к строке
const NoRow = -1

// FormatError - ошибка разбора карты с контекстом для диагностики
type FormatError struct {
	File           string
	Row            int // индекс строки в файле (0 - верхняя), NoRow если неприменимо
	Column         int // индекс числа в строке, NoRow если неприменимо
	ExpectedWidth  int
	ExpectedHeight int
	Reason         string
}

func (e *FormatError) Error() string {
	if e.Row == NoRow {
		return fmt.Sprintf("MAPLOAD<%s>: expected %dx%d matrix: %s", e.File, e.ExpectedWidth, e.ExpectedHeight, e.Reason)
	}
	return fmt.Sprintf("MAPLOAD<%s>: problem @ row index %d, column %d (expected width %d): %s",
		e.File, e.Row, e.Column, e.ExpectedWidth, e.Reason)
}

// Unwrap позволяет errors.Is(err, domain.ErrFormat)
func (e *FormatError) Unwrap() error {
	return domain.ErrFormat
}

// LoadMap читает directory/name.map и проверяет размеры
func LoadMap(directory, name string, width, height int) (Matrix, error) {
	path := filepath.Join(directory, name+Extension)
	f, err := os.Open(path)
	if err != nil {
		return Matrix{}, fmt.Errorf("open map %s: %w", path, err)
	}
	defer f.Close()

	return Parse(name, f, width, height)
}

// Parse читает матрицу width×height из r. name используется в ошибках.
func Parse(name string, r io.Reader, width, height int) (Matrix, error) {
	mapLogger := logger.Log.WithFields(logrus.Fields{
		"component": "map_reader",
		"file":      name,
		"width":     width,
		"height":    height,
	})

	if width <= 0 || height <= 0 {
		return Matrix{}, formatErr(name, NoRow, NoRow, width, height, "matrix dimensions must be positive")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Matrix{}, fmt.Errorf("read map %s: %w", name, err)
	}

	rows, err := splitRows(name, data, width, height)
	if err != nil {
		return Matrix{}, err
	}
	if len(rows) != height {
		return Matrix{}, formatErr(name, NoRow, NoRow, width, height,
			fmt.Sprintf("row count %d does not match expected count of %d", len(rows), height))
	}

	m := NewMatrix(width, height)
	for rowIdx, line := range rows {
		values, err := parseRow(name, line, rowIdx, width, height)
		if err != nil {
			return Matrix{}, err
		}
		// Первая строка файла - верх карты
		y := height - 1 - rowIdx
		for x, v := range values {
			m.Set(x, y, v)
		}
	}

	mapLogger.Debug("Map parsed")
	return m, nil
}

// splitRows выделяет содержимое между '{' и '}'
func splitRows(name string, data []byte, width, height int) ([]string, error) {
	var rows []string
	for i := 0; i < len(data); i++ {
		if data[i] != '{' {
			continue
		}
		end := -1
		for j := i + 1; j < len(data); j++ {
			if data[j] == '}' {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, formatErr(name, len(rows), NoRow, width, height, "end of data reached; no right-side delimiter encountered")
		}
		rows = append(rows, string(data[i+1:end]))
		i = end
	}
	return rows, nil
}

// parseRow читает ровно width чисел из строки
func parseRow(name, line string, rowIdx, width, height int) ([]int, error) {
	values := make([]int, 0, width)
	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case isLetter(c):
			return nil, formatErr(name, rowIdx, len(values), width, height, "invalid input encountered")
		case isDigit(c):
			j := i
			for j < len(line) && isDigit(line[j]) {
				j++
			}
			if j < len(line) && isLetter(line[j]) {
				return nil, formatErr(name, rowIdx, len(values), width, height, "invalid input encountered")
			}
			if len(values) == width {
				return nil, formatErr(name, rowIdx, len(values), width, height, "row has too many inputs")
			}
			v, err := strconv.Atoi(line[i:j])
			if err != nil {
				return nil, formatErr(name, rowIdx, len(values), width, height, "value is not an integer")
			}
			values = append(values, v)
			i = j
		default:
			i++
		}
	}
	if len(values) < width {
		return nil, formatErr(name, rowIdx, len(values), width, height,
			fmt.Sprintf("row has %d inputs, expected %d", len(values), width))
	}
	return values, nil
}

func formatErr(name string, row, col, width, height int, reason string) *FormatError {
	return &FormatError{
		File:           name,
		Row:            row,
		Column:         col,
		ExpectedWidth:  width,
		ExpectedHeight: height,
		Reason:         reason,
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
