// Package storage holds the persistence side of the simulation: map sources,
// the caching map repository, binary replay files and the sqlite run history.
package storage

//go:generate mockgen -destination=mock/mock_mapsource.go -package=storagemock github.com/Zanice/2D-Game-Framework/internal/storage MapSource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/mapfile"
)

// MapSource отдает сырой текст карты по каталогу и имени
type MapSource interface {
	Fetch(ctx context.Context, directory, name string) (io.ReadCloser, error)
}

// FileSource читает карты из локальной файловой системы: <root>/<directory>/<name>.map
type FileSource struct {
	Root string
}

// NewFileSource создает источник с корнем root ("" - текущий каталог)
func NewFileSource(root string) *FileSource {
	return &FileSource{Root: root}
}

// Fetch открывает файл карты
func (s *FileSource) Fetch(_ context.Context, directory, name string) (io.ReadCloser, error) {
	path := filepath.Join(s.Root, directory, name+mapfile.Extension)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.Error{Code: domain.CodeNotFound, Message: fmt.Sprintf("map %s not found", path), Cause: err}
		}
		return nil, fmt.Errorf("open map %s: %w", path, err)
	}
	return f, nil
}
