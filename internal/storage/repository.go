package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/Zanice/2D-Game-Framework/pkg/mapfile"
	"github.com/sirupsen/logrus"
)

type mapKey struct {
	directory, name string
	width, height   int
}

// MapRepository загружает карты из источника и помнит последнюю загруженную.
// Повторная загрузка той же карты с теми же размерами не идет в источник.
type MapRepository struct {
	source MapSource

	mu     sync.Mutex
	last   mapKey
	cached mapfile.Matrix
	loaded bool
}

// NewMapRepository создает репозиторий поверх источника
func NewMapRepository(source MapSource) *MapRepository {
	return &MapRepository{source: source}
}

// Load возвращает матрицу карты directory/name размером w×h
func (r *MapRepository) Load(ctx context.Context, directory, name string, w, h int) (mapfile.Matrix, error) {
	key := mapKey{directory: directory, name: name, width: w, height: h}
	repoLogger := logger.Log.WithFields(logrus.Fields{
		"component": "map_repository",
		"directory": directory,
		"map":       name,
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	// 1. Уже загружена
	if r.loaded && r.last == key {
		repoLogger.Debug("Map already loaded, skipping")
		return r.cached.Clone(), nil
	}

	// 2. Чтение из источника
	rc, err := r.source.Fetch(ctx, directory, name)
	if err != nil {
		return mapfile.Matrix{}, fmt.Errorf("fetch map %s/%s: %w", directory, name, err)
	}
	defer rc.Close()

	// 3. Разбор
	m, err := mapfile.Parse(name, rc, w, h)
	if err != nil {
		return mapfile.Matrix{}, err
	}

	r.last, r.cached, r.loaded = key, m, true
	repoLogger.WithFields(logrus.Fields{"width": w, "height": h}).Info("Map loaded")
	return m.Clone(), nil
}
