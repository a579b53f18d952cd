package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/storage"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/dungeon"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/Zanice/2D-Game-Framework/pkg/mapfile"
	"github.com/sirupsen/logrus"
)

// builtMap - матрица карты и, для сгенерированных карт, клетки для спавна
type builtMap struct {
	matrix mapfile.Matrix
	spawns []geom.CoordinatePair
}

// BuildSimulation строит сетку по сценарию и расставляет стартовые сущности.
// maps нужен только для карт из файла или redis.
func BuildSimulation(ctx context.Context, sc Scenario, seed int64, maps *storage.MapRepository) (*Simulation, error) {
	builderLogger := logger.Log.WithFields(logrus.Fields{
		"component": "world_builder",
		"scenario":  sc.Name,
		"source":    sc.Map.Source,
		"seed":      seed,
	})

	if err := sc.Validate(); err != nil {
		return nil, err
	}

	// 1. Карта
	bm, err := buildMap(ctx, sc.Map, seed, maps)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	// 2. Сетка
	g := world.NewGrid(nil)
	g.SetParameters(bm.matrix.Width, bm.matrix.Height, sc.Corner.X, sc.Corner.Y)
	if err := g.CreateGridFromMap(bm.matrix); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	// 3. Сущности
	sim := NewSimulation(g, seed)
	for i, sp := range sc.Spawns {
		kind, _ := sp.kind()
		allegiance, _ := domain.ParseAllegiance(sp.Allegiance)
		pos := sp.Position
		if len(bm.spawns) > 0 {
			// На сгенерированной карте позиции из сценария не имеют смысла
			pos = g.PositionFromGridCoordinates(bm.spawns[i%len(bm.spawns)])
		}
		if _, err := sim.Spawn(kind, allegiance, pos, sp.Bot); err != nil {
			return nil, fmt.Errorf("spawn %d: %w", i, err)
		}
	}

	builderLogger.WithFields(logrus.Fields{
		"width":    g.Width(),
		"height":   g.Height(),
		"entities": len(sc.Spawns),
	}).Info("World built")
	return sim, nil
}

func buildMap(ctx context.Context, spec MapSpec, seed int64, maps *storage.MapRepository) (builtMap, error) {
	switch spec.Source {
	case MapSourceFile, MapSourceRedis:
		if maps == nil {
			return builtMap{}, domain.Configf("map source %q requires a map repository", spec.Source)
		}
		m, err := maps.Load(ctx, spec.Directory, spec.Name, spec.Width, spec.Height)
		if err != nil {
			return builtMap{}, err
		}
		return builtMap{matrix: m}, nil

	case MapSourceGenerated:
		level, err := dungeon.Generate(dungeon.Config{
			Width:    spec.Width,
			Height:   spec.Height,
			MaxRooms: spec.Rooms,
		}, rand.New(rand.NewSource(seed)))
		if err != nil {
			return builtMap{}, err
		}
		return builtMap{matrix: level.Matrix, spawns: level.SpawnPoints()}, nil

	case MapSourceInline:
		m, err := mapfile.Parse("inline", strings.NewReader(spec.Rows), spec.Width, spec.Height)
		if err != nil {
			return builtMap{}, err
		}
		return builtMap{matrix: m}, nil
	}
	return builtMap{}, domain.Configf("unknown map source %q", spec.Source)
}
