package main

import (
	"context"

	"github.com/Zanice/2D-Game-Framework/internal/engine"
	"github.com/Zanice/2D-Game-Framework/internal/storage"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
)

// loadConfig собирает конфиг: значения по умолчанию, окружение, затем флаги
func loadConfig() (engine.Config, error) {
	cfg, err := engine.NewConfig().FromEnv()
	if err != nil {
		return cfg, err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}
	return cfg, nil
}

func loadScenario() (engine.Scenario, error) {
	if scenarioPath == "" {
		return engine.DefaultScenario(), nil
	}
	return engine.LoadScenario(scenarioPath)
}

// mapRepository выбирает источник карт по сценарию
func mapRepository(sc engine.Scenario, cfg engine.Config) (*storage.MapRepository, error) {
	switch sc.Map.Source {
	case engine.MapSourceFile:
		return storage.NewMapRepository(storage.NewFileSource(mapsRoot)), nil
	case engine.MapSourceRedis:
		src, err := storage.NewRedisSource(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return storage.NewMapRepository(src), nil
	}
	return nil, nil
}

// buildSimulation строит мир сценария для сида cfg.Seed
func buildSimulation(ctx context.Context, cfg engine.Config) (*engine.Simulation, error) {
	sc, err := loadScenario()
	if err != nil {
		return nil, err
	}
	repo, err := mapRepository(sc, cfg)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"scenario": sc.Name,
		"seed":     cfg.Seed,
	}).Info("Building world")
	return engine.BuildSimulation(ctx, sc, cfg.Seed, repo)
}
