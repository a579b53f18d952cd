package engine

import (
	"fmt"
	"os"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"gopkg.in/yaml.v3"
)

// Источники карты сценария
const (
	MapSourceFile      = "file"
	MapSourceRedis     = "redis"
	MapSourceGenerated = "generated"
	MapSourceInline    = "inline"
)

// Scenario - описание уровня: сетка, карта и стартовые сущности
type Scenario struct {
	Name   string      `yaml:"name"`
	Corner geom.Vec2   `yaml:"corner"`
	Map    MapSpec     `yaml:"map"`
	Spawns []SpawnSpec `yaml:"spawns"`
}

// MapSpec - откуда брать карту
type MapSpec struct {
	Source    string `yaml:"source"`
	Directory string `yaml:"directory,omitempty"`
	Name      string `yaml:"name,omitempty"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	// Rooms - число комнат генератора (source: generated)
	Rooms int `yaml:"rooms,omitempty"`
	// Rows - текст карты в формате .map (source: inline)
	Rows string `yaml:"rows,omitempty"`
}

// SpawnSpec - стартовая сущность
type SpawnSpec struct {
	Kind       string    `yaml:"kind"`
	Allegiance string    `yaml:"allegiance"`
	Position   geom.Vec2 `yaml:"position"`
	Bot        bool      `yaml:"bot"`
}

// LoadScenario читает сценарий из YAML-файла
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario разбирает и проверяет YAML сценария
func ParseScenario(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, &domain.Error{Code: domain.CodeConfig, Message: "invalid scenario yaml", Cause: err}
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Validate проверяет сценарий до построения мира
func (s Scenario) Validate() error {
	if s.Map.Width <= 0 || s.Map.Height <= 0 {
		return domain.Configf("map size %dx%d must be positive", s.Map.Width, s.Map.Height)
	}
	switch s.Map.Source {
	case MapSourceFile, MapSourceRedis:
		if s.Map.Name == "" {
			return domain.Configf("map source %q requires a name", s.Map.Source)
		}
	case MapSourceGenerated:
	case MapSourceInline:
		if s.Map.Rows == "" {
			return domain.Configf("inline map requires rows")
		}
	default:
		return domain.Configf("unknown map source %q", s.Map.Source)
	}
	for i, sp := range s.Spawns {
		if _, err := sp.kind(); err != nil {
			return fmt.Errorf("spawn %d: %w", i, err)
		}
		if _, err := domain.ParseAllegiance(sp.Allegiance); err != nil {
			return fmt.Errorf("spawn %d: %w", i, err)
		}
	}
	return nil
}

func (sp SpawnSpec) kind() (domain.EntityKind, error) {
	return domain.ParseEntityKind(sp.Kind)
}

// DefaultScenario - комната 7×7 со стенами: игрок, прохожий и бот-грабитель
func DefaultScenario() Scenario {
	return Scenario{
		Name: "default",
		Map: MapSpec{
			Source: MapSourceInline,
			Width:  7,
			Height: 7,
			Rows: "{2,2,2,2,2,2,2}\n" +
				"{2,1,1,1,1,1,2}\n" +
				"{2,1,1,1,1,1,2}\n" +
				"{2,1,1,11,1,1,2}\n" +
				"{2,1,1,1,1,1,2}\n" +
				"{2,1,1,1,1,1,2}\n" +
				"{2,2,2,2,2,2,2}\n",
		},
		Spawns: []SpawnSpec{
			{Kind: "player", Allegiance: "cop", Position: geom.V(1.5, 1.5)},
			{Kind: "bystander", Allegiance: "neutral", Position: geom.V(1.5, 2.5), Bot: true},
			{Kind: "player", Allegiance: "robber", Position: geom.V(5.5, 5.5), Bot: true},
		},
	}
}
