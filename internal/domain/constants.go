package domain

import "math"

// Движение
const (
	// BaseSpeed - смещение за тик по одной оси
	BaseSpeed = 0.1
)

// DiagonalScale - множитель скорости при движении по двум осям
var DiagonalScale = 1 / math.Sqrt2

// Preset - параметры тела и здоровья для типа сущности
type Preset struct {
	Radius    float64
	MaxHealth int
	Speed     float64
}

var presets = map[EntityKind]Preset{
	KindPlayer:    {Radius: 0.35, MaxHealth: 100, Speed: BaseSpeed},
	KindBystander: {Radius: 0.5, MaxHealth: 1, Speed: BaseSpeed * 0.5},
}

// PresetFor возвращает пресет для типа сущности
func PresetFor(kind EntityKind) (Preset, bool) {
	p, ok := presets[kind]
	return p, ok
}
