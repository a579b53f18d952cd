package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Snapshot - снимок мира после тика. Рассылается зрителям в msgpack
// и отдается отладочными эндпоинтами в JSON.
type Snapshot struct {
	// Type тип сообщения. Всегда "SNAPSHOT".
	Type string `json:"type" msgpack:"type"`

	// Tick номер завершившегося тика.
	Tick uint64 `json:"tick" msgpack:"tick"`

	// Grid метаданные сетки, чтобы клиент знал, что рендерить.
	Grid GridMeta `json:"grid" msgpack:"grid"`

	// Entities живые сущности.
	Entities []EntityView `json:"entities" msgpack:"entities"`

	// Projectiles летящие снаряды.
	Projectiles []ProjectileView `json:"projectiles,omitempty" msgpack:"projectiles,omitempty"`

	// Strikes попадания за этот тик.
	Strikes []StrikeView `json:"strikes,omitempty" msgpack:"strikes,omitempty"`

	// Logs новые сообщения за тик.
	Logs []LogEntry `json:"logs,omitempty" msgpack:"logs,omitempty"`
}

// GridMeta - размеры сетки и мировой угол
type GridMeta struct {
	Width   int     `json:"w" msgpack:"w"`
	Height  int     `json:"h" msgpack:"h"`
	CornerX float64 `json:"cornerX" msgpack:"cx"`
	CornerY float64 `json:"cornerY" msgpack:"cy"`
}

// EntityView - DTO сущности
type EntityView struct {
	ID         uint64  `json:"id" msgpack:"id"`
	Label      string  `json:"label" msgpack:"label"`
	Kind       string  `json:"kind" msgpack:"kind"`
	Allegiance string  `json:"allegiance" msgpack:"allegiance"`
	X          float64 `json:"x" msgpack:"x"`
	Y          float64 `json:"y" msgpack:"y"`
	FacingX    float64 `json:"facingX" msgpack:"fx"`
	FacingY    float64 `json:"facingY" msgpack:"fy"`
	Radius     float64 `json:"radius" msgpack:"r"`
	HP         int     `json:"hp" msgpack:"hp"`
	MaxHP      int     `json:"maxHp" msgpack:"maxHp"`
	IsBot      bool    `json:"isBot,omitempty" msgpack:"bot,omitempty"`
}

// ProjectileView - DTO снаряда
type ProjectileView struct {
	ID     uint64  `json:"id" msgpack:"id"`
	Weapon string  `json:"weapon" msgpack:"weapon"`
	Owner  uint64  `json:"owner" msgpack:"owner"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
}

// StrikeView - DTO применения оружия
type StrikeView struct {
	Weapon string   `json:"weapon" msgpack:"weapon"`
	Actor  uint64   `json:"actor" msgpack:"actor"`
	Hits   []uint64 `json:"hits" msgpack:"hits"`
	Kills  []uint64 `json:"kills,omitempty" msgpack:"kills,omitempty"`
	Damage int      `json:"damage" msgpack:"damage"`
}

// LogEntry - одна запись журнала симуляции
type LogEntry struct {
	ID   string `json:"id" msgpack:"id"`
	Tick uint64 `json:"tick" msgpack:"tick"`
	Text string `json:"text" msgpack:"text"`
	Type string `json:"type" msgpack:"type"` // INFO, COMBAT, DEATH
}

// TileView - DTO клетки для отладочного эндпоинта
type TileView struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Code     int      `json:"code"`
	Obstacle string   `json:"obstacle"`
	Entities []uint64 `json:"entities"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - сообщение клиента серверу (JSON-текстовый фрейм веб-сокета)
type ClientCommand struct {
	// Actor ID сущности, от имени которой выполняется действие.
	Actor uint64 `json:"actor"`

	// Action название действия: MOVE, KNIFE, TAZER, FLASHBANG, SHIELD_BASH, WAIT.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---
// Теги json и msgpack совпадают: payload клиента перекодируется из JSON в msgpack.

// MovePayload - нажатые направления движения
type MovePayload struct {
	Left  bool `json:"left" msgpack:"left"`
	Right bool `json:"right" msgpack:"right"`
	Up    bool `json:"up" msgpack:"up"`
	Down  bool `json:"down" msgpack:"down"`
}

// AimPayload - направление удара или выстрела. Нулевое - по взгляду.
type AimPayload struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// PositionPayload - мировая точка (цель броска)
type PositionPayload struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}
