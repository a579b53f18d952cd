package handlers

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/systems"
	"github.com/Zanice/2D-Game-Framework/internal/world"
)

// Context передает хендлеру состояние симуляции.
// Ссылки, а не копии: хендлер мутирует здоровье и список снарядов.
type Context struct {
	Finder  systems.EntityProvider
	Grid    *world.Grid
	Actor   *domain.Entity   // Тот, кто выполняет команду (игрок или бот)
	Loadout *systems.Loadout // Снаряжение актора
	Tick    uint64

	// Для спавна снарядов
	Launch func(p *systems.Projectile)
	// Выдает ID следующего снаряда
	NextProjectileID func() uint64
}

// Result - результат выполнения команды.
// Хендлер НЕ пишет в журнал симуляции напрямую, он возвращает данные.
type Result struct {
	Strike  *systems.Strike // Попадание, если было
	Msg     string          // Текст записи журнала
	MsgType string          // INFO, COMBAT
}

// HandlerFunc - контракт для любой команды оружия
type HandlerFunc func(ctx Context, cmd domain.Command) (Result, error)

// EmptyResult - пустой успешный ответ
func EmptyResult() Result {
	return Result{}
}
