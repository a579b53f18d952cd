package world

//go:generate mockgen -destination=mock/mock_presenter.go -package=worldmock github.com/Zanice/2D-Game-Framework/internal/world Presenter

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
)

// Presenter - граница к слою отрисовки. Сетка сообщает о создании и
// освобождении клеток, чтобы внешний слой создавал и удалял свои ресурсы.
type Presenter interface {
	TileCreated(tile *domain.Tile)
	TileReleased(tile *domain.Tile)
}

// NopPresenter ничего не делает (headless режим)
type NopPresenter struct{}

func (NopPresenter) TileCreated(*domain.Tile)  {}
func (NopPresenter) TileReleased(*domain.Tile) {}

// CountingPresenter считает живые клетки (для debug-эндпоинтов)
type CountingPresenter struct {
	Created  int
	Released int
}

func (p *CountingPresenter) TileCreated(*domain.Tile)  { p.Created++ }
func (p *CountingPresenter) TileReleased(*domain.Tile) { p.Released++ }

// Live - количество клеток, ресурсы которых ещё не освобождены
func (p *CountingPresenter) Live() int {
	return p.Created - p.Released
}
