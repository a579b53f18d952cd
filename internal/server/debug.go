package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Zanice/2D-Game-Framework/internal/engine"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
)

// DebugHandler предоставляет доступ к внутреннему состоянию симуляции.
// Все чтения идут через Instance.View, между тиками.
type DebugHandler struct {
	Instance *engine.Instance
}

func NewDebugHandler(inst *engine.Instance) *DebugHandler {
	return &DebugHandler{Instance: inst}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/grid", h.handleGrid)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/tile", h.handleTile)
	mux.HandleFunc("/debug/queue", h.handleQueue)
	mux.HandleFunc("/debug/snapshot", h.handleSnapshot)
}

// /debug/grid - размеры сетки и все клетки с индексом отслеживания
func (h *DebugHandler) handleGrid(w http.ResponseWriter, r *http.Request) {
	type gridDump struct {
		Tick  uint64         `json:"tick"`
		Grid  api.GridMeta   `json:"grid"`
		Tiles []api.TileView `json:"tiles"`
	}

	var dump gridDump
	h.Instance.View(func(sim *engine.Simulation) {
		corner := sim.Grid.Corner()
		dump = gridDump{
			Tick: sim.Tick(),
			Grid: api.GridMeta{
				Width:   sim.Grid.Width(),
				Height:  sim.Grid.Height(),
				CornerX: corner.X,
				CornerY: corner.Y,
			},
			Tiles: engine.TileViews(sim.Grid),
		}
	})
	writeJSON(w, dump)
}

// /debug/entities - живые сущности с позициями и здоровьем
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	var entities []api.EntityView
	h.Instance.View(func(sim *engine.Simulation) {
		entities = engine.BuildSnapshot(sim).Entities
	})
	if entities == nil {
		entities = []api.EntityView{}
	}
	writeJSON(w, entities)
}

// /debug/tile?x=1&y=2 - одна клетка: код карты и кто в ней числится
func (h *DebugHandler) handleTile(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.Atoi(r.URL.Query().Get("x"))
	y, errY := strconv.Atoi(r.URL.Query().Get("y"))
	if errX != nil || errY != nil {
		http.Error(w, "x and y must be integers", http.StatusBadRequest)
		return
	}

	var (
		view api.TileView
		err  error
	)
	h.Instance.View(func(sim *engine.Simulation) {
		tile, tileErr := sim.Grid.GetTileAt(x, y)
		if tileErr != nil {
			err = tileErr
			return
		}
		view = engine.TileView(tile)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, view)
}

// /debug/queue - команды, ожидающие своего тика.
// Куча: порядок в слайсе не совпадает с порядком извлечения.
func (h *DebugHandler) handleQueue(w http.ResponseWriter, r *http.Request) {
	var dump []map[string]any
	h.Instance.View(func(sim *engine.Simulation) {
		dump = sim.Pending().DebugDump()
	})
	writeJSON(w, dump)
}

// /debug/snapshot - последний разосланный снимок
func (h *DebugHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Instance.Latest())
}

// writeJSON пишет ответ как есть: пустые слайсы вызывающий передает не-nil
func writeJSON(w http.ResponseWriter, data any) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.For("debug").WithError(err).Warn("Failed to encode debug response")
	}
}
