package engine

import (
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/systems"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
)

// BuildSnapshot собирает снимок мира после тика.
// Слайсы всегда не nil, чтобы в JSON было "[]".
func BuildSnapshot(s *Simulation) api.Snapshot {
	corner := s.Grid.Corner()
	snap := api.Snapshot{
		Type: "SNAPSHOT",
		Tick: s.tick,
		Grid: api.GridMeta{
			Width:   s.Grid.Width(),
			Height:  s.Grid.Height(),
			CornerX: corner.X,
			CornerY: corner.Y,
		},
		Entities:    make([]api.EntityView, 0, len(s.entities)),
		Projectiles: make([]api.ProjectileView, 0, len(s.projectiles)),
		Strikes:     make([]api.StrikeView, 0, len(s.strikes)),
		Logs:        append([]api.LogEntry{}, s.logs...),
	}

	for _, e := range s.entities {
		snap.Entities = append(snap.Entities, entityView(e, s.IsBot(e.ID)))
	}
	for _, p := range s.projectiles {
		snap.Projectiles = append(snap.Projectiles, api.ProjectileView{
			ID:     p.ID,
			Weapon: p.Weapon.String(),
			Owner:  uint64(p.Owner),
			X:      p.Position.X,
			Y:      p.Position.Y,
		})
	}
	for _, st := range s.strikes {
		snap.Strikes = append(snap.Strikes, strikeView(st))
	}
	return snap
}

func entityView(e *domain.Entity, bot bool) api.EntityView {
	return api.EntityView{
		ID:         uint64(e.ID),
		Label:      e.ID.String(),
		Kind:       e.Kind.String(),
		Allegiance: e.Allegiance.String(),
		X:          e.Position.X,
		Y:          e.Position.Y,
		FacingX:    e.Facing.X,
		FacingY:    e.Facing.Y,
		Radius:     e.Radius,
		HP:         e.Health,
		MaxHP:      e.MaxHealth,
		IsBot:      bot,
	}
}

func strikeView(st systems.Strike) api.StrikeView {
	v := api.StrikeView{
		Weapon: st.Weapon.String(),
		Actor:  uint64(st.Actor),
		Hits:   make([]uint64, 0, len(st.Hits)),
		Damage: st.Damage,
	}
	for _, id := range st.Hits {
		v.Hits = append(v.Hits, uint64(id))
	}
	for _, id := range st.Kills {
		v.Kills = append(v.Kills, uint64(id))
	}
	return v
}

// TileViews - состояние всех клеток сетки для отладки
func TileViews(g *world.Grid) []api.TileView {
	out := make([]api.TileView, 0, g.Width()*g.Height())
	g.Tiles(func(t *domain.Tile) {
		out = append(out, TileView(t))
	})
	return out
}

// TileView - состояние одной клетки: код карты, препятствие и кто в ней числится
func TileView(t *domain.Tile) api.TileView {
	c := t.Coord()
	v := api.TileView{
		X:        c.X,
		Y:        c.Y,
		Code:     domain.EncodeTileCode(t.Type(), t.Element()),
		Obstacle: t.Obstacle().String(),
		Entities: make([]uint64, 0, t.EntityCount()),
	}
	for _, e := range t.Entities() {
		v.Entities = append(v.Entities, uint64(e.ID))
	}
	return v
}
