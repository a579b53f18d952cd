package engine

import (
	"math/rand"
	"sort"

	"github.com/Zanice/2D-Game-Framework/internal/agent"
	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/engine/handlers"
	"github.com/Zanice/2D-Game-Framework/internal/systems"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Simulation - явный контекст симуляции: сетка, сущности, снаряды и очередь команд.
// Не потокобезопасна, владеет ей одна горутина (Instance.Run или тест).
//
// Порядок фаз тика:
//  1. Прием команд (очередь + боты)
//  2. Движение
//  3. Обновление индекса отслеживания
//  4. Полет снарядов
//  5. Оружие
//  6. Уборка мертвых
//  7. Снимок
type Simulation struct {
	Grid *world.Grid
	Seed int64

	tick uint64
	rng  *rand.Rand

	entities  []*domain.Entity
	byID      map[domain.EntityID]*domain.Entity
	loadouts  map[domain.EntityID]*systems.Loadout
	bots      map[domain.EntityID]*agent.Bot
	nextIndex uint64
	botsOff   bool

	projectiles    []*systems.Projectile
	nextProjectile uint64

	tracker   *systems.Tracker
	scheduler *Scheduler
	handlers  map[domain.ActionType]handlers.HandlerFunc
	replay    *domain.ReplaySession

	// Накопленное за текущий тик
	strikes []systems.Strike
	logs    []api.LogEntry
	deaths  int

	log *logrus.Entry
}

// NewSimulation создает симуляцию на готовой сетке
func NewSimulation(g *world.Grid, seed int64) *Simulation {
	return &Simulation{
		Grid:      g,
		Seed:      seed,
		rng:       rand.New(rand.NewSource(seed)),
		byID:      make(map[domain.EntityID]*domain.Entity),
		loadouts:  make(map[domain.EntityID]*systems.Loadout),
		bots:      make(map[domain.EntityID]*agent.Bot),
		tracker:   systems.NewTracker(),
		scheduler: NewScheduler(),
		handlers:  handlers.Registry(),
		log:       logger.For("simulation"),
	}
}

// Record включает запись всех принятых команд в session
func (s *Simulation) Record(session *domain.ReplaySession) {
	session.Seed = s.Seed
	s.replay = session
}

// DisableBots выключает ботов (воспроизведение: их решения уже в записи)
func (s *Simulation) DisableBots() {
	s.botsOff = true
}

// Spawn создает сущность в мировой точке pos
func (s *Simulation) Spawn(kind domain.EntityKind, allegiance domain.Allegiance, pos geom.Vec2, bot bool) (*domain.Entity, error) {
	if !s.Grid.ContainsPosition(pos) {
		return nil, domain.OutOfRangef("spawn position %v is outside the grid", pos)
	}

	s.nextIndex++
	id := domain.PackEntityID(kind, allegiance, s.nextIndex)
	e, err := domain.NewEntity(id, kind, allegiance, pos)
	if err != nil {
		return nil, err
	}

	s.entities = append(s.entities, e)
	s.byID[id] = e
	s.loadouts[id] = systems.NewLoadout(allegiance)
	if bot {
		s.bots[id] = agent.NewBot(id, s.rng.Int63())
	}
	s.tracker.Refresh(s.Grid, e)

	s.log.WithFields(logrus.Fields{
		"entity":   id,
		"position": pos,
		"bot":      bot,
	}).Info("Entity spawned")
	return e, nil
}

// GetEntity - поиск живой сущности по ID
func (s *Simulation) GetEntity(id domain.EntityID) *domain.Entity {
	return s.byID[id]
}

// Entities - копия списка живых сущностей в порядке появления
func (s *Simulation) Entities() []*domain.Entity {
	out := make([]*domain.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Projectiles - летящие снаряды
func (s *Simulation) Projectiles() []*systems.Projectile {
	out := make([]*systems.Projectile, len(s.projectiles))
	copy(out, s.projectiles)
	return out
}

// Loadout - снаряжение сущности
func (s *Simulation) Loadout(id domain.EntityID) *systems.Loadout {
	return s.loadouts[id]
}

// IsBot - управляется ли сущность ботом
func (s *Simulation) IsBot(id domain.EntityID) bool {
	_, ok := s.bots[id]
	return ok
}

// Tick - номер следующего тика
func (s *Simulation) Tick() uint64 { return s.tick }

// Deaths - сколько сущностей погибло с начала прогона
func (s *Simulation) Deaths() int { return s.deaths }

// Pending - команды в очереди
func (s *Simulation) Pending() *Scheduler { return s.scheduler }

// Submit ставит команду в очередь. Команды из прошлого выполняются на ближайшем тике.
func (s *Simulation) Submit(cmd domain.Command) error {
	actor := s.byID[cmd.Actor]
	if actor == nil {
		return domain.NotFoundf("actor %s not found", cmd.Actor)
	}
	if cmd.Action == domain.ActionUnknown {
		return domain.Rejectedf("unknown action for %s", cmd.Actor)
	}
	if cmd.Tick < s.tick {
		cmd.Tick = s.tick
	}
	s.scheduler.Schedule(cmd)
	return nil
}

// Step выполняет один тик и возвращает снимок мира после него
func (s *Simulation) Step() api.Snapshot {
	tickLogger := s.log.WithField("tick", s.tick)

	// 1. Прием команд
	commands := s.intake()
	intents := make(map[domain.EntityID]systems.Intent)
	var actions []domain.Command
	for _, cmd := range commands {
		if s.replay != nil {
			s.replay.Record(cmd)
		}
		if cmd.Action != domain.ActionMove {
			actions = append(actions, cmd)
			continue
		}
		p, err := handlers.Decode[api.MovePayload](cmd)
		if err != nil {
			tickLogger.WithError(err).WithField("actor", cmd.Actor).Debug("Move rejected")
			continue
		}
		// Последняя команда движения за тик побеждает
		intents[cmd.Actor] = systems.Intent{Left: p.Left, Right: p.Right, Up: p.Up, Down: p.Down}
	}

	// 2. Движение
	for _, e := range s.entities {
		if in, ok := intents[e.ID]; ok {
			systems.MoveEntity(s.Grid, e, in)
		}
	}

	// 3. Индекс отслеживания
	s.tracker.RefreshAll(s.Grid, s.entities)

	// 4. Снаряды
	s.advanceProjectiles()

	// 5. Оружие
	for _, cmd := range actions {
		s.execute(cmd, tickLogger)
	}

	// 6. Уборка мертвых
	s.sweepDead()

	// 7. Снимок
	snap := BuildSnapshot(s)
	s.strikes = nil
	s.logs = nil
	s.tick++
	if s.replay != nil {
		s.replay.Ticks = s.tick
	}
	return snap
}

// intake собирает команды тика: сначала из очереди, затем решения ботов
func (s *Simulation) intake() []domain.Command {
	commands := s.scheduler.Due(s.tick)
	for i := range commands {
		commands[i].Tick = s.tick
	}
	if s.botsOff {
		return commands
	}

	ids := make([]domain.EntityID, 0, len(s.bots))
	for id := range s.bots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		e := s.byID[id]
		if e == nil {
			continue
		}
		order := s.bots[id].Think(s.Grid, e, s.loadouts[id], s.tick)
		commands = append(commands, s.orderCommands(id, order)...)
	}
	return commands
}

// orderCommands переводит приказ бота в команды того же формата, что и от клиентов
func (s *Simulation) orderCommands(id domain.EntityID, o agent.Order) []domain.Command {
	var out []domain.Command
	if !o.Intent.IsIdle() {
		cmd, err := domain.NewCommand(s.tick, id, domain.ActionMove, api.MovePayload{
			Left: o.Intent.Left, Right: o.Intent.Right, Up: o.Intent.Up, Down: o.Intent.Down,
		})
		if err == nil {
			out = append(out, cmd)
		}
	}
	if o.Weapon != 0 {
		action := actionForWeapon(o.Weapon)
		var payload any = api.AimPayload{X: o.Aim.X, Y: o.Aim.Y}
		if action == domain.ActionFlashbang {
			e := s.byID[id]
			payload = api.PositionPayload{X: e.Position.X + o.Aim.X, Y: e.Position.Y + o.Aim.Y}
		}
		cmd, err := domain.NewCommand(s.tick, id, action, payload)
		if err == nil {
			out = append(out, cmd)
		}
	}
	return out
}

func actionForWeapon(w systems.WeaponKind) domain.ActionType {
	switch w {
	case systems.WeaponKnife:
		return domain.ActionKnife
	case systems.WeaponTazer:
		return domain.ActionTazer
	case systems.WeaponFlashbang:
		return domain.ActionFlashbang
	case systems.WeaponShieldBash:
		return domain.ActionShieldBash
	default:
		return domain.ActionUnknown
	}
}

func (s *Simulation) advanceProjectiles() {
	alive := s.projectiles[:0]
	for _, p := range s.projectiles {
		if strike, hit := p.Advance(s.Grid); hit {
			s.strikes = append(s.strikes, strike)
			s.AddLog(strikeText(strike), "COMBAT")
		}
		if !p.Destroyed {
			alive = append(alive, p)
		}
	}
	for i := len(alive); i < len(s.projectiles); i++ {
		s.projectiles[i] = nil
	}
	s.projectiles = alive
}

func (s *Simulation) execute(cmd domain.Command, tickLogger *logrus.Entry) {
	actor := s.byID[cmd.Actor]
	if actor == nil || actor.IsDead {
		return
	}
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		tickLogger.WithField("action", cmd.Action).Warn("No handler for action")
		return
	}

	ctx := handlers.Context{
		Finder:  s,
		Grid:    s.Grid,
		Actor:   actor,
		Loadout: s.loadouts[actor.ID],
		Tick:    s.tick,
		Launch: func(p *systems.Projectile) {
			s.projectiles = append(s.projectiles, p)
		},
		NextProjectileID: func() uint64 {
			s.nextProjectile++
			return s.nextProjectile
		},
	}

	res, err := handler(ctx, cmd)
	if err != nil {
		tickLogger.WithError(err).WithFields(logrus.Fields{
			"actor":  cmd.Actor,
			"action": cmd.Action,
		}).Debug("Command rejected")
		return
	}
	if res.Strike != nil {
		s.strikes = append(s.strikes, *res.Strike)
	}
	if res.Msg != "" {
		s.AddLog(res.Msg, res.MsgType)
	}
}

// sweepDead снимает погибших с индекса и из всех реестров
func (s *Simulation) sweepDead() {
	alive := s.entities[:0]
	var dead []*domain.Entity
	for _, e := range s.entities {
		if e.IsDead {
			dead = append(dead, e)
			continue
		}
		alive = append(alive, e)
	}
	for i := len(alive); i < len(s.entities); i++ {
		s.entities[i] = nil
	}
	s.entities = alive

	for _, e := range dead {
		s.tracker.Forget(e)
		delete(s.byID, e.ID)
		delete(s.loadouts, e.ID)
		delete(s.bots, e.ID)
		s.deaths++
		s.log.WithFields(logrus.Fields{
			"entity": e.ID,
			"tick":   s.tick,
		}).Info("Entity died")
		s.AddLog(e.ID.String()+" is down", "DEATH")
	}
}

// Survivors - живые сущности по сторонам
func (s *Simulation) Survivors() map[domain.Allegiance]int {
	out := make(map[domain.Allegiance]int)
	for _, e := range s.entities {
		out[e.Allegiance]++
	}
	return out
}
