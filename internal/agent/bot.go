package agent

import (
	"math/rand"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/systems"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
)

// VisionRadius - дальность обзора бота в клетках
const VisionRadius = 8

// Сколько тиков бродяга держит выбранное направление
const (
	wanderMinTicks = 10
	wanderMaxTicks = 40
)

// Order - решение бота на один тик. Движок превращает его в команды.
type Order struct {
	Intent systems.Intent
	Weapon systems.WeaponKind // 0 - без оружия
	Aim    geom.Vec2
}

// Idle - пустой приказ
func (o Order) Idle() bool {
	return o.Weapon == 0 && o.Intent.IsIdle()
}

// Bot - скриптовый агент, управляющий одной сущностью.
//
// Жизненный цикл:
//  1. NewBot -> привязка к сущности и собственный RNG от seed.
//  2. Think вызывается движком в фазе приема команд, до движения.
//  3. Копы и грабители ищут ближайшую видимую не союзную цель и преследуют ее,
//     прохожие бродят случайно.
type Bot struct {
	EntityID domain.EntityID

	rng         *rand.Rand
	wander      systems.Intent
	wanderTicks int
	log         *logrus.Entry
}

// NewBot создает бота для сущности. Одинаковый seed дает одинаковое поведение.
func NewBot(id domain.EntityID, seed int64) *Bot {
	botLogger := logger.Log.WithFields(logrus.Fields{
		"component": "bot",
		"entity":    id,
	})
	botLogger.Debug("Creating agent")
	return &Bot{
		EntityID: id,
		rng:      rand.New(rand.NewSource(seed ^ int64(id))),
		log:      botLogger,
	}
}

// Think выбирает действие для self на тике tick
func (b *Bot) Think(g *world.Grid, self *domain.Entity, loadout *systems.Loadout, tick uint64) Order {
	if self == nil || self.IsDead {
		return Order{}
	}
	if self.Allegiance == domain.AllegianceNeutral {
		return b.wanderOrder()
	}

	// 1. Цель: ближайший видимый противник
	target := b.pickTarget(g, self)
	if target == nil {
		return Order{}
	}

	// 2. Решение AI
	canFire := loadout != nil && loadout.Ready(systems.WeaponTazer, tick)
	decision := systems.ComputeBotAction(g, self, target, canFire)

	// 3. Перевод в приказ
	switch decision.Action {
	case systems.BotStrike:
		if loadout != nil && !loadout.Ready(systems.WeaponKnife, tick) {
			return Order{}
		}
		return Order{Weapon: systems.WeaponKnife, Aim: decision.Direction}
	case systems.BotFire:
		b.log.WithFields(logrus.Fields{"target": target.ID, "tick": tick}).Debug("Bot fires")
		return Order{Weapon: systems.WeaponTazer, Aim: decision.Direction}
	case systems.BotMove:
		return Order{Intent: decision.Intent}
	default:
		return Order{}
	}
}

func (b *Bot) pickTarget(g *world.Grid, self *domain.Entity) *domain.Entity {
	visible := systems.VisibleCells(g, self.Position, VisionRadius)
	target, _ := g.NearestInArea(self.Position, systems.AggroRadius, func(e *domain.Entity) bool {
		if e == self || e.IsDead || self.IsAlliedWith(e) {
			return false
		}
		return visible.Has(g.GridCoordinatesFromPosition(e.Position))
	})
	return target
}

// wanderOrder держит случайное направление несколько тиков, затем меняет его
func (b *Bot) wanderOrder() Order {
	if b.wanderTicks <= 0 {
		b.wanderTicks = wanderMinTicks + b.rng.Intn(wanderMaxTicks-wanderMinTicks+1)
		b.wander = randomIntent(b.rng)
	}
	b.wanderTicks--
	return Order{Intent: b.wander}
}

func randomIntent(rng *rand.Rand) systems.Intent {
	// 0 - стоять, 1 - одна ось, 2 - диагональ
	var in systems.Intent
	switch rng.Intn(3) {
	case 1:
		setAxis(&in, rng.Intn(4))
	case 2:
		setAxis(&in, rng.Intn(2))
		setAxis(&in, 2+rng.Intn(2))
	}
	return in
}

func setAxis(in *systems.Intent, axis int) {
	switch axis {
	case 0:
		in.Left = true
	case 1:
		in.Right = true
	case 2:
		in.Up = true
	case 3:
		in.Down = true
	}
}
