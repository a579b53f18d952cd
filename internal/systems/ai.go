package systems

import (
	"math"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/world"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Параметры ботов
const (
	AggroRadius    = 6.0
	FireMinRange   = 1.5
	AlignTolerance = 0.3
)

// BotAction - что бот решил сделать на этом тике
type BotAction uint8

const (
	BotIdle BotAction = iota
	BotMove
	BotStrike
	BotFire
)

// BotDecision - решение бота
type BotDecision struct {
	Action    BotAction
	Intent    Intent
	Direction geom.Vec2
}

// ComputeBotAction решает, что делать боту с выбранной целью.
// canFire - разрешён ли выстрел тазером на этом тике.
func ComputeBotAction(g *world.Grid, npc, target *domain.Entity, canFire bool) BotDecision {
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"npc":       npc.ID,
	})

	if npc.IsDead || target == nil || target.IsDead {
		return BotDecision{Action: BotIdle}
	}

	toTarget := target.Position.Sub(npc.Position)
	dist := toTarget.Length()

	// 1. Цель вплотную - нож
	if dist-target.Radius <= KnifeRange {
		aiLogger.WithField("target", target.ID).Debug("Target in knife range")
		return BotDecision{Action: BotStrike, Direction: toTarget}
	}

	// 2. Вне агро-радиуса - ждём
	if dist > AggroRadius {
		return BotDecision{Action: BotIdle}
	}

	visible := HasLineOfSight(g, npc.Position, target.Position)

	// 3. Цель на одной линии и видна - стреляем
	aligned := math.Abs(toTarget.X) <= AlignTolerance || math.Abs(toTarget.Y) <= AlignTolerance
	if canFire && visible && aligned && dist >= FireMinRange {
		aiLogger.WithField("target", target.ID).Debug("Target aligned, firing")
		return BotDecision{Action: BotFire, Direction: toTarget}
	}

	// 4. Преследование со скольжением вдоль стен
	intent := calculateSmartMove(g, npc, target)
	if intent.IsIdle() {
		return BotDecision{Action: BotIdle}
	}
	return BotDecision{Action: BotMove, Intent: intent}
}

// calculateSmartMove выбирает намерение: прямо к цели, а если путь перекрыт -
// обход по перпендикулярной оси
func calculateSmartMove(g *world.Grid, npc, target *domain.Entity) Intent {
	ideal := IntentToward(npc.Position, target.Position, npc.Speed/2)
	if canMove(g, npc, ideal) {
		return ideal
	}

	d := target.Position.Sub(npc.Position)
	detours := []Intent{{Left: true}, {Right: true}}
	if math.Abs(d.X) >= math.Abs(d.Y) {
		detours = []Intent{{Up: true}, {Down: true}}
		if d.Y < 0 {
			detours[0], detours[1] = detours[1], detours[0]
		}
	} else if d.X > 0 {
		detours[0], detours[1] = detours[1], detours[0]
	}
	for _, in := range detours {
		if canMove(g, npc, in) {
			return in
		}
	}
	return Intent{}
}

func canMove(g *world.Grid, e *domain.Entity, intent Intent) bool {
	if intent.IsIdle() {
		return false
	}
	cell := g.GridCoordinatesFromPosition(e.Position)
	sample := g.GetUnboundedSample(cell.X-1, cell.Y-1, 3, 3)
	d := ClipMovement(e.Position, e.Radius, intent, e.Speed, sample)
	return d.Vector().Length() > geom.Epsilon
}
