package handlers

import (
	"fmt"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/systems"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/Zanice/2D-Game-Framework/pkg/geom"
)

// Registry - обработчики оружейных команд по типу действия
func Registry() map[domain.ActionType]HandlerFunc {
	return map[domain.ActionType]HandlerFunc{
		domain.ActionKnife:      WithPayload(HandleKnife),
		domain.ActionTazer:      WithPayload(HandleTazer),
		domain.ActionFlashbang:  WithPayload(HandleFlashbang),
		domain.ActionShieldBash: WithPayload(HandleShieldBash),
		domain.ActionWait:       WithEmptyPayload(HandleWait),
	}
}

// HandleWait - пропуск хода
func HandleWait(Context) (Result, error) {
	return EmptyResult(), nil
}

// HandleKnife - удар ножом. Ненулевой прицел поворачивает актора.
func HandleKnife(ctx Context, p api.AimPayload) (Result, error) {
	if err := ready(ctx, systems.WeaponKnife); err != nil {
		return Result{}, err
	}
	aim(ctx.Actor, p)
	strike, err := systems.UseKnife(ctx.Grid, ctx.Actor)
	if err != nil {
		return Result{}, err
	}
	return strikeResult(ctx, strike), nil
}

// HandleTazer - выстрел тазером по прицелу или по взгляду
func HandleTazer(ctx Context, p api.AimPayload) (Result, error) {
	if err := ready(ctx, systems.WeaponTazer); err != nil {
		return Result{}, err
	}
	aim(ctx.Actor, p)
	proj, err := systems.FireTazer(ctx.NextProjectileID(), ctx.Actor, ctx.Actor.Facing)
	if err != nil {
		return Result{}, err
	}
	ctx.Launch(proj)
	return Result{
		Msg:     fmt.Sprintf("%s fires a tazer", ctx.Actor.ID),
		MsgType: "COMBAT",
	}, nil
}

// HandleFlashbang - бросок гранаты в мировую точку
func HandleFlashbang(ctx Context, p api.PositionPayload) (Result, error) {
	if err := ready(ctx, systems.WeaponFlashbang); err != nil {
		return Result{}, err
	}
	strike, err := systems.UseFlashbang(ctx.Grid, ctx.Actor, geom.V(p.X, p.Y))
	if err != nil {
		return Result{}, err
	}
	return strikeResult(ctx, strike), nil
}

// HandleShieldBash - удар щитом перед собой
func HandleShieldBash(ctx Context, p api.AimPayload) (Result, error) {
	if err := ready(ctx, systems.WeaponShieldBash); err != nil {
		return Result{}, err
	}
	aim(ctx.Actor, p)
	strike, err := systems.UseShieldBash(ctx.Grid, ctx.Actor)
	if err != nil {
		return Result{}, err
	}
	return strikeResult(ctx, strike), nil
}

// ready расходует заряд оружия, если снаряжение задано
func ready(ctx Context, w systems.WeaponKind) error {
	if ctx.Loadout == nil {
		return nil
	}
	return ctx.Loadout.Use(w, ctx.Tick)
}

func aim(actor *domain.Entity, p api.AimPayload) {
	if dir := geom.V(p.X, p.Y); !dir.IsZero() {
		actor.Facing = dir.Normalized()
	}
}

func strikeResult(ctx Context, s systems.Strike) Result {
	res := Result{Strike: &s, MsgType: "COMBAT"}
	switch {
	case len(s.Hits) == 0:
		res.Msg = fmt.Sprintf("%s uses %s and misses", ctx.Actor.ID, s.Weapon)
	case len(s.Kills) > 0:
		res.Msg = fmt.Sprintf("%s uses %s: %d hit, %d killed", ctx.Actor.ID, s.Weapon, len(s.Hits), len(s.Kills))
	default:
		res.Msg = fmt.Sprintf("%s uses %s: %d hit", ctx.Actor.ID, s.Weapon, len(s.Hits))
	}
	return res
}
