package domain

import "strings"

// ActionType - внутренний числовой идентификатор команды
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionWait
	ActionMove
	ActionKnife
	ActionTazer
	ActionFlashbang
	ActionShieldBash
)

// Маппинг для конвертации протокол -> домен
var actionStringToCmd = map[string]ActionType{
	"WAIT":        ActionWait,
	"MOVE":        ActionMove,
	"KNIFE":       ActionKnife,
	"TAZER":       ActionTazer,
	"FLASHBANG":   ActionFlashbang,
	"SHIELD_BASH": ActionShieldBash,
}

// Маппинг для логов домен -> строка
var actionCmdToString = map[ActionType]string{
	ActionWait:       "WAIT",
	ActionMove:       "MOVE",
	ActionKnife:      "KNIFE",
	ActionTazer:      "TAZER",
	ActionFlashbang:  "FLASHBANG",
	ActionShieldBash: "SHIELD_BASH",
}

// ParseAction конвертирует строку протокола в ActionType
func ParseAction(s string) ActionType {
	// Регистр не важен
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует Stringer
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsWeapon - команда применяет оружие (выполняется в фазе действий)
func (a ActionType) IsWeapon() bool {
	switch a {
	case ActionKnife, ActionTazer, ActionFlashbang, ActionShieldBash:
		return true
	}
	return false
}
