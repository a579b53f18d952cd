package domain

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Command - команда сущности на конкретный тик.
// Payload закодирован в msgpack и разбирается обработчиком действия.
type Command struct {
	Tick    uint64             `msgpack:"tick" json:"tick"`
	Actor   EntityID           `msgpack:"actor" json:"actor"`
	Action  ActionType         `msgpack:"action" json:"action"`
	Payload msgpack.RawMessage `msgpack:"payload,omitempty" json:"-"`
}

// NewCommand кодирует payload и собирает команду
func NewCommand(tick uint64, actor EntityID, action ActionType, payload any) (Command, error) {
	cmd := Command{Tick: tick, Actor: actor, Action: action}
	if payload == nil {
		return cmd, nil
	}
	raw, err := msgpack.Marshal(payload)
	if err != nil {
		return Command{}, fmt.Errorf("encode %s payload: %w", action, err)
	}
	cmd.Payload = raw
	return cmd, nil
}

// Decode разбирает payload команды в v
func (c Command) Decode(v any) error {
	if len(c.Payload) == 0 {
		return Newf(CodeRejected, "%s command has no payload", c.Action)
	}
	if err := msgpack.Unmarshal(c.Payload, v); err != nil {
		return &Error{Code: CodeRejected, Message: fmt.Sprintf("decode %s payload", c.Action), Cause: err}
	}
	return nil
}
