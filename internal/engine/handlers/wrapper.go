package handlers

import (
	"fmt"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
)

// TypedHandlerFunc - "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные
type EmptyHandlerFunc func(ctx Context) (Result, error)

// Decode распаковывает payload команды и валидирует его
func Decode[T any](cmd domain.Command) (T, error) {
	var payload T

	// 1. Распаковка msgpack
	if err := cmd.Decode(&payload); err != nil {
		return payload, fmt.Errorf("invalid payload format: %w", err)
	}

	// 2. Автоматическая валидация
	if v, ok := any(payload).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, domain.Rejectedf("validation failed: %v", err)
		}
	}
	return payload, nil
}

// WithPayload берет "чистый" хендлер и превращает его в стандартный HandlerFunc
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, cmd domain.Command) (Result, error) {
		payload, err := Decode[T](cmd)
		if err != nil {
			return Result{}, err
		}
		return handler(ctx, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ domain.Command) (Result, error) {
		return handler(ctx)
	}
}
