package domain

import (
	"errors"
	"fmt"
)

// Code - класс ошибки ядра симуляции
type Code string

const (
	CodeOutOfRange      Code = "out_of_range"
	CodeFormat          Code = "format"
	CodeLengthMismatch  Code = "length_mismatch"
	CodeDegenerateInput Code = "degenerate_input"
	CodeConfig          Code = "config"
	CodeRejected        Code = "rejected"
	CodeNotFound        Code = "not_found"
)

// Sentinel-ошибки для errors.Is. Сравнение идёт по коду, поэтому
// любая *Error с тем же кодом совпадает с соответствующим sentinel.
var (
	ErrOutOfRange      = &Error{Code: CodeOutOfRange, Message: "coordinates out of range"}
	ErrFormat          = &Error{Code: CodeFormat, Message: "malformed map data"}
	ErrLengthMismatch  = &Error{Code: CodeLengthMismatch, Message: "vector length mismatch"}
	ErrDegenerateInput = &Error{Code: CodeDegenerateInput, Message: "degenerate input"}
	ErrConfig          = &Error{Code: CodeConfig, Message: "invalid configuration"}
	ErrRejected        = &Error{Code: CodeRejected, Message: "action rejected"}
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
)

// Error - структурированная ошибка с кодом и метаданными
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithMeta добавляет метаданные к ошибке
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// Newf создает ошибку с кодом и форматированным сообщением
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// OutOfRangef - ошибка выхода за границы сетки
func OutOfRangef(format string, args ...any) *Error {
	return Newf(CodeOutOfRange, format, args...)
}

// Configf - ошибка конфигурации (невалидные буферы, неизвестные коды тайлов)
func Configf(format string, args ...any) *Error {
	return Newf(CodeConfig, format, args...)
}

// LengthMismatchf - ошибка несовпадения длины вектора
func LengthMismatchf(format string, args ...any) *Error {
	return Newf(CodeLengthMismatch, format, args...)
}

// DegenerateInputf - ошибка вырожденных входных данных
func DegenerateInputf(format string, args ...any) *Error {
	return Newf(CodeDegenerateInput, format, args...)
}

// Rejectedf - действие отклонено (оружие не готово, цель невалидна)
func Rejectedf(format string, args ...any) *Error {
	return Newf(CodeRejected, format, args...)
}

// NotFoundf - сущность, карта или запись не найдены
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}
