// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Входные данные невалидны (пустые поля, слишком длинные строки и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован (нет токена или он невалиден)
	ErrUnauthorized = errors.New("unauthorized")
	// Авторизован, но не хватает прав (роль)
	ErrForbidden = errors.New("forbidden")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Конфликт (например курс ещё используется студентами)
	ErrConflict = errors.New("conflict")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
)

// ValidationError — ошибка валидации с сообщениями по каждому полю.
//
// Через errors.Is сводится к ErrInvalidInput, поэтому api слой
// отдаёт её как 400 вместе с текстом сообщений.
type ValidationError struct {
	Fields []string
}

// NewValidationError создаёт ValidationError из списка сообщений.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	return strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Error — доменная ошибка с сообщением для клиента.
//
// Kind — одна из sentinel-ошибок выше, по ней api слой выбирает HTTP-статус,
// Msg уходит клиенту как есть.
type Error struct {
	Kind error
	Msg  string
}

// WithMessage оборачивает kind в ошибку с сообщением для клиента.
func WithMessage(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}
