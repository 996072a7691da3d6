package service

import (
	"errors"
	"strings"
)

var (
	// ErrAuthentication - единое сообщение для неизвестного пользователя
	// и неверного пароля, чтобы не раскрывать существование аккаунта
	ErrAuthentication = errors.New("неверное имя пользователя или пароль")

	// ErrInvalidToken - любая проблема с reset-токеном схлопывается в
	// один исход: подпись, формат, срок, несуществующий пользователь
	ErrInvalidToken = errors.New("недействительный или просроченный токен")

	ErrNotFound = errors.New("не найдено")

	ErrSelfFollow = errors.New("нельзя подписаться на самого себя")

	ErrEditorOnly = errors.New("требуется роль Editor")
)

// ValidationError - ошибки валидации по полям формы. Обрабатывается
// на уровне хендлера, никогда не считается отказом сервиса.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "ошибка валидации: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
