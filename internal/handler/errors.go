package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lesoblog/internal/service"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError отображает ошибки сервисного слоя на HTTP-статусы.
// Ни одна ошибка не фатальна: всё превращается в ответ клиенту.
func WriteServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Ошибка валидации", Fields: vErr.Fields})
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, "Не найдено", http.StatusNotFound)
	case errors.Is(err, service.ErrSelfFollow):
		WriteError(w, "Нельзя подписаться на самого себя", http.StatusBadRequest)
	case errors.Is(err, service.ErrAuthentication):
		WriteError(w, "Неверное имя пользователя или пароль", http.StatusForbidden)
	case errors.Is(err, service.ErrInvalidToken):
		WriteError(w, "Недействительный или просроченный токен", http.StatusBadRequest)
	case errors.Is(err, service.ErrEditorOnly):
		WriteError(w, "Требуется роль Editor", http.StatusForbidden)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
