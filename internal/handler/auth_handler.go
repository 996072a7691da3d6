package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"lesoblog/internal/service"
)

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=2,max=64"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Password2 string `json:"password2" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=Reader Editor"`
}

type UserResponse struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AboutMe   string `json:"aboutMe"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// email verification
	patternEmail := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, err := regexp.MatchString(patternEmail, req.Email)
	if err != nil || !matched {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	// password verification
	if utf8.RuneCountInString(req.Password) < 6 {
		WriteError(w, "Пароль должен быть не менее 6 символов", http.StatusBadRequest)
		return
	}

	if req.Password != req.Password2 {
		WriteError(w, "Пароли не совпадают", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	// creating a form to create user
	serviceReq := service.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}

	// registering a user in the service
	user, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	// logging in right away
	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	// forming the response
	response := AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			UserID:    user.UserID,
			Username:  user.Username,
			Email:     user.Email,
			AboutMe:   user.AboutMe,
			Role:      user.Role,
			AvatarURL: service.AvatarURL(user, 128),
		},
	}

	WriteSuccess(w, response, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	// единый ответ и для неизвестного имени, и для неверного пароля
	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, "Неверное имя пользователя или пароль", http.StatusForbidden)
		return
	}

	// forming the response
	response := AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			UserID:    user.UserID,
			Username:  user.Username,
			Email:     user.Email,
			AboutMe:   user.AboutMe,
			Role:      user.Role,
			AvatarURL: service.AvatarURL(user, 128),
		},
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.AuthService.Logout(r.Context(), userID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Сессия завершена"}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	// check method
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// token missing
	if req.RefreshToken == "" {
		WriteError(w, "Отсуствует refreshToken", http.StatusBadRequest)
		return
	}

	// update accessToken and refreshToken
	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, "Refresh Token истек или недействителен", http.StatusBadRequest)
		return
	}

	response := AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			UserID:    user.UserID,
			Username:  user.Username,
			Email:     user.Email,
			AboutMe:   user.AboutMe,
			Role:      user.Role,
			AvatarURL: service.AvatarURL(user, 128),
		},
	}

	WriteSuccess(w, response, http.StatusOK)
}

// ResetPasswordRequest принимает email и всегда отвечает одинаково,
// чтобы не раскрывать, зарегистрирован ли адрес
func (h *Handlers) ResetPasswordRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{
		"message": "Если email зарегистрирован, письмо с инструкцией отправлено",
	}, http.StatusOK)
}

// VerifyResetToken проверяет токен из письма без смены пароля
func (h *Handlers) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := mux.Vars(r)["token"]

	user, err := h.AuthService.VerifyResetToken(r.Context(), token)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"username": user.Username}, http.StatusOK)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := mux.Vars(r)["token"]

	var req struct {
		Password  string `json:"password" validate:"required,min=6"`
		Password2 string `json:"password2" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.Password != req.Password2 {
		WriteError(w, "Пароли не совпадают", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), token, req.Password); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Пароль сброшен"}, http.StatusOK)
}
