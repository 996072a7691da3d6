package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"lesoblog/internal/service"
)

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// get user by id
	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	// forming the response
	response := UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		AboutMe:   user.AboutMe,
		Role:      user.Role,
		AvatarURL: service.AvatarURL(user, 128),
	}

	WriteSuccess(w, response, http.StatusOK)
}

// GetUser возвращает публичный профиль по username
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := mux.Vars(r)["username"]

	user, err := h.UserService.GetByUsername(r.Context(), username)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	actorID, _ := r.Context().Value("userID").(string)

	following := false
	if actorID != "" && actorID != user.UserID {
		following, _ = h.FeedService.IsFollowing(r.Context(), actorID, username)
	}

	response := map[string]interface{}{
		"userId":    user.UserID,
		"username":  user.Username,
		"aboutMe":   user.AboutMe,
		"role":      user.Role,
		"lastSeen":  user.LastSeen,
		"avatarUrl": service.AvatarURL(user, 128),
		"following": following,
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) EditProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Username string `json:"username" validate:"required,min=2,max=64"`
		AboutMe  string `json:"aboutMe" validate:"max=140"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := service.EditProfileRequest{
		UserID:   userID,
		Username: req.Username,
		AboutMe:  req.AboutMe,
	}

	if err := h.UserService.EditProfile(r.Context(), serviceReq); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Профиль обновлен"}, http.StatusOK)
}

// FollowUser обрабатывает подписку (POST) и отписку (DELETE) на одном
// маршруте
func (h *Handlers) FollowUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actorID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	username := mux.Vars(r)["username"]

	var err error
	var message string

	if r.Method == http.MethodPost {
		err = h.FeedService.Follow(r.Context(), actorID, username)
		message = "Вы подписаны на пользователя " + username
	} else {
		err = h.FeedService.Unfollow(r.Context(), actorID, username)
		message = "Вы отписаны от пользователя " + username
	}

	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": message}, http.StatusOK)
}
