package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"lesoblog/internal/service"
)

func pageParam(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Body string `json:"body" validate:"required,min=1,max=140"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := service.CreatePostRequest{
		UserID: userID,
		Body:   req.Body,
	}

	// creating a post
	post, err := h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

// Feed - лента текущего пользователя: свои посты плюс посты тех, на
// кого он подписан
func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	feedPage, err := h.FeedService.FollowedPosts(r.Context(), userID, pageParam(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, feedPage, http.StatusOK)
}

// Explore - все посты, новые сверху
func (h *Handlers) Explore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	feedPage, err := h.PostService.Explore(r.Context(), pageParam(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, feedPage, http.StatusOK)
}

// UserPosts - посты одного пользователя по username
func (h *Handlers) UserPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := mux.Vars(r)["username"]

	feedPage, err := h.PostService.UserPosts(r.Context(), username, pageParam(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, feedPage, http.StatusOK)
}
