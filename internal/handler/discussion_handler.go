package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"lesoblog/internal/service"
)

func (h *Handlers) CreateDiscussion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name string `json:"name" validate:"required,min=1,max=64"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	discussion, err := h.DiscussionService.CreateDiscussion(r.Context(), req.Name)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, discussion, http.StatusCreated)
}

// Comments обрабатывает список комментариев (GET) и добавление (POST)
// на одном маршруте
func (h *Handlers) Comments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listComments(w, r)
	case http.MethodPost:
		h.addComment(w, r)
	default:
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handlers) listComments(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	comments, err := h.DiscussionService.Comments(r.Context(), name)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) addComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	name := mux.Vars(r)["name"]

	var req struct {
		Body string `json:"body" validate:"required,min=1"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	comment, err := h.DiscussionService.AddComment(r.Context(), service.AddCommentRequest{
		DiscussionName: name,
		UserID:         userID,
		Body:           req.Body,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) VoteComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	commentID := mux.Vars(r)["id"]

	var req struct {
		Like bool `json:"like"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.DiscussionService.VoteComment(r.Context(), commentID, req.Like); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Голос учтен"}, http.StatusOK)
}
