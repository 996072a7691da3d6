package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"lesoblog/internal/service"
)

func (h *Handlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet { // if get, then list own articles
		h.MyArticles(w, r)
		return
	}

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
		CategoryID string   `json:"categoryId" validate:"required"`
		Name       string   `json:"name" validate:"required,min=1,max=64"`
		Body       string   `json:"body" validate:"required"`
		Synopsis   string   `json:"synopsis" validate:"max=128"`
		Tags       []string `json:"tags"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := service.CreateArticleRequest{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Body:       req.Body,
		Synopsis:   req.Synopsis,
		Tags:       req.Tags,
	}

	article, err := h.ArticleService.CreateArticle(r.Context(), serviceReq)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, article, http.StatusCreated)
}

func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	articleID := mux.Vars(r)["id"]

	article, err := h.ArticleService.GetArticle(r.Context(), articleID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, article, http.StatusOK)
}

// MyArticles - статьи текущего редактора, новые сверху
func (h *Handlers) MyArticles(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	articles, err := h.ArticleService.ArticlesByAuthor(r.Context(), userID, pageParam(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, articles, http.StatusOK)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userRole, _ := r.Context().Value("role").(string)
	if userRole != "Editor" {
		WriteError(w, "Требуется роль Editor", http.StatusForbidden)
		return
	}

	var req struct {
		Name string `json:"name" validate:"required,min=1,max=50"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	category, err := h.ArticleService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, category, http.StatusCreated)
}

// AddMedia загружает файл и привязывает его к статье
func (h *Handlers) AddMedia(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userRole, _ := r.Context().Value("role").(string)
	if userRole != "Editor" {
		WriteError(w, "Требуется роль Editor", http.StatusForbidden)
		return
	}

	articleID := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "Файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	author, _ := r.Context().Value("username").(string)

	media, err := h.ArticleService.AddMedia(r.Context(), articleID, author, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, media, http.StatusCreated)
}
