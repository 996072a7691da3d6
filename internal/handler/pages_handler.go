package handlers

import (
	"net/http"
)

type PageResponse struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// статичные страницы исторического раздела
var staticPages = map[string]PageResponse{
	"/tan_van":            {Slug: "tan_van", Title: "Tản văn"},
	"/dong_thoi_gian":     {Slug: "dong_thoi_gian", Title: "Dòng thời gian"},
	"/trieu_dinh_le_so":   {Slug: "trieu_dinh_le_so", Title: "Triều đình Lê sơ"},
	"/nhan_vat_tieu_bieu": {Slug: "nhan_vat_tieu_bieu", Title: "Nhân vật tiêu biểu"},
}

func (h *Handlers) StaticPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, ok := staticPages[r.URL.Path]
	if !ok {
		WriteError(w, "Страница не найдена", http.StatusNotFound)
		return
	}

	WriteSuccess(w, page, http.StatusOK)
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"service": "lesoblog"}, http.StatusOK)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

type TablesResponse struct {
	CountTables int `json:"countTables"`
}

func (h *Handlers) TablesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := h.TablesService.GetCountTablesBD(h.TablesRepo)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, TablesResponse{count}, http.StatusOK)
}
