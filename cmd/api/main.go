package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"lesoblog/cmd/app"
	"lesoblog/internal/config"
	handlers "lesoblog/internal/handler"
	"lesoblog/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler)
	router.HandleFunc("/health", handlers.HealthHandler)
	router.HandleFunc("/tables", handler.TablesHandler)

	router.HandleFunc("/tan_van", handler.StaticPage)
	router.HandleFunc("/dong_thoi_gian", handler.StaticPage)
	router.HandleFunc("/trieu_dinh_le_so", handler.StaticPage)
	router.HandleFunc("/nhan_vat_tieu_bieu", handler.StaticPage)

	router.HandleFunc("/api/auth/register", handler.Register)
	router.HandleFunc("/api/auth/login", handler.Login)
	router.HandleFunc("/api/auth/logout", handler.Logout)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken)
	router.HandleFunc("/api/auth/reset-password", handler.ResetPasswordRequest)
	router.HandleFunc("/api/auth/reset-password/{token}", handler.ResetPassword)
	router.HandleFunc("/reset_password/{token}", handler.VerifyResetToken)

	router.HandleFunc("/api/me", handler.GetCurrentUser)
	router.HandleFunc("/api/profile", handler.EditProfile)
	router.HandleFunc("/api/user/{username}", handler.GetUser)
	router.HandleFunc("/api/user/{username}/follow", handler.FollowUser)
	router.HandleFunc("/api/user/{username}/posts", handler.UserPosts)

	router.HandleFunc("/api/posts", handler.CreatePost)
	router.HandleFunc("/api/feed", handler.Feed)
	router.HandleFunc("/api/explore", handler.Explore)

	router.HandleFunc("/api/articles", handler.CreateArticle)
	router.HandleFunc("/api/articles/{id}", handler.GetArticle)
	router.HandleFunc("/api/articles/{id}/media", handler.AddMedia)
	router.HandleFunc("/api/categories", handler.CreateCategory)

	router.HandleFunc("/api/discussions", handler.CreateDiscussion)
	router.HandleFunc("/api/discussions/{name}/comments", handler.Comments)
	router.HandleFunc("/api/comments/{id}/vote", handler.VoteComment)

	handlerChain := middleware.Chain(
		router,
		middleware.LastSeenMiddleware(repo.User),
		middleware.AuthMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
