package handlers

import (
	"github.com/go-playground/validator/v10"
	"lesoblog/internal/config"
	"lesoblog/internal/repository"
	"lesoblog/internal/service"
)

type Handlers struct {
	AuthService       service.AuthService
	UserService       service.UserService
	FeedService       service.FeedService
	PostService       service.PostService
	ArticleService    service.ArticleService
	DiscussionService service.DiscussionService
	TablesService     service.TablesService
	UserRepo          repository.UserRepository
	TablesRepo        repository.TablesRepository
	Cfg               *config.Config
	Validate          *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:       service.Auth,
		UserService:       service.User,
		FeedService:       service.Feed,
		PostService:       service.Post,
		ArticleService:    service.Article,
		DiscussionService: service.Discussion,
		TablesService:     service.Tables,
		UserRepo:          repo.User,
		TablesRepo:        repo.Tables,
		Cfg:               config,
		Validate:          validator.New(),
	}
}
