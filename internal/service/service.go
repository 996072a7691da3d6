package service

import (
	"lesoblog/internal/config"
	"lesoblog/internal/mailer"
	"lesoblog/internal/repository"
	"lesoblog/internal/storage"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Feed       FeedService
	Post       PostService
	Article    ArticleService
	Discussion DiscussionService
	Tables     TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, mail mailer.Mailer) *Service {
	return &Service{
		Auth:       NewAuthService(rep.User, mail, cfg),
		User:       NewUserService(rep.User, cfg),
		Feed:       NewFeedService(rep.Follow, rep.User, cfg),
		Post:       NewPostService(rep.Post, rep.User, cfg),
		Article:    NewArticleService(rep.Article, rep.User, storage, cfg),
		Discussion: NewDiscussionService(rep.Discussion),
		Tables:     NewTablesService(rep.Tables),
	}
}
