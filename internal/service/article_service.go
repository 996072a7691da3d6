package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"lesoblog/internal/config"
	"lesoblog/internal/models"
	"lesoblog/internal/repository"
	"lesoblog/internal/storage"
)

type CreateArticleRequest struct {
	UserID     string   `json:"userId"`
	CategoryID string   `json:"categoryId"`
	Name       string   `json:"name"`
	Body       string   `json:"body"`
	Synopsis   string   `json:"synopsis"`
	Tags       []string `json:"tags"`
}

type ArticleService interface {
	CreateArticle(ctx context.Context, req CreateArticleRequest) (*models.Article, error)
	GetArticle(ctx context.Context, articleID string) (*models.Article, error)
	ArticlesByAuthor(ctx context.Context, userID string, page int) ([]models.Article, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	AddMedia(ctx context.Context, articleID, author, fileName string, file io.Reader, size int64) (*models.Media, error)
}

type articleService struct {
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
	storage     storage.Storage
	cfg         *config.Config
}

func NewArticleService(articleRepo repository.ArticleRepository, userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

// CreateArticle публикует статью. Доступно только роли Editor,
// категория обязательна, теги создаются по имени при необходимости.
func (s *articleService) CreateArticle(ctx context.Context, req CreateArticleRequest) (*models.Article, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if user.Role != models.RoleEditor {
		return nil, ErrEditorOnly
	}

	if req.CategoryID == "" {
		return nil, newValidationError("categoryId", "категория обязательна")
	}

	_, err = s.articleRepo.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newValidationError("categoryId", "категория не найдена")
		}
		return nil, err
	}

	article := &models.Article{
		UserID:     req.UserID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Body:       req.Body,
		Synopsis:   req.Synopsis,
	}

	for _, name := range req.Tags {
		tag, err := s.articleRepo.GetOrCreateTag(ctx, name)
		if err != nil {
			return nil, err
		}
		article.Tags = append(article.Tags, *tag)
	}

	err = s.articleRepo.Create(ctx, article)
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, newValidationError("name", "название статьи уже занято")
		}
		return nil, err
	}

	return article, nil
}

func (s *articleService) GetArticle(ctx context.Context, articleID string) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return article, nil
}

func (s *articleService) ArticlesByAuthor(ctx context.Context, userID string, page int) ([]models.Article, error) {
	if page < 1 {
		page = 1
	}

	limit := s.cfg.PostsPerPage
	offset := (page - 1) * limit

	return s.articleRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *articleService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: name}

	err := s.articleRepo.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	return category, nil
}

// AddMedia загружает файл в MinIO и привязывает запись multimedia к
// статье. При ошибке записи в БД загруженный объект удаляется.
func (s *articleService) AddMedia(ctx context.Context, articleID, author, fileName string, file io.Reader, size int64) (*models.Media, error) {
	_, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	objectName, link, err := s.storage.UploadMedia(ctx, articleID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки медиа в MinIO: %w", err)
	}

	media := &models.Media{
		Author:     author,
		Source:     objectName,
		SourceType: "upload",
		Link:       link,
	}

	err = s.articleRepo.AttachMedia(ctx, articleID, media)
	if err != nil {
		s.storage.DeleteMedia(ctx, objectName)
		return nil, fmt.Errorf("ошибка сохранения медиа в БД: %w", err)
	}

	return media, nil
}
