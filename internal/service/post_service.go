package service

import (
	"context"
	"errors"

	"lesoblog/internal/config"
	"lesoblog/internal/models"
	"lesoblog/internal/repository"
)

type CreatePostRequest struct {
	UserID string `json:"userId"`
	Body   string `json:"body"`
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UserPosts(ctx context.Context, username string, page int) (*FeedPage, error)
	Explore(ctx context.Context, page int) (*FeedPage, error)
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID: req.UserID,
		Body:   req.Body,
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) page(posts []models.Post, page int) *FeedPage {
	limit := p.cfg.PostsPerPage

	hasNext := len(posts) > limit
	if hasNext {
		posts = posts[:limit]
	}

	return &FeedPage{
		Posts:   posts,
		Page:    page,
		HasNext: hasNext,
		HasPrev: page > 1,
	}
}

// UserPosts - посты одного пользователя, новые сверху
func (p *postService) UserPosts(ctx context.Context, username string, page int) (*FeedPage, error) {
	user, err := p.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if page < 1 {
		page = 1
	}

	limit := p.cfg.PostsPerPage
	offset := (page - 1) * limit

	posts, err := p.postRepo.GetByUserID(ctx, user.UserID, limit+1, offset)
	if err != nil {
		return nil, err
	}

	return p.page(posts, page), nil
}

// Explore - все посты всех пользователей, новые сверху
func (p *postService) Explore(ctx context.Context, page int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}

	limit := p.cfg.PostsPerPage
	offset := (page - 1) * limit

	posts, err := p.postRepo.GetAll(ctx, limit+1, offset)
	if err != nil {
		return nil, err
	}

	return p.page(posts, page), nil
}
