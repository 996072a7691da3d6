package service

import (
	"context"
	"errors"
	"fmt"

	"lesoblog/internal/config"
	"lesoblog/internal/models"
	"lesoblog/internal/repository"
)

// FeedPage - страница ленты с признаками соседних страниц
type FeedPage struct {
	Posts   []models.Post `json:"posts"`
	Page    int           `json:"page"`
	HasNext bool          `json:"hasNext"`
	HasPrev bool          `json:"hasPrev"`
}

type FeedService interface {
	Follow(ctx context.Context, actorID, targetUsername string) error
	Unfollow(ctx context.Context, actorID, targetUsername string) error
	IsFollowing(ctx context.Context, actorID, targetUsername string) (bool, error)
	FollowedPosts(ctx context.Context, userID string, page int) (*FeedPage, error)
}

type feedService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	cfg        *config.Config
}

func NewFeedService(followRepo repository.FollowRepository, userRepo repository.UserRepository, cfg *config.Config) FeedService {
	return &feedService{
		followRepo: followRepo,
		userRepo:   userRepo,
		cfg:        cfg,
	}
}

func (s *feedService) resolveTarget(ctx context.Context, actorID, targetUsername string) (*models.User, error) {
	target, err := s.userRepo.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}

	// подписка на самого себя отклоняется здесь, в одном месте
	if target.UserID == actorID {
		return nil, ErrSelfFollow
	}

	return target, nil
}

// Follow идемпотентен: повторная подписка на того же пользователя - no-op.
func (s *feedService) Follow(ctx context.Context, actorID, targetUsername string) error {
	target, err := s.resolveTarget(ctx, actorID, targetUsername)
	if err != nil {
		return err
	}

	following, err := s.followRepo.IsFollowing(ctx, actorID, target.UserID)
	if err != nil {
		return err
	}
	if following {
		return nil
	}

	return s.followRepo.Follow(ctx, actorID, target.UserID)
}

// Unfollow идемпотентен: отписка без подписки - no-op.
func (s *feedService) Unfollow(ctx context.Context, actorID, targetUsername string) error {
	target, err := s.resolveTarget(ctx, actorID, targetUsername)
	if err != nil {
		return err
	}

	following, err := s.followRepo.IsFollowing(ctx, actorID, target.UserID)
	if err != nil {
		return err
	}
	if !following {
		return nil
	}

	return s.followRepo.Unfollow(ctx, actorID, target.UserID)
}

func (s *feedService) IsFollowing(ctx context.Context, actorID, targetUsername string) (bool, error) {
	target, err := s.resolveTarget(ctx, actorID, targetUsername)
	if err != nil {
		return false, err
	}

	return s.followRepo.IsFollowing(ctx, actorID, target.UserID)
}

// FollowedPosts возвращает страницу ленты. Запрашивается на одну
// строку больше лимита, чтобы узнать о следующей странице без
// отдельного COUNT.
func (s *feedService) FollowedPosts(ctx context.Context, userID string, page int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}

	limit := s.cfg.PostsPerPage
	offset := (page - 1) * limit

	posts, err := s.followRepo.FollowedPosts(ctx, userID, limit+1, offset)
	if err != nil {
		return nil, err
	}

	hasNext := len(posts) > limit
	if hasNext {
		posts = posts[:limit]
	}

	return &FeedPage{
		Posts:   posts,
		Page:    page,
		HasNext: hasNext,
		HasPrev: page > 1,
	}, nil
}
