package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"lesoblog/internal/models"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow добавляет ребро подписки. ON CONFLICT делает операцию
// идемпотентной даже при гонке двух одинаковых запросов.
func (r *followRepository) Follow(ctx context.Context, followerID, followedID string) error {
	query := `
		INSERT INTO followers (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	return nil
}

// Unfollow удаляет ребро. Отсутствие ребра не является ошибкой.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followedID string) error {
	query := `DELETE FROM followers WHERE follower_id = $1 AND followed_id = $2`

	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM followers
		WHERE follower_id = $1 AND followed_id = $2
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return count > 0, nil
}

// FollowedPosts возвращает ленту: объединение собственных постов и
// постов всех пользователей, на которых подписан userID, без
// дубликатов, новые сверху. Лента каждый раз считается заново.
func (r *followRepository) FollowedPosts(ctx context.Context, userID string, limit, offset int) ([]models.Post, error) {
	query := `
		SELECT p.post_id, p.user_id, p.body, p.created_at
		FROM posts p
		JOIN followers f ON f.followed_id = p.user_id
		WHERE f.follower_id = $1
		UNION
		SELECT p.post_id, p.user_id, p.body, p.created_at
		FROM posts p
		WHERE p.user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты: %w", err)
	}

	return posts, nil
}
