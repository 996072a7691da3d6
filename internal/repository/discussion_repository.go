package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"lesoblog/internal/models"
)

type discussionRepository struct {
	db *sqlx.DB
}

func NewDiscussionRepository(db *sqlx.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) CreateDiscussion(ctx context.Context, discussion *models.Discussion) error {
	if discussion.DiscussionID == "" {
		discussion.DiscussionID = uuid.New().String()
	}

	query := `
		INSERT INTO discussions (discussion_id, name)
		VALUES (:discussion_id, :name)
	`

	_, err := r.db.NamedExecContext(ctx, query, discussion)
	if err != nil {
		if dup := asDuplicate(err); dup != nil {
			return dup
		}
		return fmt.Errorf("ошибка при создании обсуждения: %w", err)
	}

	return nil
}

func (r *discussionRepository) GetDiscussionByName(ctx context.Context, name string) (*models.Discussion, error) {
	query := `SELECT * FROM discussions WHERE name = $1`

	var discussion models.Discussion
	err := r.db.GetContext(ctx, &discussion, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении обсуждения: %w", err)
	}

	return &discussion, nil
}

func (r *discussionRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO comments (comment_id, discussion_id, user_id, body, likes, dislikes, created_at)
		VALUES (:comment_id, :discussion_id, :user_id, :body, :likes, :dislikes, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *discussionRepository) CommentsByDiscussionID(ctx context.Context, discussionID string) ([]models.Comment, error) {
	query := `
		SELECT * FROM comments
		WHERE discussion_id = $1
		ORDER BY created_at DESC
	`

	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, discussionID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев обсуждения: %w", err)
	}

	return comments, nil
}

func (r *discussionRepository) CommentsByUserID(ctx context.Context, userID string) ([]models.Comment, error) {
	query := `
		SELECT * FROM comments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев пользователя: %w", err)
	}

	return comments, nil
}

func (r *discussionRepository) VoteComment(ctx context.Context, commentID string, like bool) error {
	query := `UPDATE comments SET likes = likes + 1 WHERE comment_id = $1`
	if !like {
		query = `UPDATE comments SET dislikes = dislikes + 1 WHERE comment_id = $1`
	}

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("ошибка при голосовании за комментарий: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
