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

type articleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if article.ArticleID == "" {
		article.ArticleID = uuid.New().String()
	}

	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO articles (article_id, user_id, category_id, name, body, synopsis, created_at)
		VALUES (:article_id, :user_id, :category_id, :name, :body, :synopsis, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, article)
	if err != nil {
		if dup := asDuplicate(err); dup != nil {
			return dup
		}
		return fmt.Errorf("ошибка при создании статьи: %w", err)
	}

	// m2m связи статьи с тегами
	for _, tag := range article.Tags {
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO article_tags (article_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT (article_id, tag_id) DO NOTHING
		`, article.ArticleID, tag.TagID)
		if err != nil {
			return fmt.Errorf("ошибка при привязке тега к статье: %w", err)
		}
	}

	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, articleID string) (*models.Article, error) {
	query := `SELECT article_id, user_id, category_id, name, body, synopsis, created_at FROM articles WHERE article_id = $1`

	var article models.Article
	err := r.db.GetContext(ctx, &article, query, articleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении статьи: %w", err)
	}

	article.Tags, err = r.TagsByArticleID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	article.Media, err = r.MediaByArticleID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	return &article, nil
}

func (r *articleRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Article, error) {
	query := `
		SELECT article_id, user_id, category_id, name, body, synopsis, created_at
		FROM articles
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	articles := []models.Article{}
	err := r.db.SelectContext(ctx, &articles, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статей пользователя: %w", err)
	}

	return articles, nil
}

func (r *articleRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.CategoryID == "" {
		category.CategoryID = uuid.New().String()
	}

	query := `
		INSERT INTO categories (category_id, name)
		VALUES (:category_id, :name)
	`

	_, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		return fmt.Errorf("ошибка при создании категории: %w", err)
	}

	return nil
}

func (r *articleRepository) GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error) {
	query := `SELECT * FROM categories WHERE category_id = $1`

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении категории: %w", err)
	}

	return &category, nil
}

func (r *articleRepository) GetOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag

	err := r.db.GetContext(ctx, &tag, `SELECT * FROM tags WHERE name = $1`, name)
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ошибка при поиске тега: %w", err)
	}

	tag = models.Tag{TagID: uuid.New().String(), Name: name}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO tags (tag_id, name)
		VALUES (:tag_id, :name)
	`, &tag)
	if err != nil {
		// проигравший гонку берет уже созданный тег
		if dup := asDuplicate(err); dup != nil {
			err = r.db.GetContext(ctx, &tag, `SELECT * FROM tags WHERE name = $1`, name)
			if err != nil {
				return nil, fmt.Errorf("ошибка при поиске тега: %w", err)
			}
			return &tag, nil
		}
		return nil, fmt.Errorf("ошибка при создании тега: %w", err)
	}

	return &tag, nil
}

func (r *articleRepository) TagsByArticleID(ctx context.Context, articleID string) ([]models.Tag, error) {
	query := `
		SELECT t.tag_id, t.name
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.tag_id
		WHERE at.article_id = $1
		ORDER BY t.name
	`

	tags := []models.Tag{}
	err := r.db.SelectContext(ctx, &tags, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов статьи: %w", err)
	}

	return tags, nil
}

func (r *articleRepository) AttachMedia(ctx context.Context, articleID string, media *models.Media) error {
	if media.MediaID == "" {
		media.MediaID = uuid.New().String()
	}

	if media.RetrievedAt.IsZero() {
		media.RetrievedAt = time.Now()
	}

	query := `
		INSERT INTO multimedia (media_id, author, source, source_type, retrieved_at, link)
		VALUES (:media_id, :author, :source, :source_type, :retrieved_at, :link)
	`

	_, err := r.db.NamedExecContext(ctx, query, media)
	if err != nil {
		return fmt.Errorf("ошибка при создании медиа: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO article_media (article_id, media_id)
		VALUES ($1, $2)
		ON CONFLICT (article_id, media_id) DO NOTHING
	`, articleID, media.MediaID)
	if err != nil {
		return fmt.Errorf("ошибка при привязке медиа к статье: %w", err)
	}

	return nil
}

func (r *articleRepository) MediaByArticleID(ctx context.Context, articleID string) ([]models.Media, error) {
	query := `
		SELECT m.media_id, m.author, m.source, m.source_type, m.retrieved_at, m.link
		FROM multimedia m
		JOIN article_media am ON am.media_id = m.media_id
		WHERE am.article_id = $1
		ORDER BY m.retrieved_at
	`

	media := []models.Media{}
	err := r.db.SelectContext(ctx, &media, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении медиа статьи: %w", err)
	}

	return media, nil
}
