package repository

import (
	"context"
	"errors"
	"fmt"
	"lesoblog/internal/models"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound - запрошенная строка отсутствует
var ErrNotFound = errors.New("запись не найдена")

// DuplicateError - нарушение уникального индекса (SQLSTATE 23505).
// Field указывает колонку, на которой сработало ограничение.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("значение поля %s уже занято", e.Field)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateLastSeen(ctx context.Context, userID string) error
	SetPassword(ctx context.Context, userID, password string) error
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	CreateEditorProfile(ctx context.Context, profile *models.EditorProfile) error
	GetEditorProfile(ctx context.Context, userID string) (*models.EditorProfile, error)
}

type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	FollowedPosts(ctx context.Context, userID string, limit, offset int) ([]models.Post, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Post, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Post, error)
}

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, articleID string) (*models.Article, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.Article, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error)
	GetOrCreateTag(ctx context.Context, name string) (*models.Tag, error)
	TagsByArticleID(ctx context.Context, articleID string) ([]models.Tag, error)
	AttachMedia(ctx context.Context, articleID string, media *models.Media) error
	MediaByArticleID(ctx context.Context, articleID string) ([]models.Media, error)
}

type DiscussionRepository interface {
	CreateDiscussion(ctx context.Context, discussion *models.Discussion) error
	GetDiscussionByName(ctx context.Context, name string) (*models.Discussion, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	CommentsByDiscussionID(ctx context.Context, discussionID string) ([]models.Comment, error)
	CommentsByUserID(ctx context.Context, userID string) ([]models.Comment, error)
	VoteComment(ctx context.Context, commentID string, like bool) error
}

type TablesRepository interface {
	CountTablesDB() (int, error)
}

type Repository struct {
	User       UserRepository
	Follow     FollowRepository
	Post       PostRepository
	Article    ArticleRepository
	Discussion DiscussionRepository
	Tables     TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:       NewUserRepository(db),
		Follow:     NewFollowRepository(db),
		Post:       NewPostRepository(db),
		Article:    NewArticleRepository(db),
		Discussion: NewDiscussionRepository(db),
		Tables:     NewTablesRepository(db),
	}
}
