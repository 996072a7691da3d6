package models

import (
	"time"
)

const (
	RoleReader = "Reader"
	RoleEditor = "Editor"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Username               string    `json:"username" db:"username"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	AboutMe                string    `json:"aboutMe" db:"about_me"`
	Role                   string    `json:"role" db:"role"`
	LastSeen               time.Time `json:"lastSeen" db:"last_seen"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
}

// EditorProfile - дополнительные поля пользователя с ролью Editor
type EditorProfile struct {
	UserID      string `json:"userId" db:"user_id"`
	EditorRight int    `json:"editorRight" db:"editor_right"`
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Article struct {
	ArticleID  string    `json:"articleId" db:"article_id"`
	UserID     string    `json:"userId" db:"user_id"`
	CategoryID string    `json:"categoryId" db:"category_id"`
	Name       string    `json:"name" db:"name"`
	Body       string    `json:"body" db:"body"`
	Synopsis   string    `json:"synopsis" db:"synopsis"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	Tags       []Tag     `json:"tags" db:"-"`
	Media      []Media   `json:"media" db:"-"`
}

type Category struct {
	CategoryID string `json:"categoryId" db:"category_id"`
	Name       string `json:"name" db:"name"`
}

type Tag struct {
	TagID string `json:"tagId" db:"tag_id"`
	Name  string `json:"name" db:"name"`
}

type Media struct {
	MediaID     string    `json:"mediaId" db:"media_id"`
	Author      string    `json:"author" db:"author"`
	Source      string    `json:"source" db:"source"`
	SourceType  string    `json:"sourceType" db:"source_type"`
	RetrievedAt time.Time `json:"retrievedAt" db:"retrieved_at"`
	Link        string    `json:"link" db:"link"`
}

type Discussion struct {
	DiscussionID string `json:"discussionId" db:"discussion_id"`
	Name         string `json:"name" db:"name"`
}

type Comment struct {
	CommentID    string    `json:"commentId" db:"comment_id"`
	DiscussionID string    `json:"discussionId" db:"discussion_id"`
	UserID       string    `json:"userId" db:"user_id"`
	Body         string    `json:"body" db:"body"`
	Likes        int       `json:"likes" db:"likes"`
	Dislikes     int       `json:"dislikes" db:"dislikes"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
