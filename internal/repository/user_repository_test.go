package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"lesoblog/internal/models"
)

var userColumns = []string{
	"user_id", "username", "email", "password_hash", "about_me", "role",
	"last_seen", "refresh_token", "refresh_token_expiry_time",
}

func newMockRepo(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, UserRepository) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return sqlxDB, mock, NewUserRepository(sqlxDB)
}

func TestUserRepository_CreateUser(t *testing.T) {
	_, mock, repo := newMockRepo(t)

	ctx := context.Background()

	username := "TLC"
	email := "longchau21@gmail.com"
	password := "password123"

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		user := &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleReader,
		}

		mock.ExpectExec(`
			INSERT INTO users (user_id, username, email, password_hash, about_me, role, last_seen, refresh_token, refresh_token_expiry_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`).
			WithArgs(
				sqlmock.AnyArg(), // user_id генерируется в репозитории
				username,
				email,
				sqlmock.AnyArg(), // password_hash
				"",
				models.RoleReader,
				sqlmock.AnyArg(), // last_seen
				"",
				time.Time{},
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.NotEqual(t, password, user.PasswordHash)

		// хеш проверяется исходным паролем и только им
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("другой пароль")))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Нарушение уникального индекса username", func(t *testing.T) {
		user := &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleReader,
		}

		mock.ExpectExec(`
			INSERT INTO users (user_id, username, email, password_hash, about_me, role, last_seen, refresh_token, refresh_token_expiry_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_users_username"})

		err := repo.CreateUser(ctx, user, password)

		var dup *DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "username", dup.Field)
	})

	t.Run("Нарушение уникального индекса email", func(t *testing.T) {
		user := &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleReader,
		}

		mock.ExpectExec(`
			INSERT INTO users (user_id, username, email, password_hash, about_me, role, last_seen, refresh_token, refresh_token_expiry_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_users_email"})

		err := repo.CreateUser(ctx, user, password)

		var dup *DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "email", dup.Field)
	})
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	_, mock, repo := newMockRepo(t)

	ctx := context.Background()
	userID := uuid.New().String()
	now := time.Now()

	t.Run("Успешное получение пользователя", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow(userID, "TLC", "longchau21@gmail.com", "hashed", "обо мне", "Reader", now, "", now)

		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("TLC").
			WillReturnRows(rows)

		user, err := repo.GetUserByUsername(ctx, "TLC")

		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, "TLC", user.Username)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("nobody").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByUsername(ctx, "nobody")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	_, mock, repo := newMockRepo(t)

	ctx := context.Background()
	userID := uuid.New().String()
	now := time.Now()

	password := "correct-password"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("Верный пароль", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow(userID, "TLC", "longchau21@gmail.com", string(hash), "", "Reader", now, "", now)

		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("TLC").
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, "TLC", password)

		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow(userID, "TLC", "longchau21@gmail.com", string(hash), "", "Reader", now, "", now)

		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("TLC").
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, "TLC", "wrong-password")

		assert.Nil(t, user)
		assert.Error(t, err)
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	_, mock, repo := newMockRepo(t)

	ctx := context.Background()

	user := &models.User{
		UserID:   uuid.New().String(),
		Username: "TLC2",
		AboutMe:  "новое описание",
	}

	t.Run("Успешное обновление профиля", func(t *testing.T) {
		mock.ExpectExec(`
			UPDATE users
			SET username = ?, about_me = ?
			WHERE user_id = ?
		`).
			WithArgs(user.Username, user.AboutMe, user.UserID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateProfile(ctx, user)

		assert.NoError(t, err)
	})

	t.Run("Новый username уже занят", func(t *testing.T) {
		mock.ExpectExec(`
			UPDATE users
			SET username = ?, about_me = ?
			WHERE user_id = ?
		`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_users_username"})

		err := repo.UpdateProfile(ctx, user)

		var dup *DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "username", dup.Field)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectExec(`
			UPDATE users
			SET username = ?, about_me = ?
			WHERE user_id = ?
		`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateProfile(ctx, user)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_SetPassword(t *testing.T) {
	_, mock, repo := newMockRepo(t)

	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("Успешная смена пароля", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET password_hash = $1 WHERE user_id = $2`).
			WithArgs(sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetPassword(ctx, userID, "new-password")

		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET password_hash = $1 WHERE user_id = $2`).
			WithArgs(sqlmock.AnyArg(), userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetPassword(ctx, userID, "new-password")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_UpdateLastSeen(t *testing.T) {
	_, mock, repo := newMockRepo(t)

	ctx := context.Background()
	userID := uuid.New().String()

	mock.ExpectExec(`UPDATE users SET last_seen = CURRENT_TIMESTAMP WHERE user_id = $1`).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateLastSeen(ctx, userID)

	assert.NoError(t, err)
}
