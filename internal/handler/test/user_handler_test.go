package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"lesoblog/internal/models"
	"lesoblog/internal/service"
)

func withUserID(req *http.Request, userID string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), "userID", userID))
}

func TestGetUserHandler(t *testing.T) {
	actorID := uuid.New().String()

	target := &models.User{
		UserID:   uuid.New().String(),
		Username: "TTKT",
		Email:    "testemail@gmail.com",
		AboutMe:  "обо мне",
		Role:     models.RoleReader,
		LastSeen: time.Now(),
	}

	t.Run("Профиль с признаком подписки", func(t *testing.T) {
		h, _, users, feed, _ := newTestHandlers()

		users.On("GetByUsername", mock.Anything, "TTKT").Return(target, nil)
		feed.On("IsFollowing", mock.Anything, actorID, "TTKT").Return(true, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/user/TTKT", nil)
		req = mux.SetURLVars(withUserID(req, actorID), map[string]string{"username": "TTKT"})
		rec := httptest.NewRecorder()

		h.GetUser(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "TTKT", resp["username"])
		assert.Equal(t, true, resp["following"])
		assert.Contains(t, resp["avatarUrl"], "gravatar.com/avatar/")
	})

	t.Run("Профиль неизвестного пользователя", func(t *testing.T) {
		h, _, users, _, _ := newTestHandlers()

		users.On("GetByUsername", mock.Anything, "nobody").Return(nil, service.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/user/nobody", nil)
		req = mux.SetURLVars(req, map[string]string{"username": "nobody"})
		rec := httptest.NewRecorder()

		h.GetUser(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Собственный профиль без проверки подписки", func(t *testing.T) {
		h, _, users, feed, _ := newTestHandlers()

		users.On("GetByUsername", mock.Anything, "TTKT").Return(target, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/user/TTKT", nil)
		req = mux.SetURLVars(withUserID(req, target.UserID), map[string]string{"username": "TTKT"})
		rec := httptest.NewRecorder()

		h.GetUser(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		feed.AssertNotCalled(t, "IsFollowing", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEditProfileHandler(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("Успешное обновление", func(t *testing.T) {
		h, _, users, _, _ := newTestHandlers()

		users.On("EditProfile", mock.Anything, service.EditProfileRequest{
			UserID:   actorID,
			Username: "TLC2",
			AboutMe:  "новое описание",
		}).Return(nil)

		req := jsonRequest(t, http.MethodPut, "/api/profile", map[string]string{
			"username": "TLC2",
			"aboutMe":  "новое описание",
		})
		req = withUserID(req, actorID)
		rec := httptest.NewRecorder()

		h.EditProfile(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Без аутентификации", func(t *testing.T) {
		h, _, users, _, _ := newTestHandlers()

		req := jsonRequest(t, http.MethodPut, "/api/profile", map[string]string{
			"username": "TLC2",
		})
		rec := httptest.NewRecorder()

		h.EditProfile(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		users.AssertNotCalled(t, "EditProfile", mock.Anything, mock.Anything)
	})

	t.Run("Занятое имя", func(t *testing.T) {
		h, _, users, _, _ := newTestHandlers()

		users.On("EditProfile", mock.Anything, mock.AnythingOfType("service.EditProfileRequest")).
			Return(&service.ValidationError{Fields: map[string]string{"username": "имя пользователя уже занято"}})

		req := jsonRequest(t, http.MethodPut, "/api/profile", map[string]string{
			"username": "TTKT",
		})
		req = withUserID(req, actorID)
		rec := httptest.NewRecorder()

		h.EditProfile(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFollowUserHandler(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("Подписка", func(t *testing.T) {
		h, _, _, feed, _ := newTestHandlers()

		feed.On("Follow", mock.Anything, actorID, "TTKT").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/user/TTKT/follow", nil)
		req = mux.SetURLVars(withUserID(req, actorID), map[string]string{"username": "TTKT"})
		rec := httptest.NewRecorder()

		h.FollowUser(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		feed.AssertCalled(t, "Follow", mock.Anything, actorID, "TTKT")
	})

	t.Run("Отписка", func(t *testing.T) {
		h, _, _, feed, _ := newTestHandlers()

		feed.On("Unfollow", mock.Anything, actorID, "TTKT").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/user/TTKT/follow", nil)
		req = mux.SetURLVars(withUserID(req, actorID), map[string]string{"username": "TTKT"})
		rec := httptest.NewRecorder()

		h.FollowUser(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		feed.AssertCalled(t, "Unfollow", mock.Anything, actorID, "TTKT")
	})

	t.Run("Подписка на самого себя", func(t *testing.T) {
		h, _, _, feed, _ := newTestHandlers()

		feed.On("Follow", mock.Anything, actorID, "TLC").Return(service.ErrSelfFollow)

		req := httptest.NewRequest(http.MethodPost, "/api/user/TLC/follow", nil)
		req = mux.SetURLVars(withUserID(req, actorID), map[string]string{"username": "TLC"})
		rec := httptest.NewRecorder()

		h.FollowUser(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Подписка на несуществующего пользователя", func(t *testing.T) {
		h, _, _, feed, _ := newTestHandlers()

		feed.On("Follow", mock.Anything, actorID, "nobody").Return(service.ErrNotFound)

		req := httptest.NewRequest(http.MethodPost, "/api/user/nobody/follow", nil)
		req = mux.SetURLVars(withUserID(req, actorID), map[string]string{"username": "nobody"})
		rec := httptest.NewRecorder()

		h.FollowUser(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Без аутентификации", func(t *testing.T) {
		h, _, _, feed, _ := newTestHandlers()

		req := httptest.NewRequest(http.MethodPost, "/api/user/TTKT/follow", nil)
		req = mux.SetURLVars(req, map[string]string{"username": "TTKT"})
		rec := httptest.NewRecorder()

		h.FollowUser(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		feed.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
	})
}
