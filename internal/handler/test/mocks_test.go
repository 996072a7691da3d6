package test

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"lesoblog/internal/config"
	handlers "lesoblog/internal/handler"
	"lesoblog/internal/models"
	"lesoblog/internal/service"
)

func newTestHandlers() (*handlers.Handlers, *MockAuthService, *MockUserService, *MockFeedService, *MockUserRepository) {
	auth := new(MockAuthService)
	users := new(MockUserService)
	feed := new(MockFeedService)
	userRepo := new(MockUserRepository)

	h := &handlers.Handlers{
		AuthService: auth,
		UserService: users,
		FeedService: feed,
		UserRepo:    userRepo,
		Cfg:         &config.Config{PostsPerPage: 20},
		Validate:    validator.New(),
	}

	return h, auth, users, feed, userRepo
}

// MockAuthService - двойник сервиса аутентификации
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) IssueResetToken(user *models.User, ttl time.Duration) (string, error) {
	args := m.Called(user, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) VerifyResetToken(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	args := m.Called(ctx, tokenString, newPassword)
	return args.Error(0)
}

// MockUserService - двойник сервиса пользователей
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) EditProfile(ctx context.Context, req service.EditProfileRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockFeedService - двойник сервиса ленты и подписок
type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Follow(ctx context.Context, actorID, targetUsername string) error {
	args := m.Called(ctx, actorID, targetUsername)
	return args.Error(0)
}

func (m *MockFeedService) Unfollow(ctx context.Context, actorID, targetUsername string) error {
	args := m.Called(ctx, actorID, targetUsername)
	return args.Error(0)
}

func (m *MockFeedService) IsFollowing(ctx context.Context, actorID, targetUsername string) (bool, error) {
	args := m.Called(ctx, actorID, targetUsername)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeedService) FollowedPosts(ctx context.Context, userID string, page int) (*service.FeedPage, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FeedPage), args.Error(1)
}

// MockUserRepository - двойник репозитория пользователей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastSeen(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetPassword(ctx context.Context, userID, password string) error {
	args := m.Called(ctx, userID, password)
	return args.Error(0)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) CreateEditorProfile(ctx context.Context, profile *models.EditorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) GetEditorProfile(ctx context.Context, userID string) (*models.EditorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EditorProfile), args.Error(1)
}
