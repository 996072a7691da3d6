package service

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"lesoblog/internal/config"
	"lesoblog/internal/mailer"
	"lesoblog/internal/models"
	"lesoblog/internal/repository"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, string, error)
	Logout(ctx context.Context, userID string) error
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	IssueResetToken(user *models.User, ttl time.Duration) (string, error)
	VerifyResetToken(ctx context.Context, tokenString string) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, tokenString, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	mail     mailer.Mailer
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, mail mailer.Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		mail:     mail,
		cfg:      cfg,
	}
}

// AvatarURL строит адрес аватара на gravatar из md5-хеша email в
// нижнем регистре. Чистая функция, сетевых вызовов нет.
func AvatarURL(user *models.User, size int) string {
	digest := md5.Sum([]byte(strings.ToLower(user.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}

// Register создает пользователя. Предварительная проверка занятости
// username/email дает понятные ошибки формы, но настоящая гарантия -
// уникальные индексы в базе: нарушение тоже превращается в
// ValidationError, а не в отказ сервиса.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	fields := map[string]string{}

	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err == nil && existing != nil {
		fields["username"] = "имя пользователя уже занято"
	}

	existing, err = s.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		fields["email"] = "email уже занят"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	role := req.Role
	if role == "" {
		role = models.RoleReader
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     role,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		// проигрыш гонки на уникальном индексе
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, newValidationError(dup.Field, "значение уже занято")
		}
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	if user.Role == models.RoleEditor {
		err = s.userRepo.CreateEditorProfile(ctx, &models.EditorProfile{
			UserID:      user.UserID,
			EditorRight: 1,
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка при создании профиля редактора: %w", err)
		}
	}

	return user, nil
}

// Login проверяет пароль и выдает пару access/refresh токенов.
// Неизвестный username и неверный пароль неразличимы для клиента.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		return nil, "", "", ErrAuthentication
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	refreshToken, refreshTokenExpiry, err := s.generateRefreshToken()
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации refresh token: %w", err)
	}

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка сохранения refresh token: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	// сброс refresh-токена завершает сессию
	err := s.userRepo.UpdateRefreshToken(ctx, userID, "", time.Now())
	if err != nil {
		return fmt.Errorf("ошибка при завершении сессии: %w", err)
	}

	return nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("недействительный refresh token: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	newRefreshToken, refreshTokenExpiry, err := s.generateRefreshToken()
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации refresh token: %w", err)
	}

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, newRefreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка обновления refresh token: %w", err)
	}

	return user, accessToken, newRefreshToken, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId":   user.UserID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time, error) {
	refreshToken := uuid.New().String()

	expiryTime := time.Now().Add(s.cfg.RefreshTokenDuration)

	return refreshToken, expiryTime, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	return token, nil
}

// IssueResetToken выдает подписанный HS256 токен с id пользователя и
// сроком действия в claims reset_password/exp.
func (s *authService) IssueResetToken(user *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"reset_password": user.UserID,
		"exp":            time.Now().Add(ttl).Unix(),
		"iat":            time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи reset-токена: %w", err)
	}

	return tokenString, nil
}

// VerifyResetToken возвращает пользователя по токену. Любой сбой
// проверки дает один и тот же ErrInvalidToken: причина намеренно не
// раскрывается.
func (s *authService) VerifyResetToken(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["reset_password"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}

// RequestPasswordReset отправляет письмо, если пользователь существует.
// Ответ одинаков в обоих случаях, чтобы не раскрывать наличие email.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("ошибка при поиске пользователя: %w", err)
	}

	tokenString, err := s.IssueResetToken(user, s.cfg.ResetTokenDuration)
	if err != nil {
		return err
	}

	// fire-and-forget, ответа о доставке нет
	go func() {
		if err := s.mail.SendPasswordResetEmail(user, tokenString); err != nil {
			log.Printf("Письмо для сброса пароля не отправлено: %v", err)
		}
	}()

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	user, err := s.VerifyResetToken(ctx, tokenString)
	if err != nil {
		return err
	}

	err = s.userRepo.SetPassword(ctx, user.UserID, newPassword)
	if err != nil {
		return fmt.Errorf("ошибка при установке нового пароля: %w", err)
	}

	return nil
}
