package service

import (
	"context"
	"errors"
	"fmt"

	"lesoblog/internal/config"
	"lesoblog/internal/models"
	"lesoblog/internal/repository"
)

type EditProfileRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	AboutMe  string `json:"aboutMe"`
}

type UserService interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	EditProfile(ctx context.Context, req EditProfileRequest) error
}

type userService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}

// EditProfile меняет username и about_me. Проверка занятости нового
// имени выполняется только если имя действительно меняется.
func (s *userService) EditProfile(ctx context.Context, req EditProfileRequest) error {
	// get user by id
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if req.Username != user.Username {
		existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
		if err == nil && existing != nil {
			return newValidationError("username", "имя пользователя уже занято")
		}
	}

	user.Username = req.Username
	user.AboutMe = req.AboutMe

	// update user
	err = s.userRepo.UpdateProfile(ctx, user)
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return newValidationError(dup.Field, "значение уже занято")
		}
		return fmt.Errorf("ошибка при обновлении профиля: %w", err)
	}

	return nil
}
