package app

import (
	"context"
	"errors"
	"log"

	"lesoblog/internal/config"
	"lesoblog/internal/database"
	"lesoblog/internal/mailer"
	"lesoblog/internal/models"
	"lesoblog/internal/repository"
	"lesoblog/internal/service"
	"lesoblog/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	mail := mailer.NewSMTPMailer(cfg)

	services := service.NewService(repo, cfg, minioClient, mail)

	seedUsers(repo.User)

	return db, repo, services
}

// seedUsers создает стартовые аккаунты, если их еще нет
func seedUsers(userRepo repository.UserRepository) {
	ctx := context.Background()

	seeds := []struct {
		username string
		email    string
		password string
	}{
		{"TLC", "longchau21@gmail.com", "leso"},
		{"TTKT", "testemail@gmail.com", "leso"},
	}

	for _, seed := range seeds {
		_, err := userRepo.GetUserByUsername(ctx, seed.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("Ошибка при проверке стартового пользователя %s: %v", seed.username, err)
			continue
		}

		user := &models.User{
			Username: seed.username,
			Email:    seed.email,
			Role:     models.RoleReader,
		}

		if err := userRepo.CreateUser(ctx, user, seed.password); err != nil {
			log.Printf("Не удалось создать стартового пользователя %s: %v", seed.username, err)
			continue
		}

		log.Printf("Создан стартовый пользователь %s", seed.username)
	}
}
