package app

import (
	"log"

	"goblog/internal/cache"
	"goblog/internal/config"
	"goblog/internal/database"
	"goblog/internal/repository"
	"goblog/internal/service"
	"goblog/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *cache.RedisCache, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection Redis
	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("Не удалось инициализировать Redis: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, redisCache, minioClient)

	return db, redisCache, services
}
