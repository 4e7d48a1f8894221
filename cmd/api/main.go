package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"goblog/cmd/app"
	"goblog/internal/config"
	handlers "goblog/internal/handler"
	"goblog/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, redisCache, services := app.App(cfg)
	defer db.CloseDB()
	defer redisCache.Close()

	handler := handlers.NewHandlers(services, cfg)

	r := mux.NewRouter()

	// setting up routes
	r.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	r.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id:[0-9]+}", handler.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id:[0-9]+}", handler.UpdateUser).Methods(http.MethodPut)
	r.HandleFunc("/api/users/{id:[0-9]+}", handler.DeleteUser).Methods(http.MethodDelete)

	r.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{id:[0-9]+}", handler.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{id:[0-9]+}", handler.UpdatePost).Methods(http.MethodPut)
	r.HandleFunc("/api/posts/{id:[0-9]+}", handler.DeletePost).Methods(http.MethodDelete)

	r.HandleFunc("/api/posts/{id:[0-9]+}/comments", handler.GetComments).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{id:[0-9]+}/comments", handler.CreateComment).Methods(http.MethodPost)
	r.HandleFunc("/api/comments/{id:[0-9]+}", handler.GetComment).Methods(http.MethodGet)
	r.HandleFunc("/api/comments/{id:[0-9]+}", handler.UpdateComment).Methods(http.MethodPut)
	r.HandleFunc("/api/comments/{id:[0-9]+}", handler.DeleteComment).Methods(http.MethodDelete)

	r.HandleFunc("/api/posts/{id:[0-9]+}/images", handler.AddImage).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{id:[0-9]+}/images/{imageId:[0-9]+}", handler.DeleteImage).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
