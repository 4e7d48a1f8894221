package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"goblog/internal/config"
	handlers "goblog/internal/handler"
)

type Middleware func(http.Handler) http.Handler

// isPublic: чтение постов и комментариев доступно без токена
func isPublic(r *http.Request) bool {
	publicPaths := []string{
		"/api/auth/register",
		"/api/auth/login",
		"/api/auth/refresh-token",
		"/health",
		"/",
	}

	for _, path := range publicPaths {
		if r.URL.Path == path {
			return true
		}
	}

	if r.Method == http.MethodGet &&
		(strings.HasPrefix(r.URL.Path, "/api/posts") || strings.HasPrefix(r.URL.Path, "/api/comments")) {
		return true
	}

	return false
}

// AuthMiddleware verifies the JWT token and adds user data to the context
func AuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			// Extracting the token from the header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handlers.WriteError(w, "UNAUTHORIZED", "требуется авторизация", http.StatusUnauthorized)
				return
			}

			// Checking the "Bearer <token>" format
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				handlers.WriteError(w, "UNAUTHORIZED", "неверный формат токена", http.StatusUnauthorized)
				return
			}

			tokenString := parts[1]

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
				}
				return []byte(cfg.JWTSecretKey), nil
			})

			if err != nil || !token.Valid {
				handlers.WriteError(w, "UNAUTHORIZED", "недействительный токен", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				handlers.WriteError(w, "UNAUTHORIZED", "неверные claims токена", http.StatusUnauthorized)
				return
			}

			// json numbers come back as float64
			userIDFloat, ok1 := claims["userId"].(float64)
			email, ok2 := claims["email"].(string)
			if !ok1 || !ok2 {
				handlers.WriteError(w, "UNAUTHORIZED", "неверные данные в токене", http.StatusUnauthorized)
				return
			}

			var roles []string
			if rawRoles, ok := claims["roles"].([]interface{}); ok {
				for _, role := range rawRoles {
					if s, ok := role.(string); ok {
						roles = append(roles, s)
					}
				}
			}

			// Adding user data to the context
			ctx := r.Context()
			ctx = context.WithValue(ctx, "userID", int64(userIDFloat))
			ctx = context.WithValue(ctx, "email", email)
			ctx = context.WithValue(ctx, "roles", roles)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Method: %s, URL: %s", r.Method, r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
