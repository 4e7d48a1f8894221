package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"goblog/internal/config"
	"goblog/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	CommentService service.CommentService
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		PostService:    services.Post,
		CommentService: services.Comment,
		Cfg:            cfg,
		Validate:       validator.New(),
	}
}

// pathID извлекает числовой идентификатор из переменной маршрута
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// currentUserID возвращает идентификатор пользователя из контекста запроса
func currentUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value("userID").(int64)
	return userID, ok
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
