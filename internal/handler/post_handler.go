package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"goblog/internal/models"
	"goblog/internal/pagination"
	"goblog/internal/service"
)

// PostListItem - списочное представление: без содержимого, только счётчик
// комментариев
type PostListItem struct {
	PostID        int64      `json:"postId"`
	AuthorID      int64      `json:"authorId"`
	Title         string     `json:"title"`
	CommentsCount int        `json:"commentsCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

type PostsListResponse struct {
	Posts      []PostListItem    `json:"posts"`
	Pagination models.Pagination `json:"pagination"`
}

func (h *Handlers) bounds() pagination.Bounds {
	return pagination.Bounds{
		MinLimit:     h.Cfg.Pagination.MinLimit,
		MaxLimit:     h.Cfg.Pagination.MaxLimit,
		DefaultLimit: h.Cfg.Pagination.DefaultLimit,
	}
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination.Clamp(r.URL.Query().Get("page"), r.URL.Query().Get("limit"), h.bounds())

	result, err := h.PostService.GetPosts(r.Context(), page, limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	items := make([]PostListItem, 0, len(result.Posts))
	for _, post := range result.Posts {
		items = append(items, PostListItem{
			PostID:        post.PostID,
			AuthorID:      post.AuthorID,
			Title:         post.Title,
			CommentsCount: post.CommentsCount,
			CreatedAt:     post.CreatedAt,
			UpdatedAt:     post.UpdatedAt,
		})
	}

	WriteSuccess(w, PostsListResponse{
		Posts:      items,
		Pagination: result.Pagination,
	}, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор поста", http.StatusBadRequest)
		return
	}

	// detail view carries full content and images
	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	actingUserID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "UNAUTHORIZED", "требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "INVALID_INPUT", "неверный формат запроса", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		AuthorID: actingUserID,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор поста", http.StatusBadRequest)
		return
	}

	actingUserID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "UNAUTHORIZED", "требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "INVALID_INPUT", "неверный формат запроса", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), service.UpdatePostRequest{
		PostID:       postID,
		ActingUserID: actingUserID,
		Title:        req.Title,
		Content:      req.Content,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор поста", http.StatusBadRequest)
		return
	}

	actingUserID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "UNAUTHORIZED", "требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID, actingUserID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Пост удален"}, http.StatusOK)
}

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор поста", http.StatusBadRequest)
		return
	}

	actingUserID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "UNAUTHORIZED", "требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "INVALID_INPUT",
			fmt.Sprintf("файл слишком большой (макс. %d MB)", h.Cfg.MaxUploadSize/(1024*1024)),
			http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "INVALID_INPUT", "не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		WriteError(w, "INVALID_INPUT", "неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	image, err := h.PostService.AddImage(r.Context(), postID, actingUserID, header.Filename, file, header.Size)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, image, http.StatusCreated)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор поста", http.StatusBadRequest)
		return
	}

	imageID, ok := pathID(r, "imageId")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор изображения", http.StatusBadRequest)
		return
	}

	actingUserID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "UNAUTHORIZED", "требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.PostService.DeleteImage(r.Context(), postID, imageID, actingUserID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Изображение удалено"}, http.StatusOK)
}
