package handlers

import (
	"encoding/json"
	"net/http"

	"goblog/internal/pagination"
	"goblog/internal/service"
)

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор поста", http.StatusBadRequest)
		return
	}

	page, limit := pagination.Clamp(r.URL.Query().Get("page"), r.URL.Query().Get("limit"), h.bounds())

	result, err := h.CommentService.GetComments(r.Context(), postID, page, limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}

func (h *Handlers) GetComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор комментария", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.GetComment(r.Context(), commentID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
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
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "INVALID_INPUT", "неверный формат запроса", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.CreateComment(r.Context(), service.CreateCommentRequest{
		PostID:   postID,
		AuthorID: actingUserID,
		Content:  req.Content,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор комментария", http.StatusBadRequest)
		return
	}

	actingUserID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "UNAUTHORIZED", "требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Content *string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "INVALID_INPUT", "неверный формат запроса", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.UpdateComment(r.Context(), service.UpdateCommentRequest{
		CommentID:    commentID,
		ActingUserID: actingUserID,
		Content:      req.Content,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор комментария", http.StatusBadRequest)
		return
	}

	actingUserID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "UNAUTHORIZED", "требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.CommentService.DeleteComment(r.Context(), commentID, actingUserID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Комментарий удален"}, http.StatusOK)
}
