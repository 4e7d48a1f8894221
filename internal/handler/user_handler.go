package handlers

import (
	"encoding/json"
	"net/http"

	"goblog/internal/service"
)

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "UNAUTHORIZED", "требуется аутентификация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор пользователя", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор пользователя", http.StatusBadRequest)
		return
	}

	actingUserID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "UNAUTHORIZED", "требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "INVALID_INPUT", "неверный формат запроса", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), service.UpdateUserRequest{
		UserID:       userID,
		ActingUserID: actingUserID,
		Username:     req.Username,
		Email:        req.Email,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "INVALID_INPUT", "неверный идентификатор пользователя", http.StatusBadRequest)
		return
	}

	actingUserID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "UNAUTHORIZED", "требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), userID, actingUserID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Пользователь удален"}, http.StatusOK)
}
