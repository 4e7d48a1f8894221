package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"goblog/internal/apperrors"
)

// ErrorResponse - стандартный ответ с ошибкой: машинный код, человекочитаемое
// сообщение и карта поле -> сообщение для ошибок валидации
type ErrorResponse struct {
	Code    string            `json:"code"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, code, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Code: code, Error: message})
}

// WriteAppError отображает доменную ошибку в HTTP ответ 1:1;
// всё нераспознанное уходит как 500
func WriteAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(appErr.Status)
		json.NewEncoder(w).Encode(ErrorResponse{
			Code:    appErr.Code,
			Error:   appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	log.Printf("Внутренняя ошибка: %v", err)
	WriteError(w, "INTERNAL_ERROR", "внутренняя ошибка сервера", http.StatusInternalServerError)
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
