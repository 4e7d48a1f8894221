package apperrors

import (
	"fmt"
	"net/http"
)

// Error - доменная ошибка с машинным кодом для HTTP слоя
type Error struct {
	Code    string
	Status  int
	Message string
	Details map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func InvalidInput(field string) *Error {
	return &Error{
		Code:    "INVALID_INPUT",
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("отсутствует или пустое обязательное поле: %s", field),
		Details: map[string]string{field: "обязательное поле отсутствует или пустое"},
	}
}

func Validation(details map[string]string) *Error {
	return &Error{
		Code:    "VALIDATION_ERROR",
		Status:  http.StatusBadRequest,
		Message: "данные не прошли валидацию",
		Details: details,
	}
}

func UserNotFound(userID int64) *Error {
	return &Error{
		Code:    "USER_NOT_FOUND",
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("пользователь с ID %d не найден", userID),
	}
}

func UserNotFoundByEmail(email string) *Error {
	return &Error{
		Code:    "USER_NOT_FOUND",
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("пользователь с email %s не найден", email),
	}
}

func PostNotFound(postID int64) *Error {
	return &Error{
		Code:    "POST_NOT_FOUND",
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("пост с ID %d не найден", postID),
	}
}

func CommentNotFound(commentID int64) *Error {
	return &Error{
		Code:    "COMMENT_NOT_FOUND",
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("комментарий с ID %d не найден", commentID),
	}
}

func ImageNotFound(imageID int64) *Error {
	return &Error{
		Code:    "IMAGE_NOT_FOUND",
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("изображение с ID %d не найдено", imageID),
	}
}

func EmailExists(email string) *Error {
	return &Error{
		Code:    "EMAIL_EXISTS",
		Status:  http.StatusConflict,
		Message: fmt.Sprintf("пользователь с email %s уже существует", email),
	}
}

func UsernameExists(username string) *Error {
	return &Error{
		Code:    "USERNAME_EXISTS",
		Status:  http.StatusConflict,
		Message: fmt.Sprintf("пользователь с именем %s уже существует", username),
	}
}

func AccessDenied() *Error {
	return &Error{
		Code:    "ACCESS_DENIED",
		Status:  http.StatusForbidden,
		Message: "доступ запрещен",
	}
}

func Unauthorized(message string) *Error {
	return &Error{
		Code:    "UNAUTHORIZED",
		Status:  http.StatusUnauthorized,
		Message: message,
	}
}
