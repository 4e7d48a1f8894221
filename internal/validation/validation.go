package validation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"goblog/internal/apperrors"
	"goblog/internal/models"
)

const (
	TitleMinLen       = 3
	TitleMaxLen       = 255
	PostContentMin    = 10
	CommentContentMin = 5
	UsernameMinLen    = 3
	UsernameMaxLen    = 30
	PasswordMinLen    = 6
)

var (
	validate   = validator.New()
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// RequireFields проверяет, что обязательные поля присутствуют и не пусты
// после обрезки пробелов. Возвращает InvalidInput для первого (по алфавиту)
// отсутствующего поля.
func RequireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return apperrors.InvalidInput(missing[0])
}

func userDetails(user *models.User) map[string]string {
	details := map[string]string{}

	nameLen := utf8.RuneCountInString(user.Username)
	if nameLen < UsernameMinLen || nameLen > UsernameMaxLen {
		details["username"] = fmt.Sprintf("имя пользователя должно содержать от %d до %d символов", UsernameMinLen, UsernameMaxLen)
	} else if !usernameRe.MatchString(user.Username) {
		details["username"] = "имя пользователя может содержать только латинские буквы, цифры и символы _.-"
	}

	if err := validate.Var(user.Email, "required,email"); err != nil {
		details["email"] = "неверный формат email"
	}

	if len(user.Roles) == 0 {
		details["roles"] = "у пользователя должна быть хотя бы одна роль"
	}

	return details
}

// ValidateUser применяет правила уровня сущности к профилю и собирает ВСЕ
// нарушения в карту поле -> сообщение
func ValidateUser(user *models.User) error {
	details := userDetails(user)
	if len(details) > 0 {
		return apperrors.Validation(details)
	}
	return nil
}

// ValidateNewUser дополнительно проверяет пароль при регистрации
func ValidateNewUser(user *models.User, password string) error {
	details := userDetails(user)

	if utf8.RuneCountInString(password) < PasswordMinLen {
		details["password"] = fmt.Sprintf("пароль должен быть не менее %d символов", PasswordMinLen)
	}

	if len(details) > 0 {
		return apperrors.Validation(details)
	}
	return nil
}

func ValidatePost(post *models.Post) error {
	details := map[string]string{}

	titleLen := utf8.RuneCountInString(post.Title)
	if titleLen < TitleMinLen || titleLen > TitleMaxLen {
		details["title"] = fmt.Sprintf("заголовок должен содержать от %d до %d символов", TitleMinLen, TitleMaxLen)
	}

	if utf8.RuneCountInString(post.Content) < PostContentMin {
		details["content"] = fmt.Sprintf("содержимое поста должно быть не менее %d символов", PostContentMin)
	}

	if len(details) > 0 {
		return apperrors.Validation(details)
	}
	return nil
}

func ValidateComment(comment *models.Comment) error {
	details := map[string]string{}

	if utf8.RuneCountInString(comment.Content) < CommentContentMin {
		details["content"] = fmt.Sprintf("содержимое комментария должно быть не менее %d символов", CommentContentMin)
	}

	if len(details) > 0 {
		return apperrors.Validation(details)
	}
	return nil
}

// CheckOwnership сравнивает идентификаторы, а не объекты: сущность может быть
// восстановлена из БД или кеша. Обхода для привилегированных ролей нет.
func CheckOwnership(ownerID, actingUserID int64) error {
	if ownerID != actingUserID {
		return apperrors.AccessDenied()
	}
	return nil
}

type UserByEmailGetter interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// CheckEmailUnique - предварительная проверка перед вставкой; гонки двух
// одновременных регистраций разрешает уникальный индекс в БД
func CheckEmailUnique(ctx context.Context, users UserByEmailGetter, email string) error {
	user, err := users.GetUserByEmail(ctx, email)
	if err == nil && user != nil {
		return apperrors.EmailExists(email)
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Code == "USER_NOT_FOUND" {
		return nil
	}

	return err
}
