package pagination

import "strconv"

// Bounds - настраиваемые границы страничной выдачи
type Bounds struct {
	MinLimit     int
	MaxLimit     int
	DefaultLimit int
}

// Clamp приводит параметры page/limit из query string к безопасному диапазону.
// Ошибок не возвращает: нечисловые и выходящие за границы значения
// молча прижимаются к ближайшей границе.
func Clamp(pageStr, limitStr string, b Bounds) (int, int) {
	page := 1
	if v, err := strconv.Atoi(pageStr); err == nil && v > 1 {
		page = v
	}

	limit := b.DefaultLimit
	if v, err := strconv.Atoi(limitStr); err == nil {
		limit = v
	}

	if limit < b.MinLimit {
		limit = b.MinLimit
	}
	if limit > b.MaxLimit {
		limit = b.MaxLimit
	}

	return page, limit
}
