package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBounds() Bounds {
	return Bounds{MinLimit: 1, MaxLimit: 100, DefaultLimit: 20}
}

func TestClamp(t *testing.T) {
	t.Run("Отрицательная страница и огромный limit прижимаются к границам", func(t *testing.T) {
		page, limit := Clamp("-5", "10000", testBounds())
		assert.Equal(t, 1, page)
		assert.Equal(t, 100, limit)
	})

	t.Run("Нулевые значения прижимаются к нижним границам", func(t *testing.T) {
		page, limit := Clamp("0", "0", testBounds())
		assert.Equal(t, 1, page)
		assert.Equal(t, 1, limit)
	})

	t.Run("Пустые параметры дают значения по умолчанию", func(t *testing.T) {
		page, limit := Clamp("", "", testBounds())
		assert.Equal(t, 1, page)
		assert.Equal(t, 20, limit)
	})

	t.Run("Нечисловые параметры дают значения по умолчанию", func(t *testing.T) {
		page, limit := Clamp("abc", "xyz", testBounds())
		assert.Equal(t, 1, page)
		assert.Equal(t, 20, limit)
	})

	t.Run("Корректные значения проходят без изменений", func(t *testing.T) {
		page, limit := Clamp("3", "50", testBounds())
		assert.Equal(t, 3, page)
		assert.Equal(t, 50, limit)
	})
}
