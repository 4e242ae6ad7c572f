package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSizeAllowList(t *testing.T) {
	for _, size := range []int{10, 25, 50, 100} {
		q := Normalize(1, size)
		assert.Equal(t, size, q.Size)
	}
	for _, size := range []int{0, -5, 7, 11, 99, 1000} {
		q := Normalize(1, size)
		assert.Equal(t, DefaultSize, q.Size, "size %d", size)
	}
}

func TestNormalizePageFloor(t *testing.T) {
	assert.Equal(t, 1, Normalize(0, 10).Page)
	assert.Equal(t, 1, Normalize(-3, 10).Page)
	assert.Equal(t, 7, Normalize(7, 10).Page)
}

func TestClampPage(t *testing.T) {
	// 45 rows at size 10 -> 5 pages
	page, total := ClampPage(3, 45, 10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 5, total)

	// beyond the end pulls back to the last page
	page, total = ClampPage(99, 45, 10)
	assert.Equal(t, 5, page)
	assert.Equal(t, 5, total)

	// empty result still reports one page
	page, total = ClampPage(4, 0, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, total)

	// exact multiple
	page, total = ClampPage(2, 20, 10)
	assert.Equal(t, 2, page)
	assert.Equal(t, 2, total)
}
