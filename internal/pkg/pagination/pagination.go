package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillpress/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
)

// AllowedSizes is the page-size allow-list; any other requested value falls
// back to DefaultSize.
var AllowedSizes = []int{10, 25, 50, 100}

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext extracts and validates pagination params from the request.
// Listing state is carried entirely in the URL (`page`, `limit`) so views
// stay link-shareable.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	size := parseIntOr(c.DefaultQuery("limit", "10"), DefaultSize)
	return Normalize(page, size)
}

// Normalize clamps the page floor and enforces the size allow-list.
func Normalize(page, size int) Query {
	if page < 1 {
		page = DefaultPage
	}
	allowed := false
	for _, s := range AllowedSizes {
		if size == s {
			allowed = true
			break
		}
	}
	if !allowed {
		size = DefaultSize
	}
	return Query{Page: page, Size: size}
}

// ClampPage pulls a page number beyond the last page back to the last valid
// page once the total is known. A page beyond the end returns the last page,
// not an empty result.
func ClampPage(page int, total int64, size int) (int, int) {
	totalPage := int((total + int64(size) - 1) / int64(size))
	if totalPage < 1 {
		totalPage = 1
	}
	if page > totalPage {
		page = totalPage
	}
	if page < 1 {
		page = 1
	}
	return page, totalPage
}

// Paginate counts the query, clamps the requested page, then applies
// limit/offset and returns the pagination metadata.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}

	page, totalPage := ClampPage(q.Page, total, q.Size)
	offset := (page - 1) * q.Size
	if err := db.Offset(offset).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	return response.Pagination{
		Total:       total,
		CurrentPage: page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: page < totalPage,
	}, nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
