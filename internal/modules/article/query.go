package article

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/pkg/pagination"
)

// SortField is the typed allow-list of sortable listing columns. Anything
// outside the list falls back to SortCreatedAt so raw request input never
// reaches an ORDER BY clause.
type SortField string

const (
	SortTitle       SortField = "title"
	SortStatus      SortField = "status"
	SortCreatedAt   SortField = "created_at"
	SortPublishedAt SortField = "published_at"
	SortViews       SortField = "views"
	SortAuthorName  SortField = "author_name"
)

// SortDir is the sort direction, defaulting to descending.
type SortDir string

const (
	SortAsc  SortDir = "ASC"
	SortDesc SortDir = "DESC"
)

// ListQuery is the full set of listing parameters after validation.
type ListQuery struct {
	Page       pagination.Query
	AuthorID   string
	Status     models.ArticleStatus // "" means all
	CategoryID string
	Search     string
	Sort       SortField
	Dir        SortDir
}

// ParseSortField maps raw input onto the allow-list.
func ParseSortField(raw string) SortField {
	switch SortField(strings.ToLower(strings.TrimSpace(raw))) {
	case SortTitle:
		return SortTitle
	case SortStatus:
		return SortStatus
	case SortCreatedAt:
		return SortCreatedAt
	case SortPublishedAt:
		return SortPublishedAt
	case SortViews:
		return SortViews
	case SortAuthorName:
		return SortAuthorName
	}
	return SortCreatedAt
}

// ParseSortDir maps raw input onto ASC/DESC, defaulting to DESC.
func ParseSortDir(raw string) SortDir {
	if strings.EqualFold(strings.TrimSpace(raw), "asc") {
		return SortAsc
	}
	return SortDesc
}

// ParseStatusFilter returns the status filter, or "" when the raw value is
// not a known status. Invalid filters are dropped silently, never rejected.
func ParseStatusFilter(raw string) models.ArticleStatus {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if models.IsValidArticleStatus(raw) {
		return models.ArticleStatus(raw)
	}
	return ""
}

// Column returns the SQL expression a sort field orders by. author_name
// sorts on the joined author row.
func (f SortField) Column() string {
	if f == SortAuthorName {
		return "users.username"
	}
	return "articles." + string(f)
}

// ListQueryFromContext parses every listing parameter from the URL.
func ListQueryFromContext(c *gin.Context) ListQuery {
	return ListQuery{
		Page:       pagination.FromContext(c),
		AuthorID:   strings.TrimSpace(c.Query("author")),
		Status:     ParseStatusFilter(c.Query("status")),
		CategoryID: strings.TrimSpace(c.Query("category")),
		Search:     strings.TrimSpace(c.Query("search")),
		Sort:       ParseSortField(c.Query("sort")),
		Dir:        ParseSortDir(c.Query("dir")),
	}
}
