package article

import (
	"time"

	"github.com/quillpress/core/internal/models"
)

// SubmitRequest carries an article create or update submission. The same
// shape serves both; zero-value fields on update fall back to the stored
// row where noted.
type SubmitRequest struct {
	Title        string   `form:"title"         json:"title"`
	Slug         string   `form:"slug"          json:"slug"`
	Content      string   `form:"content"       json:"content"`
	Excerpt      string   `form:"excerpt"       json:"excerpt"`
	Status       string   `form:"status"        json:"status"`
	Visibility   string   `form:"visibility"    json:"visibility"`
	Password     string   `form:"password"      json:"password"`
	Featured     bool     `form:"featured"      json:"featured"`
	BreakingNews bool     `form:"breaking_news" json:"breaking_news"`
	CategoryIDs  []string `form:"category_ids"  json:"category_ids"`
	TagIDs       []string `form:"tag_ids"       json:"tag_ids"`
	// Publish forces status=published regardless of Status, subject to
	// the publish permission.
	Publish bool `form:"publish" json:"publish"`
}

// ListItem is one enriched listing row.
type ListItem struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Slug          string               `json:"slug"`
	Status        models.ArticleStatus `json:"status"`
	AuthorID      string               `json:"author_id"`
	AuthorName    string               `json:"author_name"`
	CategoryNames string               `json:"category_names"`
	Views         int                  `json:"views"`
	Featured      bool                 `json:"featured"`
	BreakingNews  bool                 `json:"breaking_news"`
	CreatedAt     time.Time            `json:"created_at"`
	PublishedAt   *time.Time           `json:"published_at"`
}

// BulkRequest names the ids and the transition to apply to all of them.
type BulkRequest struct {
	IDs    []string `json:"ids" binding:"required"`
	Action string   `json:"action" binding:"required"`
}
