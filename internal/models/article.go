package models

import "time"

// ArticleStatus is the workflow stage of an article, distinct from visibility.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePending   ArticleStatus = "pending"
	ArticlePublished ArticleStatus = "published"
	ArticleArchived  ArticleStatus = "archived"
)

// ArticleVisibility is the access-control mode of an article.
type ArticleVisibility string

const (
	VisibilityPublic            ArticleVisibility = "public"
	VisibilityPrivate           ArticleVisibility = "private"
	VisibilityPasswordProtected ArticleVisibility = "password_protected"
)

// ArticleModel is a CMS article.
type ArticleModel struct {
	Base
	Title         string            `json:"title"          gorm:"not null"`
	Slug          string            `json:"slug"           gorm:"type:varchar(250);uniqueIndex;not null"`
	Content       string            `json:"content"        gorm:"type:longtext"`
	Excerpt       string            `json:"excerpt"        gorm:"type:text"`
	Status        ArticleStatus     `json:"status"         gorm:"type:varchar(20);default:'draft';index"`
	Visibility    ArticleVisibility `json:"visibility"     gorm:"type:varchar(20);default:'public'"`
	Password      *string           `json:"-"`
	Featured      bool              `json:"featured"       gorm:"default:false"`
	BreakingNews  bool              `json:"breaking_news"  gorm:"default:false"`
	FeaturedImage *string           `json:"featured_image"`
	AuthorID      string            `json:"author_id"      gorm:"type:char(36);index;not null"`
	Author        *UserModel        `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Views         int               `json:"views"          gorm:"default:0"`
	PublishedAt   *time.Time        `json:"published_at"`

	Categories []CategoryModel `json:"categories,omitempty" gorm:"many2many:article_categories;"`
	Tags       []TagModel      `json:"tags,omitempty"       gorm:"many2many:article_tags;"`
}

func (ArticleModel) TableName() string { return "articles" }

// IsValidArticleStatus reports whether raw is a known article status.
func IsValidArticleStatus(raw string) bool {
	switch ArticleStatus(raw) {
	case ArticleDraft, ArticlePending, ArticlePublished, ArticleArchived:
		return true
	}
	return false
}

// IsValidVisibility reports whether raw is a known visibility mode.
func IsValidVisibility(raw string) bool {
	switch ArticleVisibility(raw) {
	case VisibilityPublic, VisibilityPrivate, VisibilityPasswordProtected:
		return true
	}
	return false
}
