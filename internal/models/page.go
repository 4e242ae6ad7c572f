package models

// PageStatus is the workflow stage of a static page.
type PageStatus string

const (
	PageDraft     PageStatus = "draft"
	PagePublished PageStatus = "published"
)

// PageModel is a static page. Page slugs live in their own namespace,
// separate from article slugs.
type PageModel struct {
	Base
	Title    string     `json:"title"     gorm:"not null"`
	Slug     string     `json:"slug"      gorm:"type:varchar(250);uniqueIndex;not null"`
	Content  string     `json:"content"   gorm:"type:longtext"`
	Status   PageStatus `json:"status"    gorm:"type:varchar(20);default:'draft';index"`
	AuthorID string     `json:"author_id" gorm:"type:char(36);index;not null"`
	Author   *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (PageModel) TableName() string { return "pages" }
