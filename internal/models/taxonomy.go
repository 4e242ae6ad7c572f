package models

// CategoryModel groups articles.
type CategoryModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"type:varchar(250);uniqueIndex;not null"`
}

func (CategoryModel) TableName() string { return "categories" }

// TagModel labels articles.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (TagModel) TableName() string { return "tags" }
