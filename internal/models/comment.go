package models

// CommentStatus is the moderation state of a comment. Spam and trash are the
// soft-deleted states; permanent deletion is only allowed from those two.
type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentSpam     CommentStatus = "spam"
	CommentTrash    CommentStatus = "trash"
)

// CommentModel is a reader comment on an article.
type CommentModel struct {
	Base
	Content     string        `json:"content"    gorm:"type:text;not null"`
	Status      CommentStatus `json:"status"     gorm:"type:varchar(20);default:'pending';index"`
	ArticleID   string        `json:"article_id" gorm:"type:char(36);index;not null"`
	Article     *ArticleModel `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
	UserID      *string       `json:"user_id"    gorm:"type:char(36);index"` // nil for guests
	User        *UserModel    `json:"user,omitempty"    gorm:"foreignKey:UserID"`
	AuthorName  string        `json:"author_name"`
	AuthorEmail string        `json:"author_email"`
	ParentID    *string       `json:"parent_id"  gorm:"type:char(36);index"`
	IP          string        `json:"-"`
}

func (CommentModel) TableName() string { return "comments" }

// IsSoftDeleted reports whether the comment is in a state that permits
// permanent deletion.
func (c *CommentModel) IsSoftDeleted() bool {
	return c.Status == CommentSpam || c.Status == CommentTrash
}
