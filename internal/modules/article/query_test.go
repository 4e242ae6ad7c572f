package article

import (
	"testing"

	"github.com/quillpress/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParseSortFieldAllowList(t *testing.T) {
	cases := map[string]SortField{
		"title":         SortTitle,
		"STATUS":        SortStatus,
		" created_at ":  SortCreatedAt,
		"published_at":  SortPublishedAt,
		"views":         SortViews,
		"author_name":   SortAuthorName,
		"id":            SortCreatedAt, // not allow-listed
		"views; DROP":   SortCreatedAt,
		"":              SortCreatedAt,
		"random_column": SortCreatedAt,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseSortField(raw), "input %q", raw)
	}
}

func TestParseSortDirDefaultsToDesc(t *testing.T) {
	assert.Equal(t, SortAsc, ParseSortDir("asc"))
	assert.Equal(t, SortAsc, ParseSortDir("ASC"))
	assert.Equal(t, SortDesc, ParseSortDir("desc"))
	assert.Equal(t, SortDesc, ParseSortDir(""))
	assert.Equal(t, SortDesc, ParseSortDir("sideways"))
}

func TestParseStatusFilterDropsInvalidSilently(t *testing.T) {
	assert.Equal(t, models.ArticlePublished, ParseStatusFilter("published"))
	assert.Equal(t, models.ArticleDraft, ParseStatusFilter(" Draft "))
	assert.Equal(t, models.ArticleStatus(""), ParseStatusFilter("bogus"))
	assert.Equal(t, models.ArticleStatus(""), ParseStatusFilter(""))
}

func TestSortFieldColumn(t *testing.T) {
	assert.Equal(t, "articles.title", SortTitle.Column())
	assert.Equal(t, "users.username", SortAuthorName.Column())
}
