package article

import (
	"testing"

	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestValidateSubmission(t *testing.T) {
	valid := func() *SubmitRequest {
		return &SubmitRequest{Title: "A Title", Content: "<p>body</p>"}
	}

	t.Run("accepts minimal submission", func(t *testing.T) {
		assert.NoError(t, ValidateSubmission(valid()))
	})

	t.Run("requires title", func(t *testing.T) {
		req := valid()
		req.Title = "   "
		assert.True(t, apperr.Is(ValidateSubmission(req), apperr.KindValidation))
	})

	t.Run("empty markup counts as no content", func(t *testing.T) {
		req := valid()
		req.Content = "<p>  </p><br><div></div>"
		assert.True(t, apperr.Is(ValidateSubmission(req), apperr.KindValidation))
	})

	t.Run("password protected requires password", func(t *testing.T) {
		req := valid()
		req.Visibility = string(models.VisibilityPasswordProtected)
		assert.True(t, apperr.Is(ValidateSubmission(req), apperr.KindValidation))

		req.Password = "s3cret"
		assert.NoError(t, ValidateSubmission(req))
	})

	t.Run("rejects unknown status and visibility", func(t *testing.T) {
		req := valid()
		req.Status = "scheduled"
		assert.Error(t, ValidateSubmission(req))

		req = valid()
		req.Visibility = "hidden"
		assert.Error(t, ValidateSubmission(req))
	})
}

func TestResolveWriteStatus(t *testing.T) {
	publisher := middleware.NewActorForTest("u1", models.PermPublishArticles)
	author := middleware.NewActorForTest("u2")

	t.Run("default is draft", func(t *testing.T) {
		assert.Equal(t, models.ArticleDraft, ResolveWriteStatus(author, "", false))
	})

	t.Run("publish signal wins when permitted", func(t *testing.T) {
		assert.Equal(t, models.ArticlePublished, ResolveWriteStatus(publisher, "draft", true))
	})

	t.Run("published downgrades to pending without permission", func(t *testing.T) {
		assert.Equal(t, models.ArticlePending, ResolveWriteStatus(author, "published", false))
		assert.Equal(t, models.ArticlePending, ResolveWriteStatus(author, "draft", true))
	})

	t.Run("non-published statuses pass through", func(t *testing.T) {
		assert.Equal(t, models.ArticleArchived, ResolveWriteStatus(author, "archived", false))
		assert.Equal(t, models.ArticlePending, ResolveWriteStatus(author, "pending", false))
	})
}

func TestCanEditOwnVersusOthers(t *testing.T) {
	own := middleware.NewActorForTest("u1", models.PermEditArticles)
	editor := middleware.NewActorForTest("u2", models.PermEditOthersArticles)
	nobody := middleware.NewActorForTest("u3")

	assert.True(t, CanEdit(own, "u1"))
	assert.False(t, CanEdit(own, "someone-else"))
	assert.True(t, CanEdit(editor, "someone-else"))
	// cross-author permission does not imply the own-article one
	assert.False(t, CanEdit(editor, "u2"))
	assert.False(t, CanEdit(nobody, "u3"))
	assert.False(t, CanEdit(nil, "u1"))
}

func TestCanDeleteOwnVersusOthers(t *testing.T) {
	own := middleware.NewActorForTest("u1", models.PermDeleteArticles)
	sweeper := middleware.NewActorForTest("u2", models.PermDeleteOthersArticles)

	assert.True(t, CanDelete(own, "u1"))
	assert.False(t, CanDelete(own, "other"))
	assert.True(t, CanDelete(sweeper, "other"))
	assert.False(t, CanDelete(sweeper, "u2"))
}

func TestCanTransition(t *testing.T) {
	publisher := middleware.NewActorForTest("u1", models.PermPublishArticles)
	editor := middleware.NewActorForTest("u2", models.PermEditArticles)

	// publishing needs only the publish permission, even for other authors
	assert.True(t, CanTransition(publisher, ActionPublish, "someone-else"))
	assert.True(t, CanTransition(publisher, ActionPublish, "u1"))
	assert.False(t, CanTransition(editor, ActionPublish, "u2"))

	assert.True(t, CanTransition(editor, ActionDraft, "u2"))
	assert.False(t, CanTransition(publisher, ActionDraft, "someone-else"))
	assert.False(t, CanTransition(publisher, ActionDelete, "u1"))
	assert.False(t, CanTransition(publisher, "archive", "u1"))
}

func TestNonBlankFiltersIds(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, nonBlank([]string{"a", " ", "", "b"}))
	assert.Empty(t, nonBlank([]string{"", "  "}))
}
