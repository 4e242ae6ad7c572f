package page

import (
	"testing"

	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	ok := &SubmitRequest{Title: "About", Content: "<p>hello</p>"}
	assert.NoError(t, Validate(ok))

	missingTitle := &SubmitRequest{Content: "<p>hello</p>"}
	assert.True(t, apperr.Is(Validate(missingTitle), apperr.KindValidation))

	emptyMarkup := &SubmitRequest{Title: "About", Content: "<div><p></p></div>"}
	assert.True(t, apperr.Is(Validate(emptyMarkup), apperr.KindValidation))

	badStatus := &SubmitRequest{Title: "About", Content: "x", Status: "pending"}
	assert.True(t, apperr.Is(Validate(badStatus), apperr.KindValidation))

	published := &SubmitRequest{Title: "About", Content: "x", Status: "published"}
	assert.NoError(t, Validate(published))
}

func TestStatusOrDefault(t *testing.T) {
	assert.Equal(t, models.PageDraft, statusOrDefault(""))
	assert.Equal(t, models.PagePublished, statusOrDefault("published"))
}
