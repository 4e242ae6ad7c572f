package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(Validation("bad input"))
	assert.True(t, ok)
	assert.Equal(t, KindValidation, kind)

	kind, ok = KindOf(Conflict("taken"))
	assert.True(t, ok)
	assert.Equal(t, KindConflict, kind)

	_, ok = KindOf(errors.New("driver: bad connection"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}

func TestKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("updating article: %w", Forbidden("no permission"))
	assert.True(t, Is(wrapped, KindForbidden))
	assert.False(t, Is(wrapped, KindNotFound))
}

func TestMessageIsUserFacing(t *testing.T) {
	err := NotFound("article not found")
	assert.Equal(t, "article not found", err.Error())
}
