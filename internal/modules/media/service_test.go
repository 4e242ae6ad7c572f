package media

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/quillpress/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestValidateAcceptsAllowedImages(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.gif", "e.webp"} {
		assert.NoError(t, Validate(header(name, 1024)), name)
	}
}

func TestValidateRejectsUnknownExtension(t *testing.T) {
	for _, name := range []string{"doc.pdf", "run.exe", "script.php.jpg.svg", "noext"} {
		err := Validate(header(name, 1024))
		assert.True(t, apperr.Is(err, apperr.KindValidation), name)
	}
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	err := Validate(header("big.png", 5<<20+1))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	assert.NoError(t, Validate(header("exact.png", 5<<20)))
}

func TestBuildNameUsesHintFragmentAndToken(t *testing.T) {
	name := BuildName("My Great Article!", ".JPG")
	assert.True(t, strings.HasPrefix(name, "my-great-article-"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	// names must differ across calls for the same hint
	assert.NotEqual(t, name, BuildName("My Great Article!", ".JPG"))
}

func TestBuildNameWithEmptyHint(t *testing.T) {
	name := BuildName("日本語", ".png")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Greater(t, len(name), len(".png"))
	assert.False(t, strings.HasPrefix(name, "-"))
}

func TestBuildNameTruncatesLongHints(t *testing.T) {
	name := BuildName(strings.Repeat("word ", 40), ".gif")
	base := strings.TrimSuffix(name, ".gif")
	assert.LessOrEqual(t, len(base), 40+1+8)
}

func TestContainedPath(t *testing.T) {
	rel, ok := ContainedPath("/uploads/articles/pic.jpg")
	assert.True(t, ok)
	assert.Equal(t, "articles/pic.jpg", rel)

	rel, ok = ContainedPath("uploads/settings/ads/banner.png")
	assert.True(t, ok)
	assert.Equal(t, "settings/ads/banner.png", rel)

	for _, p := range []string{
		"/etc/passwd",
		"/uploads/../etc/passwd",
		"/uploads/",
		"",
		"../uploads/articles/pic.jpg",
	} {
		_, ok := ContainedPath(p)
		assert.False(t, ok, p)
	}
}
