package slug

import (
	"strings"
	"testing"

	"github.com/quillpress/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neverExists(string) (bool, error) { return false, nil }

func existsIn(taken ...string) ExistsFunc {
	set := map[string]bool{}
	for _, s := range taken {
		set[s] = true
	}
	return func(s string) (bool, error) { return set[s], nil }
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Hello World":        "hello-world",
		"  Leading / space ": "leading-space",
		"UPPER_case--mix":    "upper-case-mix",
		"already-clean":      "already-clean",
		"a!!!b???c":          "a-b-c",
		"2024 Review":        "2024-review",
		"日本語タイトル":            "",
		"!!!":                "",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestResolvePrefersExplicitSlug(t *testing.T) {
	r := NewResolver(neverExists)
	got, err := r.Resolve("My Custom Slug", "Some Title")
	require.NoError(t, err)
	assert.Equal(t, "my-custom-slug", got)
}

func TestResolveFallsBackToTitle(t *testing.T) {
	r := NewResolver(neverExists)
	got, err := r.Resolve("", "Breaking: Server Down!")
	require.NoError(t, err)
	assert.Equal(t, "breaking-server-down", got)
}

func TestResolveNonASCIITitleGetsRandomToken(t *testing.T) {
	r := NewResolver(neverExists)
	got, err := r.Resolve("", "完全な非ASCII")
	require.NoError(t, err)
	assert.Len(t, got, 12)
	for _, c := range got {
		assert.True(t, (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'))
	}
}

func TestResolveMixedASCIITitleGetsRandomToken(t *testing.T) {
	// a single accented character is enough; no partial transliteration
	r := NewResolver(neverExists)
	first, err := r.Resolve("", "Café Guide")
	require.NoError(t, err)
	second, err := r.Resolve("", "Café Guide")
	require.NoError(t, err)

	assert.Len(t, first, 12)
	assert.NotEqual(t, "caf-guide", first)
	assert.NotEqual(t, first, second)
}

func TestResolveExplicitSlugWinsOverNonASCIITitle(t *testing.T) {
	r := NewResolver(neverExists)
	got, err := r.Resolve("travel notes", "Café Guide")
	require.NoError(t, err)
	assert.Equal(t, "travel-notes", got)
}

func TestResolveExplicitSlugNormalizingEmptyFails(t *testing.T) {
	r := NewResolver(neverExists)
	_, err := r.Resolve("???", "Good Title")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestResolveCollisionSuffix(t *testing.T) {
	r := NewResolver(existsIn("news", "news-1", "news-2"))
	got, err := r.Resolve("", "News")
	require.NoError(t, err)
	assert.Equal(t, "news-3", got)
}

func TestResolveGivesUpAfterMaxAttempts(t *testing.T) {
	r := NewResolver(func(string) (bool, error) { return true, nil })
	_, err := r.Resolve("", "News")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestResolveTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("a", 400)
	r := NewResolver(neverExists)
	got, err := r.Resolve("", long)
	require.NoError(t, err)
	assert.Len(t, got, 250)

	// collision suffix must still fit inside the cap
	r = NewResolver(existsIn(got))
	got2, err := r.Resolve("", long)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got2), 250)
	assert.True(t, strings.HasSuffix(got2, "-1"))
}

func TestResolveForUpdateKeepsCurrentSlug(t *testing.T) {
	// the current slug exists in storage, held by the entity itself
	r := NewResolver(existsIn("my-article"))
	got, err := r.ResolveForUpdate("my-article", "", "My Article")
	require.NoError(t, err)
	assert.Equal(t, "my-article", got)
}

func TestResolveForUpdateKeepsSlugForNonASCIITitle(t *testing.T) {
	r := NewResolver(neverExists)
	got, err := r.ResolveForUpdate("k2j4h6l8m0pq", "", "Café Guide")
	require.NoError(t, err)
	assert.Equal(t, "k2j4h6l8m0pq", got)
}

func TestResolveForUpdateReResolvesOnChange(t *testing.T) {
	r := NewResolver(existsIn("old-slug"))
	got, err := r.ResolveForUpdate("old-slug", "brand new", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "brand-new", got)
}

func TestRandomTokenLengthAndAlphabet(t *testing.T) {
	tok := RandomToken(12)
	assert.Len(t, tok, 12)
	assert.Equal(t, strings.ToLower(tok), tok)
}
