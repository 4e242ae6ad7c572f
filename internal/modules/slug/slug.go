package slug

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"

	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

const (
	maxLen        = 250
	maxAttempts   = 20
	tokenLen      = 12
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// ExistsFunc reports whether a slug is already taken in a namespace.
type ExistsFunc func(slug string) (bool, error)

// Resolver produces unique slugs for one namespace. Articles and pages
// each get their own resolver so their slugs never collide across kinds
// but may repeat between them.
type Resolver struct {
	exists ExistsFunc
}

func NewResolver(exists ExistsFunc) *Resolver {
	return &Resolver{exists: exists}
}

// ForArticles resolves against the articles table.
func ForArticles(db *gorm.DB) *Resolver {
	return NewResolver(func(s string) (bool, error) {
		var n int64
		err := db.Model(&models.ArticleModel{}).Where("slug = ?", s).Count(&n).Error
		return n > 0, err
	})
}

// ForPages resolves against the pages table.
func ForPages(db *gorm.DB) *Resolver {
	return NewResolver(func(s string) (bool, error) {
		var n int64
		err := db.Model(&models.PageModel{}).Where("slug = ?", s).Count(&n).Error
		return n > 0, err
	})
}

// Normalize lowercases the candidate and collapses every run of
// non-alphanumeric characters into a single hyphen. Non-ASCII letters are
// dropped, not transliterated. Returns "" when nothing survives.
func Normalize(candidate string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(candidate) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Resolve turns the explicit slug, or the title when no slug was given,
// into a unique slug for the namespace. A title carrying any non-ASCII
// character gets a random token instead of a lossy transliteration; an
// explicit slug that normalizes empty is a validation failure.
func (r *Resolver) Resolve(explicit, title string) (string, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		base := Normalize(explicit)
		if base == "" {
			return "", apperr.Validation("slug contains no usable characters")
		}
		return r.unique(base)
	}

	if hasNonASCII(title) {
		return r.unique(RandomToken(tokenLen))
	}
	base := Normalize(title)
	if base == "" {
		base = RandomToken(tokenLen)
	}
	return r.unique(base)
}

// ResolveForUpdate keeps the current slug when the candidate resolves to
// it, skipping the collision walk so an entity never conflicts with
// itself. A non-ASCII title without an explicit slug also keeps the
// current slug: there is no derivable change, and re-resolving would
// randomize it on every save.
func (r *Resolver) ResolveForUpdate(current, explicit, title string) (string, error) {
	explicit = strings.TrimSpace(explicit)
	candidate := Normalize(explicit)
	if explicit != "" && candidate == "" {
		return "", apperr.Validation("slug contains no usable characters")
	}
	if explicit == "" {
		if hasNonASCII(title) && current != "" {
			return current, nil
		}
		candidate = Normalize(title)
	}
	if candidate != "" && truncate(candidate, maxLen) == current {
		return current, nil
	}
	return r.Resolve(explicit, title)
}

func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return false
}

func (r *Resolver) unique(base string) (string, error) {
	base = truncate(base, maxLen)
	candidate := base
	for attempt := 1; ; attempt++ {
		taken, err := r.exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if attempt >= maxAttempts {
			return "", apperr.Validation("could not find a free slug for " + base)
		}
		suffix := "-" + strconv.Itoa(attempt)
		candidate = truncate(base, maxLen-len(suffix)) + suffix
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], "-")
}

// RandomToken returns a lowercase alphanumeric token from crypto/rand.
func RandomToken(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			b[i] = tokenAlphabet[i%len(tokenAlphabet)]
			continue
		}
		b[i] = tokenAlphabet[idx.Int64()]
	}
	return string(b)
}
