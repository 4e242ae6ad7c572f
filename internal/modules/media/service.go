package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/quillpress/core/internal/modules/slug"
	"github.com/quillpress/core/internal/pkg/apperr"
	"go.uber.org/zap"
)

// Dir is one of the fixed upload destinations. Arbitrary paths are never
// accepted from clients.
type Dir string

const (
	DirArticles    Dir = "articles"
	DirProfile     Dir = "profile"
	DirSettings    Dir = "settings"
	DirSettingsAds Dir = "settings/ads"
)

const (
	maxUploadSize   = 5 << 20 // 5MB
	nameFragmentLen = 40
	nameTokenLen    = 8
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Service stores uploaded images under a root directory.
type Service struct {
	root   string
	logger *zap.Logger
}

// NewService creates the fixed upload directories under root.
func NewService(root string, logger *zap.Logger) (*Service, error) {
	for _, d := range []Dir{DirArticles, DirProfile, DirSettings, DirSettingsAds} {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(string(d))), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", d, err)
		}
	}
	return &Service{root: root, logger: logger}, nil
}

// Validate checks extension and size before any bytes are moved.
func Validate(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return apperr.Validation("unsupported file type, expected jpg, jpeg, png, gif or webp")
	}
	if header.Size > maxUploadSize {
		return apperr.Validation("file exceeds the 5MB upload limit")
	}
	return nil
}

// Store validates the upload and writes it under the destination directory
// with a collision-resistant name. Returns the URL path of the stored file.
func (s *Service) Store(header *multipart.FileHeader, dir Dir, nameHint string) (string, error) {
	if err := Validate(header); err != nil {
		return "", err
	}

	name := BuildName(nameHint, filepath.Ext(header.Filename))
	rel := path.Join("uploads", string(dir), name)

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	abs := filepath.Join(s.root, filepath.FromSlash(string(dir)), name)
	dst, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("write file: %w", err)
	}
	return "/" + rel, nil
}

// Remove deletes a previously stored file. The path must resolve inside the
// upload root; anything else is rejected. A missing file is not an error.
func (s *Service) Remove(urlPath string) error {
	rel, ok := ContainedPath(urlPath)
	if !ok {
		return apperr.Validation("invalid file path")
	}
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveQuietly is the rollback variant of Remove: failures are logged and
// swallowed so cleanup never masks the original error.
func (s *Service) RemoveQuietly(urlPath string) {
	if err := s.Remove(urlPath); err != nil {
		s.logger.Warn("orphaned upload not removed",
			zap.String("path", urlPath), zap.Error(err))
	}
}

// BuildName composes a stored file name from a slugified hint fragment and
// a random token. The token carries uniqueness; the fragment is for humans.
func BuildName(hint, ext string) string {
	fragment := slug.Normalize(hint)
	if len(fragment) > nameFragmentLen {
		fragment = strings.TrimRight(fragment[:nameFragmentLen], "-")
	}
	token := slug.RandomToken(nameTokenLen)
	if fragment == "" {
		return token + strings.ToLower(ext)
	}
	return fragment + "-" + token + strings.ToLower(ext)
}

// ContainedPath normalizes a stored URL path and reports whether it stays
// inside the uploads tree. Returns the path relative to the upload root.
func ContainedPath(urlPath string) (string, bool) {
	if strings.Contains(urlPath, "..") {
		return "", false
	}
	p := path.Clean("/" + strings.TrimPrefix(urlPath, "/"))
	if !strings.HasPrefix(p, "/uploads/") {
		return "", false
	}
	rel := strings.TrimPrefix(p, "/uploads/")
	if rel == "" || rel == "." {
		return "", false
	}
	return rel, true
}
