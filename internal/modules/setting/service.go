package setting

import (
	"mime/multipart"
	"regexp"
	"sync"

	"github.com/quillpress/core/internal/middleware"
	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/modules/activity"
	"github.com/quillpress/core/internal/modules/media"
	"github.com/quillpress/core/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var adImageKey = regexp.MustCompile(`^ad_image_[1-5]$`)

// IsFileKey reports whether a setting stores an uploaded file path rather
// than a literal value.
func IsFileKey(key string) bool {
	return key == "logo" || key == "favicon" || adImageKey.MatchString(key)
}

// DirForKey returns the upload destination for a file-backed key.
func DirForKey(key string) media.Dir {
	if adImageKey.MatchString(key) {
		return media.DirSettingsAds
	}
	return media.DirSettings
}

// Service is the settings key-value store. Values are cached after the
// first read; every write invalidates the cache.
type Service struct {
	db       *gorm.DB
	media    *media.Service
	activity *activity.Service

	mu     sync.RWMutex
	cache  map[string]string
	loaded bool
}

func NewService(db *gorm.DB, media *media.Service, activity *activity.Service) *Service {
	return &Service{db: db, media: media, activity: activity}
}

// All returns every setting as a key-value map.
func (s *Service) All() (map[string]string, error) {
	s.mu.RLock()
	if s.loaded {
		out := make(map[string]string, len(s.cache))
		for k, v := range s.cache {
			out[k] = v
		}
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		if err := s.loadLocked(); err != nil {
			return nil, err
		}
	}
	out := make(map[string]string, len(s.cache))
	for k, v := range s.cache {
		out[k] = v
	}
	return out, nil
}

// Get returns one setting value, "" when the key was never set.
func (s *Service) Get(key string) (string, error) {
	all, err := s.All()
	if err != nil {
		return "", err
	}
	return all[key], nil
}

// SetMany upserts all pairs in one transaction and records a single audit
// entry for the batch.
func (s *Service) SetMany(actor *middleware.Actor, values map[string]string, ip string) error {
	if len(values) == 0 {
		return apperr.Validation("no settings given")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			if key == "" {
				return apperr.Validation("setting key must not be empty")
			}
			row := models.SettingModel{SettingKey: key, SettingValue: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "setting_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return s.activity.Record(tx, activity.Entry{
			UserID:      actor.UserID,
			Action:      "setting.update",
			EntityType:  "setting",
			Description: "updated site settings",
			IPAddress:   ip,
		})
	})
	if err != nil {
		return err
	}

	s.invalidate()
	return nil
}

// SetFile stores an upload for a file-backed key and points the key at the
// stored path. The previously stored file, if any, is removed afterwards.
func (s *Service) SetFile(actor *middleware.Actor, key string, header *multipart.FileHeader, ip string) (string, error) {
	if !IsFileKey(key) {
		return "", apperr.Validation("setting " + key + " does not accept file uploads")
	}

	old, err := s.Get(key)
	if err != nil {
		return "", err
	}

	stored, err := s.media.Store(header, DirForKey(key), key)
	if err != nil {
		return "", err
	}

	if err := s.SetMany(actor, map[string]string{key: stored}, ip); err != nil {
		s.media.RemoveQuietly(stored)
		return "", err
	}

	if old != "" && old != stored {
		s.media.RemoveQuietly(old)
	}
	return stored, nil
}

func (s *Service) loadLocked() error {
	var rows []models.SettingModel
	if err := s.db.Find(&rows).Error; err != nil {
		return err
	}
	s.cache = make(map[string]string, len(rows))
	for _, r := range rows {
		s.cache[r.SettingKey] = r.SettingValue
	}
	s.loaded = true
	return nil
}

func (s *Service) invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.cache = nil
	s.mu.Unlock()
}
