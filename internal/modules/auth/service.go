package auth

import (
	"errors"
	"time"

	"github.com/quillpress/core/internal/models"
	"github.com/quillpress/core/internal/modules/activity"
	"github.com/quillpress/core/internal/pkg/apperr"
	"github.com/quillpress/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// failureDelay slows down credential guessing.
const failureDelay = 3 * time.Second

type Service struct {
	db       *gorm.DB
	activity *activity.Service
}

func NewService(db *gorm.DB, activity *activity.Service) *Service {
	return &Service{db: db, activity: activity}
}

// Login verifies credentials and issues a JWT. Failures are answered after
// a fixed delay and never reveal whether the account exists.
func (s *Service) Login(username, password, ip string) (token string, user *models.UserModel, err error) {
	var u models.UserModel
	findErr := s.db.Preload("Role").
		First(&u, "username = ? OR email = ?", username, username).Error
	if findErr != nil {
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			time.Sleep(failureDelay)
			return "", nil, apperr.Forbidden("invalid credentials")
		}
		return "", nil, findErr
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		time.Sleep(failureDelay)
		return "", nil, apperr.Forbidden("invalid credentials")
	}
	if u.Status != models.UserActive {
		return "", nil, apperr.Forbidden("account is not active")
	}

	token, err = jwt.Sign(u.ID, tokenTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&u).Update("last_login", now).Error; err != nil {
			return err
		}
		return s.activity.Record(tx, activity.Entry{
			UserID:     u.ID,
			Action:     "auth.login",
			EntityType: "user",
			EntityID:   u.ID,
			IPAddress:  ip,
		})
	})
	if err != nil {
		return "", nil, err
	}

	u.LastLogin = &now
	return token, &u, nil
}
