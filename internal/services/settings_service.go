package services

import (
	"encoding/json"
	"time"

	app_errors "visitas/internal/errors"
	"visitas/internal/models"
	"visitas/internal/store"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	settingsCacheKey = "config:settings"
	settingsCacheTTL = 5 * time.Minute
)

// SettingsService serves the configuracion key-value table through the cache
// store. Reads hit the cache; writes update the database and invalidate.
type SettingsService struct {
	db    *gorm.DB
	cache store.Store
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(db *gorm.DB, cache store.Store) *SettingsService {
	return &SettingsService{db: db, cache: cache}
}

// GetAll returns every setting as a key/value map.
func (s *SettingsService) GetAll() (map[string]string, error) {
	if cached, err := s.cache.Get(settingsCacheKey); err == nil {
		var result map[string]string
		if json.Unmarshal(cached, &result) == nil {
			return result, nil
		}
		// Corrupt cache entry, fall through to the database
		_ = s.cache.Delete(settingsCacheKey)
	}

	var settings []models.Setting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(settingsCacheKey, payload, settingsCacheTTL); err != nil {
			logrus.WithError(err).Warn("Failed to cache settings")
		}
	}
	return result, nil
}

// Get returns one setting value.
func (s *SettingsService) Get(key string) (string, error) {
	all, err := s.GetAll()
	if err != nil {
		return "", err
	}
	value, ok := all[key]
	if !ok {
		return "", app_errors.ErrResourceNotFound
	}
	return value, nil
}

// Set upserts a setting and invalidates the cache.
func (s *SettingsService) Set(key, value, description string) error {
	if key == "" {
		return app_errors.NewValidationError("setting key is required")
	}

	var setting models.Setting
	err := s.db.Where("clave = ?", key).First(&setting).Error
	switch {
	case err == nil:
		setting.Value = value
		if description != "" {
			setting.Description = description
		}
		err = s.db.Save(&setting).Error
	case err == gorm.ErrRecordNotFound:
		err = s.db.Create(&models.Setting{Key: key, Value: value, Description: description}).Error
	}
	if err != nil {
		return app_errors.ParseDBError(err)
	}

	if err := s.cache.Delete(settingsCacheKey); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate settings cache")
	}
	return nil
}

// SetMany upserts several settings in one transaction, then invalidates once.
func (s *SettingsService) SetMany(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			var setting models.Setting
			ferr := tx.Where("clave = ?", key).First(&setting).Error
			switch {
			case ferr == nil:
				setting.Value = value
				if serr := tx.Save(&setting).Error; serr != nil {
					return serr
				}
			case ferr == gorm.ErrRecordNotFound:
				if cerr := tx.Create(&models.Setting{Key: key, Value: value}).Error; cerr != nil {
					return cerr
				}
			default:
				return ferr
			}
		}
		return nil
	})
	if err != nil {
		return app_errors.ParseDBError(err)
	}

	if err := s.cache.Delete(settingsCacheKey); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate settings cache")
	}
	return nil
}
