package services

import (
	"testing"
	"time"

	"visitas/internal/models"
	"visitas/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsSetAndGet(t *testing.T) {
	db := setupTestDB(t)
	cache := store.NewMemoryStore()
	defer cache.Close()
	svc := NewSettingsService(db, cache)

	require.NoError(t, svc.Set("nombre_institucion", "Hospital Central", "Institution name"))

	value, err := svc.Get("nombre_institucion")
	require.NoError(t, err)
	assert.Equal(t, "Hospital Central", value)

	_, err = svc.Get("missing_key")
	assert.Error(t, err)
}

func TestSettingsSetUpdatesExisting(t *testing.T) {
	db := setupTestDB(t)
	cache := store.NewMemoryStore()
	defer cache.Close()
	svc := NewSettingsService(db, cache)

	require.NoError(t, svc.Set("area_responsable", "Recepción", ""))
	require.NoError(t, svc.Set("area_responsable", "Seguridad", ""))

	value, err := svc.Get("area_responsable")
	require.NoError(t, err)
	assert.Equal(t, "Seguridad", value)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Where("clave = ?", "area_responsable").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSettingsRejectEmptyKey(t *testing.T) {
	db := setupTestDB(t)
	cache := store.NewMemoryStore()
	defer cache.Close()
	svc := NewSettingsService(db, cache)

	assert.Error(t, svc.Set("", "value", ""))
}

func TestSettingsCacheReadThrough(t *testing.T) {
	db := setupTestDB(t)
	cache := store.NewMemoryStore()
	defer cache.Close()
	svc := NewSettingsService(db, cache)

	require.NoError(t, svc.Set("version_sistema", "1.0", ""))

	// First read populates the cache
	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Equal(t, "1.0", all["version_sistema"])

	exists, err := cache.Exists("config:settings")
	require.NoError(t, err)
	assert.True(t, exists)

	// A write behind the service's back is invisible while cached
	require.NoError(t, db.Model(&models.Setting{}).
		Where("clave = ?", "version_sistema").
		Update("valor", "2.0").Error)

	all, err = svc.GetAll()
	require.NoError(t, err)
	assert.Equal(t, "1.0", all["version_sistema"])
}

func TestSettingsWriteInvalidatesCache(t *testing.T) {
	db := setupTestDB(t)
	cache := store.NewMemoryStore()
	defer cache.Close()
	svc := NewSettingsService(db, cache)

	require.NoError(t, svc.Set("backup_automatico", "false", ""))
	_, err := svc.GetAll()
	require.NoError(t, err)

	require.NoError(t, svc.Set("backup_automatico", "true", ""))

	exists, err := cache.Exists("config:settings")
	require.NoError(t, err)
	assert.False(t, exists)

	value, err := svc.Get("backup_automatico")
	require.NoError(t, err)
	assert.Equal(t, "true", value)
}

func TestSettingsCorruptCacheEntryRecovered(t *testing.T) {
	db := setupTestDB(t)
	cache := store.NewMemoryStore()
	defer cache.Close()
	svc := NewSettingsService(db, cache)

	require.NoError(t, svc.Set("nombre_institucion", "Hospital Central", ""))
	require.NoError(t, cache.Set("config:settings", []byte("{not json"), time.Minute))

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Equal(t, "Hospital Central", all["nombre_institucion"])
}

func TestSettingsSetMany(t *testing.T) {
	db := setupTestDB(t)
	cache := store.NewMemoryStore()
	defer cache.Close()
	svc := NewSettingsService(db, cache)

	require.NoError(t, svc.Set("nombre_institucion", "Old Name", ""))

	require.NoError(t, svc.SetMany(map[string]string{
		"nombre_institucion": "New Name",
		"area_responsable":   "Recepción",
	}))

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Equal(t, "New Name", all["nombre_institucion"])
	assert.Equal(t, "Recepción", all["area_responsable"])
}

func TestSettingsSetManyEmptyMapIsNoop(t *testing.T) {
	db := setupTestDB(t)
	cache := store.NewMemoryStore()
	defer cache.Close()
	svc := NewSettingsService(db, cache)

	assert.NoError(t, svc.SetMany(nil))
}
