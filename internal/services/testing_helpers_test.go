package services

import (
	"testing"

	"visitas/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing (pure Go, no CGO)
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Floor{},
		&models.VisitorEntry{},
		&models.Setting{},
	)
	require.NoError(t, err)

	return db
}

// seedFloor inserts a floor and returns it.
func seedFloor(t *testing.T, db *gorm.DB, name string, active bool) *models.Floor {
	t.Helper()
	floor := &models.Floor{Name: name, Active: active}
	require.NoError(t, db.Create(floor).Error)
	return floor
}

// seedUser inserts an active user with a bcrypt-hashed password.
func seedUser(t *testing.T, db *gorm.DB, email, password, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedEntry inserts a visitor entry with the weekday derived from the date.
func seedEntry(t *testing.T, db *gorm.DB, floorID uint, date string, count int, userID uint) *models.VisitorEntry {
	t.Helper()
	weekday, err := models.DeriveWeekday(date)
	require.NoError(t, err)
	entry := &models.VisitorEntry{
		FloorID:   floorID,
		Count:     count,
		Date:      date,
		Time:      "10:00",
		DayOfWeek: weekday,
		UserID:    userID,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}
