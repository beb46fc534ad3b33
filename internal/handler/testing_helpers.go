package handler

import (
	"testing"

	"visitas/internal/config"
	"visitas/internal/models"
	"visitas/internal/services"
	"visitas/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
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

// createParams builds entry params for a morning count on the given floor and date
func createParams(floorID uint, date string, count int) services.CreateEntryParams {
	return services.CreateEntryParams{
		FloorID: floorID,
		Count:   count,
		Date:    date,
		Time:    "10:00",
	}
}

// setupTestServer creates a test server with real services on an in-memory database
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	db := setupTestDB(t)
	mockConfig := &config.MockConfig{}

	cache := store.NewMemoryStore()
	t.Cleanup(func() { _ = cache.Close() })

	statsService := services.NewStatsService(db)

	return &Server{
		DB:              db,
		config:          mockConfig,
		AuthService:     services.NewAuthService(db, mockConfig),
		VisitorService:  services.NewVisitorService(db),
		FloorService:    services.NewFloorService(db),
		StatsService:    statsService,
		ReportService:   services.NewReportService(db, statsService),
		SettingsService: services.NewSettingsService(db, cache),
	}
}
