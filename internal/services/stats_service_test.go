package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	app_errors "visitas/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestOverviewEmptySet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)

	overview, err := svc.Overview(EntryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), overview.TotalEntries)
	assert.Equal(t, int64(0), overview.TotalVisitors)
	assert.Equal(t, float64(0), overview.Average)
	assert.Empty(t, overview.FirstDate)
	assert.Empty(t, overview.LastDate)
}

func TestOverviewTotalsAndAverage(t *testing.T) {
	db := setupTestDB(t)
	floor := seedFloor(t, db, "Planta Baja", true)
	user := seedUser(t, db, "op@test.mx", "password123", "operador")

	seedEntry(t, db, floor.ID, "2024-03-04", 4, user.ID)
	seedEntry(t, db, floor.ID, "2024-03-05", 5, user.ID)
	seedEntry(t, db, floor.ID, "2024-03-06", 6, user.ID)

	svc := NewStatsService(db)
	overview, err := svc.Overview(EntryFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), overview.TotalEntries)
	assert.Equal(t, int64(15), overview.TotalVisitors)
	assert.Equal(t, 5.0, overview.Average)
	assert.Equal(t, "2024-03-04", overview.FirstDate)
	assert.Equal(t, "2024-03-06", overview.LastDate)
}

func TestOverviewAverageRoundsToTwoDecimals(t *testing.T) {
	db := setupTestDB(t)
	floor := seedFloor(t, db, "Piso 1", true)
	user := seedUser(t, db, "op@test.mx", "password123", "operador")

	seedEntry(t, db, floor.ID, "2024-03-04", 1, user.ID)
	seedEntry(t, db, floor.ID, "2024-03-05", 1, user.ID)
	seedEntry(t, db, floor.ID, "2024-03-06", 2, user.ID)

	svc := NewStatsService(db)
	overview, err := svc.Overview(EntryFilter{})
	require.NoError(t, err)

	// 4 / 3 = 1.333... rounds to 1.33
	assert.Equal(t, 1.33, overview.Average)
}

func TestOverviewDateBoundsInclusive(t *testing.T) {
	db := setupTestDB(t)
	floor := seedFloor(t, db, "Piso 1", true)
	user := seedUser(t, db, "op@test.mx", "password123", "operador")

	seedEntry(t, db, floor.ID, "2024-03-01", 1, user.ID)
	seedEntry(t, db, floor.ID, "2024-03-02", 2, user.ID)
	seedEntry(t, db, floor.ID, "2024-03-03", 4, user.ID)
	seedEntry(t, db, floor.ID, "2024-03-04", 8, user.ID)

	svc := NewStatsService(db)
	overview, err := svc.Overview(EntryFilter{StartDate: "2024-03-02", EndDate: "2024-03-03"})
	require.NoError(t, err)

	// Both boundary dates count
	assert.Equal(t, int64(2), overview.TotalEntries)
	assert.Equal(t, int64(6), overview.TotalVisitors)
}

func TestInvalidRangeRejectedBeforeQuerying(t *testing.T) {
	// Back the DB with sqlmock and expect no queries at all: validation must
	// fail before the engine touches the database.
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	svc := NewStatsService(db)
	filter := EntryFilter{StartDate: "2024-03-10", EndDate: "2024-03-01"}

	_, oerr := svc.Overview(filter)
	assertInvalidRange(t, oerr)
	_, ferr := svc.ByFloor(filter)
	assertInvalidRange(t, ferr)
	_, werr := svc.ByWeekday(filter)
	assertInvalidRange(t, werr)
	_, derr := svc.ByDate(filter)
	assertInvalidRange(t, derr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func assertInvalidRange(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*app_errors.APIError)
	require.True(t, ok)
	assert.Equal(t, "INVALID_RANGE", apiErr.Code)
}

func TestByFloorRollup(t *testing.T) {
	db := setupTestDB(t)
	ground := seedFloor(t, db, "Planta Baja", true)
	first := seedFloor(t, db, "Piso 1", true)
	empty := seedFloor(t, db, "Piso 2", true)
	user := seedUser(t, db, "op@test.mx", "password123", "operador")

	seedEntry(t, db, ground.ID, "2024-03-04", 10, user.ID)
	seedEntry(t, db, ground.ID, "2024-03-05", 20, user.ID)
	seedEntry(t, db, first.ID, "2024-03-04", 7, user.ID)

	svc := NewStatsService(db)
	stats, err := svc.ByFloor(EntryFilter{})
	require.NoError(t, err)

	// Floors without entries are absent
	require.Len(t, stats, 2)
	assert.Equal(t, ground.ID, stats[0].FloorID)
	assert.Equal(t, "Planta Baja", stats[0].FloorName)
	assert.Equal(t, int64(30), stats[0].TotalVisitors)
	assert.Equal(t, 15.0, stats[0].Average)
	assert.Equal(t, first.ID, stats[1].FloorID)
	assert.Equal(t, int64(7), stats[1].TotalVisitors)

	for _, s := range stats {
		assert.NotEqual(t, empty.ID, s.FloorID)
	}
}

func TestByWeekdayOrderedMondayFirst(t *testing.T) {
	db := setupTestDB(t)
	floor := seedFloor(t, db, "Planta Baja", true)
	user := seedUser(t, db, "op@test.mx", "password123", "operador")

	// Sunday, Monday, Wednesday of the same week, inserted out of order
	seedEntry(t, db, floor.ID, "2024-03-10", 3, user.ID) // Domingo
	seedEntry(t, db, floor.ID, "2024-03-06", 2, user.ID) // Miércoles
	seedEntry(t, db, floor.ID, "2024-03-04", 1, user.ID) // Lunes

	svc := NewStatsService(db)
	stats, err := svc.ByWeekday(EntryFilter{})
	require.NoError(t, err)

	require.Len(t, stats, 3)
	assert.Equal(t, "Lunes", stats[0].Weekday)
	assert.Equal(t, "Miércoles", stats[1].Weekday)
	assert.Equal(t, "Domingo", stats[2].Weekday)
}

func TestByDateChronological(t *testing.T) {
	db := setupTestDB(t)
	floor := seedFloor(t, db, "Planta Baja", true)
	user := seedUser(t, db, "op@test.mx", "password123", "operador")

	seedEntry(t, db, floor.ID, "2024-03-06", 2, user.ID)
	seedEntry(t, db, floor.ID, "2024-03-04", 1, user.ID)
	seedEntry(t, db, floor.ID, "2024-03-04", 5, user.ID)

	svc := NewStatsService(db)
	stats, err := svc.ByDate(EntryFilter{})
	require.NoError(t, err)

	require.Len(t, stats, 2)
	assert.Equal(t, "2024-03-04", stats[0].Date)
	assert.Equal(t, "Lunes", stats[0].Weekday)
	assert.Equal(t, int64(2), stats[0].TotalEntries)
	assert.Equal(t, int64(6), stats[0].TotalVisitors)
	assert.Equal(t, "2024-03-06", stats[1].Date)
	assert.Equal(t, "Miércoles", stats[1].Weekday)
}

func TestTrailingWeekZeroFills(t *testing.T) {
	db := setupTestDB(t)
	floor := seedFloor(t, db, "Planta Baja", true)
	user := seedUser(t, db, "op@test.mx", "password123", "operador")

	seedEntry(t, db, floor.ID, "2024-03-10", 9, user.ID)
	seedEntry(t, db, floor.ID, "2024-03-04", 4, user.ID)
	// Outside the window
	seedEntry(t, db, floor.ID, "2024-03-03", 99, user.ID)

	svc := NewStatsService(db)
	week, err := svc.TrailingWeek("2024-03-10")
	require.NoError(t, err)

	require.Len(t, week, 7)
	assert.Equal(t, "2024-03-04", week[0].Date)
	assert.Equal(t, "Lunes", week[0].Weekday)
	assert.Equal(t, int64(4), week[0].TotalVisitors)
	for i := 1; i < 6; i++ {
		assert.Equal(t, int64(0), week[i].TotalVisitors)
	}
	// Synthesized days still carry their weekday label
	assert.Equal(t, "2024-03-05", week[1].Date)
	assert.Equal(t, "Martes", week[1].Weekday)
	assert.Equal(t, "2024-03-10", week[6].Date)
	assert.Equal(t, "Domingo", week[6].Weekday)
	assert.Equal(t, int64(9), week[6].TotalVisitors)
}

func TestTopFloorTieBreaksToLowestID(t *testing.T) {
	db := setupTestDB(t)
	ground := seedFloor(t, db, "Planta Baja", true)
	first := seedFloor(t, db, "Piso 1", true)
	user := seedUser(t, db, "op@test.mx", "password123", "operador")

	seedEntry(t, db, first.ID, "2024-03-04", 10, user.ID)
	seedEntry(t, db, ground.ID, "2024-03-04", 10, user.ID)

	svc := NewStatsService(db)
	top, err := svc.TopFloorOnDate(EntryFilter{StartDate: "2024-03-04", EndDate: "2024-03-04"})
	require.NoError(t, err)

	require.NotNil(t, top)
	assert.Equal(t, ground.ID, top.FloorID)
	assert.Equal(t, int64(10), top.TotalVisitors)
}

func TestTopFloorEmptySetIsNil(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)

	top, err := svc.TopFloorOnDate(EntryFilter{StartDate: "2024-03-04", EndDate: "2024-03-04"})
	require.NoError(t, err)
	assert.Nil(t, top)
}

func TestOverviewConsistentWithByFloor(t *testing.T) {
	db := setupTestDB(t)
	ground := seedFloor(t, db, "Planta Baja", true)
	first := seedFloor(t, db, "Piso 1", true)
	user := seedUser(t, db, "op@test.mx", "password123", "operador")

	seedEntry(t, db, ground.ID, "2024-03-04", 3, user.ID)
	seedEntry(t, db, first.ID, "2024-03-05", 5, user.ID)
	seedEntry(t, db, first.ID, "2024-03-06", 8, user.ID)

	svc := NewStatsService(db)
	overview, err := svc.Overview(EntryFilter{})
	require.NoError(t, err)
	byFloor, err := svc.ByFloor(EntryFilter{})
	require.NoError(t, err)

	var sumEntries, sumVisitors int64
	for _, s := range byFloor {
		sumEntries += s.TotalEntries
		sumVisitors += s.TotalVisitors
	}
	assert.Equal(t, overview.TotalEntries, sumEntries)
	assert.Equal(t, overview.TotalVisitors, sumVisitors)
}
