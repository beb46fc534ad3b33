package handler

import (
	"net/http"
	"testing"

	"visitas/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDateRangeReport(t *testing.T) {
	server := setupTestServer(t)
	floor := seedTestFloor(t, server.DB, "Planta Baja", true)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	for i, count := range []int{4, 5, 6} {
		date := []string{"2024-03-01", "2024-03-02", "2024-03-03"}[i]
		_, err := server.VisitorService.Create(user.ID, createParams(floor.ID, date, count))
		require.NoError(t, err)
	}

	c, w := authedContext(t, user, http.MethodGet,
		"/api/reports/range?fecha_inicio=2024-03-01&fecha_fin=2024-03-31", nil)
	server.GetDateRangeReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	data := response["data"].(map[string]any)

	summary := data["resumen"].(map[string]any)
	assert.Equal(t, float64(3), summary["total_registros"])
	assert.Equal(t, float64(15), summary["total_visitantes"])
	assert.Equal(t, float64(5), summary["promedio_visitantes"])

	period := data["periodo"].(map[string]any)
	assert.Equal(t, "2024-03-01", period["fecha_inicio"])
	assert.Equal(t, "2024-03-31", period["fecha_fin"])
}

func TestGetDateRangeReportRequiresDates(t *testing.T) {
	server := setupTestServer(t)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	c, w := authedContext(t, user, http.MethodGet, "/api/reports/range?fecha_inicio=2024-03-01", nil)
	server.GetDateRangeReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDateRangeReportRejectsReversedRange(t *testing.T) {
	server := setupTestServer(t)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	c, w := authedContext(t, user, http.MethodGet,
		"/api/reports/range?fecha_inicio=2024-03-31&fecha_fin=2024-03-01", nil)
	server.GetDateRangeReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeEnvelope(t, w)
	assert.Equal(t, "INVALID_RANGE", response["code"])
}

func TestGetMonthlyReport(t *testing.T) {
	server := setupTestServer(t)
	floor := seedTestFloor(t, server.DB, "Planta Baja", true)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	_, err := server.VisitorService.Create(user.ID, createParams(floor.ID, "2024-02-29", 8))
	require.NoError(t, err)

	c, w := authedContext(t, user, http.MethodGet, "/api/reports/monthly?anio=2024&mes=2", nil)
	server.GetMonthlyReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	data := response["data"].(map[string]any)
	assert.Equal(t, float64(2024), data["anio"])
	assert.Equal(t, float64(2), data["mes"])

	summary := data["resumen"].(map[string]any)
	assert.Equal(t, float64(8), summary["total_visitantes"])
}

func TestGetMonthlyReportMissingParams(t *testing.T) {
	server := setupTestServer(t)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	c, w := authedContext(t, user, http.MethodGet, "/api/reports/monthly?anio=2024", nil)
	server.GetMonthlyReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFloorReport(t *testing.T) {
	server := setupTestServer(t)
	floor := seedTestFloor(t, server.DB, "Planta Baja", true)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	_, err := server.VisitorService.Create(user.ID, createParams(floor.ID, "2024-03-01", 5))
	require.NoError(t, err)

	c, w := authedContext(t, user, http.MethodGet, "/api/reports/floors/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	server.GetFloorReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetFloorReportUnknownFloor(t *testing.T) {
	server := setupTestServer(t)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	c, w := authedContext(t, user, http.MethodGet, "/api/reports/floors/999", nil)
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	server.GetFloorReport(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportReportSummaryMode(t *testing.T) {
	server := setupTestServer(t)
	floor := seedTestFloor(t, server.DB, "Planta Baja", true)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	_, err := server.VisitorService.Create(user.ID, createParams(floor.ID, "2024-03-01", 5))
	require.NoError(t, err)

	c, w := authedContext(t, user, http.MethodGet, "/api/reports/export?modo=resumen", nil)
	server.ExportReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	data := response["data"].(map[string]any)
	assert.Equal(t, "resumen", data["modo"])
	assert.Nil(t, data["registros"])
}

func TestExportReportInvalidMode(t *testing.T) {
	server := setupTestServer(t)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	c, w := authedContext(t, user, http.MethodGet, "/api/reports/export?modo=csv", nil)
	server.ExportReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeEnvelope(t, w)
	assert.Equal(t, "INVALID_MODE", response["code"])
}

func TestGetDashboard(t *testing.T) {
	server := setupTestServer(t)
	floor := seedTestFloor(t, server.DB, "Planta Baja", true)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	today := models.Today()
	_, err := server.VisitorService.Create(user.ID, createParams(floor.ID, today, 5))
	require.NoError(t, err)

	c, w := authedContext(t, user, http.MethodGet, "/api/reports/dashboard", nil)
	server.GetDashboard(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	data := response["data"].(map[string]any)

	todaySummary := data["hoy"].(map[string]any)
	assert.Equal(t, float64(5), todaySummary["total_visitantes"])
	monthSummary := data["mes"].(map[string]any)
	assert.Equal(t, float64(5), monthSummary["total_visitantes"])
	// Trailing week always carries seven points
	week := data["ultima_semana"].([]any)
	assert.Len(t, week, 7)
	recent := data["registros_recientes"].([]any)
	require.Len(t, recent, 1)
	newest := recent[0].(map[string]any)
	assert.Equal(t, "Planta Baja", newest["piso"].(map[string]any)["nombre"])
}
