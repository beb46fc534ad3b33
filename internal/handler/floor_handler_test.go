package handler

import (
	"fmt"
	"net/http"
	"testing"

	"visitas/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFloors(t *testing.T) {
	server := setupTestServer(t)
	seedTestFloor(t, server.DB, "Planta Baja", true)
	seedTestFloor(t, server.DB, "Cerrado", false)
	user := seedTestUser(t, server.DB, "op@test.mx", models.RoleOperator)

	c, w := authedContext(t, user, http.MethodGet, "/api/config/floors", nil)
	server.ListFloors(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	floors := response["data"].([]any)
	require.Len(t, floors, 1)

	c, w = authedContext(t, user, http.MethodGet, "/api/config/floors?incluir_inactivos=true", nil)
	server.ListFloors(c)

	response = decodeEnvelope(t, w)
	floors = response["data"].([]any)
	assert.Len(t, floors, 2)
}

func TestCreateFloorEndpoint(t *testing.T) {
	server := setupTestServer(t)
	admin := seedTestUser(t, server.DB, "admin@test.mx", models.RoleAdmin)

	c, w := authedContext(t, admin, http.MethodPost, "/api/config/floors", gin.H{
		"nombre":      "Piso 4",
		"descripcion": "Nueva ala",
	})
	server.CreateFloor(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeEnvelope(t, w)
	data := response["data"].(map[string]any)
	assert.Equal(t, "Piso 4", data["nombre"])
	assert.Equal(t, true, data["activo"])
}

func TestCreateFloorDuplicateName(t *testing.T) {
	server := setupTestServer(t)
	seedTestFloor(t, server.DB, "Piso 4", true)
	admin := seedTestUser(t, server.DB, "admin@test.mx", models.RoleAdmin)

	c, w := authedContext(t, admin, http.MethodPost, "/api/config/floors", gin.H{
		"nombre": "Piso 4",
	})
	server.CreateFloor(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	response := decodeEnvelope(t, w)
	assert.Equal(t, "DUPLICATE_RESOURCE", response["code"])
}

func TestDeactivateAndReactivateFloorEndpoint(t *testing.T) {
	server := setupTestServer(t)
	floor := seedTestFloor(t, server.DB, "Piso 2", true)
	admin := seedTestUser(t, server.DB, "admin@test.mx", models.RoleAdmin)

	c, w := authedContext(t, admin, http.MethodDelete, fmt.Sprintf("/api/config/floors/%d", floor.ID), nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(floor.ID)}}
	server.DeactivateFloor(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	data := response["data"].(map[string]any)
	assert.Equal(t, false, data["activo"])

	c, w = authedContext(t, admin, http.MethodPost, fmt.Sprintf("/api/config/floors/%d/reactivate", floor.ID), nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(floor.ID)}}
	server.ReactivateFloor(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeEnvelope(t, w)
	data = response["data"].(map[string]any)
	assert.Equal(t, true, data["activo"])
}

func TestUpdateFloorEndpoint(t *testing.T) {
	server := setupTestServer(t)
	floor := seedTestFloor(t, server.DB, "Piso 2", true)
	admin := seedTestUser(t, server.DB, "admin@test.mx", models.RoleAdmin)

	c, w := authedContext(t, admin, http.MethodPut, fmt.Sprintf("/api/config/floors/%d", floor.ID), gin.H{
		"nombre":      "Piso Dos",
		"descripcion": "Renombrado",
	})
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(floor.ID)}}
	server.UpdateFloor(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	data := response["data"].(map[string]any)
	assert.Equal(t, "Piso Dos", data["nombre"])
}
