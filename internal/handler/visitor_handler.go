package handler

import (
	"strconv"

	app_errors "visitas/internal/errors"
	"visitas/internal/middleware"
	"visitas/internal/models"
	"visitas/internal/response"
	"visitas/internal/services"

	"github.com/gin-gonic/gin"
)

// VisitorEntryCreateRequest defines the payload for recording a visitor count.
// The weekday is derived server-side and never accepted from the client.
type VisitorEntryCreateRequest struct {
	FloorID uint   `json:"piso_id" binding:"required"`
	Count   int    `json:"cantidad" binding:"required"`
	Date    string `json:"fecha" binding:"required,fecha"`
	Time    string `json:"hora" binding:"required,hora"`
	Notes   string `json:"observaciones"`
}

// CreateEntry records a visitor count for a floor.
// POST /api/visitors
func (s *Server) CreateEntry(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, app_errors.ErrUnauthorized)
		return
	}

	var req VisitorEntryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	entry, err := s.VisitorService.Create(user.ID, services.CreateEntryParams{
		FloorID: req.FloorID,
		Count:   req.Count,
		Date:    req.Date,
		Time:    req.Time,
		Notes:   req.Notes,
	})
	if HandleServiceError(c, err) {
		return
	}

	response.Created(c, "visitor.created", entry)
}

// entryFilterFromQuery reads the shared filter query params.
func entryFilterFromQuery(c *gin.Context) services.EntryFilter {
	filter := services.EntryFilter{
		StartDate: c.Query("fecha_inicio"),
		EndDate:   c.Query("fecha_fin"),
		Weekday:   c.Query("dia_semana"),
	}
	if floorID, err := strconv.ParseUint(c.Query("piso_id"), 10, 32); err == nil {
		filter.FloorID = uint(floorID)
	}
	if userID, err := strconv.ParseUint(c.Query("usuario_id"), 10, 32); err == nil {
		filter.UserID = uint(userID)
	}
	return filter
}

// ListEntries returns a filtered, paginated list of entries, newest first.
// GET /api/visitors
func (s *Server) ListEntries(c *gin.Context) {
	query, err := s.VisitorService.ListQuery(entryFilterFromQuery(c))
	if HandleServiceError(c, err) {
		return
	}

	var entries []models.VisitorEntry
	result, perr := response.Paginate(c, query, &entries)
	if perr != nil {
		response.Error(c, app_errors.ParseDBError(perr))
		return
	}

	response.Success(c, result)
}

// EntryStats bundles the rollups for a filtered set of entries.
type EntryStats struct {
	Summary   *services.Overview     `json:"resumen"`
	ByFloor   []services.FloorStat   `json:"por_piso"`
	ByWeekday []services.WeekdayStat `json:"por_dia_semana"`
	ByDate    []services.DateStat    `json:"por_fecha"`
}

// GetEntryStats returns aggregate statistics for a filtered set of entries,
// without the report wrapping. Charts feed off por_fecha.
// GET /api/visitors/estadisticas
func (s *Server) GetEntryStats(c *gin.Context) {
	filter := entryFilterFromQuery(c)

	summary, err := s.StatsService.Overview(filter)
	if HandleServiceError(c, err) {
		return
	}
	byFloor, err := s.StatsService.ByFloor(filter)
	if HandleServiceError(c, err) {
		return
	}
	byWeekday, err := s.StatsService.ByWeekday(filter)
	if HandleServiceError(c, err) {
		return
	}
	byDate, err := s.StatsService.ByDate(filter)
	if HandleServiceError(c, err) {
		return
	}

	response.Success(c, EntryStats{
		Summary:   summary,
		ByFloor:   byFloor,
		ByWeekday: byWeekday,
		ByDate:    byDate,
	})
}

// GetEntry returns one entry with its floor and recording user.
// GET /api/visitors/:id
func (s *Server) GetEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid entry id"))
		return
	}

	entry, serr := s.VisitorService.Get(uint(id))
	if HandleServiceError(c, serr) {
		return
	}
	response.Success(c, entry)
}

// VisitorEntryUpdateRequest defines the payload for a partial entry update.
// Pointer fields distinguish "absent" from zero values.
type VisitorEntryUpdateRequest struct {
	FloorID *uint   `json:"piso_id,omitempty"`
	Count   *int    `json:"cantidad,omitempty"`
	Date    *string `json:"fecha,omitempty"`
	Time    *string `json:"hora,omitempty"`
	Notes   *string `json:"observaciones,omitempty"`
}

// UpdateEntry applies a partial update to an entry. Operators may only
// modify their own entries.
// PUT /api/visitors/:id
func (s *Server) UpdateEntry(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, app_errors.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid entry id"))
		return
	}

	var req VisitorEntryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	entry, serr := s.VisitorService.Update(user.ID, user.Role, uint(id), services.UpdateEntryParams{
		FloorID: req.FloorID,
		Count:   req.Count,
		Date:    req.Date,
		Time:    req.Time,
		Notes:   req.Notes,
	})
	if HandleServiceError(c, serr) {
		return
	}

	response.SuccessI18n(c, "visitor.updated", entry)
}

// DeleteEntry removes an entry. Operators may only delete their own entries.
// DELETE /api/visitors/:id
func (s *Server) DeleteEntry(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, app_errors.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid entry id"))
		return
	}

	if HandleServiceError(c, s.VisitorService.Delete(user.ID, user.Role, uint(id))) {
		return
	}
	response.SuccessI18n(c, "visitor.deleted", nil)
}
