package handler

import (
	"strconv"

	app_errors "visitas/internal/errors"
	"visitas/internal/response"
	"visitas/internal/services"

	"github.com/gin-gonic/gin"
)

// ListFloors returns the floor catalog. Pass incluir_inactivos=true to also
// get deactivated floors (the admin view needs them).
// GET /api/config/floors
func (s *Server) ListFloors(c *gin.Context) {
	includeInactive := c.Query("incluir_inactivos") == "true"

	floors, err := s.FloorService.List(includeInactive)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, floors)
}

// FloorRequest defines the payload for creating or updating a floor.
type FloorRequest struct {
	Name        string `json:"nombre" binding:"required"`
	Description string `json:"descripcion"`
}

// CreateFloor adds a floor to the catalog. Admin only.
// POST /api/config/floors
func (s *Server) CreateFloor(c *gin.Context) {
	var req FloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	floor, err := s.FloorService.Create(services.FloorParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if HandleServiceError(c, err) {
		return
	}

	response.Created(c, "floor.created", floor)
}

// UpdateFloor renames or re-describes a floor. Admin only.
// PUT /api/config/floors/:id
func (s *Server) UpdateFloor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid floor id"))
		return
	}

	var req FloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	floor, serr := s.FloorService.Update(uint(id), services.FloorParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if HandleServiceError(c, serr) {
		return
	}

	response.SuccessI18n(c, "floor.updated", floor)
}

// DeactivateFloor soft-deletes a floor; its history remains queryable.
// Admin only.
// DELETE /api/config/floors/:id
func (s *Server) DeactivateFloor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid floor id"))
		return
	}

	floor, serr := s.FloorService.Deactivate(uint(id))
	if HandleServiceError(c, serr) {
		return
	}
	response.SuccessI18n(c, "floor.deactivated", floor)
}

// ReactivateFloor re-enables a deactivated floor. Admin only.
// POST /api/config/floors/:id/reactivate
func (s *Server) ReactivateFloor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid floor id"))
		return
	}

	floor, serr := s.FloorService.Reactivate(uint(id))
	if HandleServiceError(c, serr) {
		return
	}
	response.SuccessI18n(c, "floor.reactivated", floor)
}
