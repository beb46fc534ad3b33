package handler

import (
	"strconv"

	app_errors "visitas/internal/errors"
	"visitas/internal/models"
	"visitas/internal/response"
	"visitas/internal/services"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns the operational snapshot for today.
// GET /api/reports/dashboard
func (s *Server) GetDashboard(c *gin.Context) {
	date := c.DefaultQuery("fecha", models.Today())

	dashboard, err := s.ReportService.Dashboard(date)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, dashboard)
}

// GetDateRangeReport returns the full report for an inclusive date range.
// GET /api/reports/range?fecha_inicio=...&fecha_fin=...[&piso_id=...]
func (s *Server) GetDateRangeReport(c *gin.Context) {
	startDate := c.Query("fecha_inicio")
	endDate := c.Query("fecha_fin")

	var floorID uint
	if parsed, err := strconv.ParseUint(c.Query("piso_id"), 10, 32); err == nil {
		floorID = uint(parsed)
	}

	report, err := s.ReportService.DateRange(startDate, endDate, floorID)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, report)
}

// GetMonthlyReport returns the report for one calendar month.
// GET /api/reports/monthly?anio=2024&mes=2
func (s *Server) GetMonthlyReport(c *gin.Context) {
	year, yerr := strconv.Atoi(c.Query("anio"))
	month, merr := strconv.Atoi(c.Query("mes"))
	if yerr != nil || merr != nil {
		response.Error(c, app_errors.NewValidationError("year and month are required"))
		return
	}

	report, err := s.ReportService.Monthly(year, month)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, report)
}

// GetFloorReport returns a single-floor report over a date range.
// GET /api/reports/floors/:id?fecha_inicio=...&fecha_fin=...
func (s *Server) GetFloorReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid floor id"))
		return
	}

	report, serr := s.ReportService.Floor(uint(id), c.Query("fecha_inicio"), c.Query("fecha_fin"))
	if HandleServiceError(c, serr) {
		return
	}
	response.Success(c, report)
}

// ExportReport returns report data for download, either raw entries
// ("completo") or rollups only ("resumen").
// GET /api/reports/export?modo=completo&fecha_inicio=...&fecha_fin=...
func (s *Server) ExportReport(c *gin.Context) {
	mode := c.DefaultQuery("modo", services.ExportModeFull)
	filter := entryFilterFromQuery(c)

	export, err := s.ReportService.ExportData(filter, mode)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, export)
}
