package services

import (
	"fmt"
	"math"
	"time"

	app_errors "visitas/internal/errors"
	"visitas/internal/models"

	"gorm.io/gorm"
)

// EntryFilter narrows an aggregation to a subset of visitor entries. Zero
// values mean "no constraint" for that dimension. StartDate and EndDate are
// inclusive YYYY-MM-DD bounds.
type EntryFilter struct {
	StartDate string
	EndDate   string
	FloorID   uint
	Weekday   string
	UserID    uint
}

// Overview is the scalar rollup over a filtered entry set.
type Overview struct {
	TotalEntries  int64   `json:"total_registros"`
	TotalVisitors int64   `json:"total_visitantes"`
	Average       float64 `json:"promedio_visitantes"`
	FirstDate     string  `json:"primera_fecha"`
	LastDate      string  `json:"ultima_fecha"`
}

// FloorStat is the per-floor rollup.
type FloorStat struct {
	FloorID       uint    `json:"piso_id"`
	FloorName     string  `json:"piso"`
	TotalEntries  int64   `json:"total_registros"`
	TotalVisitors int64   `json:"total_visitantes"`
	Average       float64 `json:"promedio_visitantes"`
}

// WeekdayStat is the per-weekday rollup, ordered Monday first.
type WeekdayStat struct {
	Weekday       string  `json:"dia_semana"`
	TotalEntries  int64   `json:"total_registros"`
	TotalVisitors int64   `json:"total_visitantes"`
	Average       float64 `json:"promedio_visitantes"`
}

// DateStat is the per-date rollup, ordered chronologically. Each row carries
// the stored weekday name of its date.
type DateStat struct {
	Date          string `json:"fecha"`
	Weekday       string `json:"dia_semana"`
	TotalEntries  int64  `json:"total_registros"`
	TotalVisitors int64  `json:"total_visitantes"`
}

// TopFloor identifies the floor with the most visitors in a filtered set.
// Ties resolve to the lowest floor id.
type TopFloor struct {
	FloorID       uint   `json:"piso_id"`
	FloorName     string `json:"piso"`
	TotalVisitors int64  `json:"total_visitantes"`
}

// StatsService computes aggregations over visitor entries. All methods
// validate the filter before touching the database, so an invalid range never
// issues a query.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService constructs a StatsService.
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// round2 rounds to two decimal places, matching how averages are reported.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// averageOf returns visitors/entries rounded to two decimals, 0 for an empty set.
func averageOf(visitors, entries int64) float64 {
	if entries == 0 {
		return 0
	}
	return round2(float64(visitors) / float64(entries))
}

// ValidateFilter rejects malformed dates and inverted ranges.
func ValidateFilter(filter EntryFilter) *app_errors.APIError {
	if filter.StartDate != "" && !models.ValidDate(filter.StartDate) {
		return app_errors.NewValidationError(fmt.Sprintf("invalid start date: %s", filter.StartDate))
	}
	if filter.EndDate != "" && !models.ValidDate(filter.EndDate) {
		return app_errors.NewValidationError(fmt.Sprintf("invalid end date: %s", filter.EndDate))
	}
	if filter.StartDate != "" && filter.EndDate != "" && filter.StartDate > filter.EndDate {
		return app_errors.ErrInvalidRange
	}
	if filter.Weekday != "" && !models.IsValidWeekday(filter.Weekday) {
		return app_errors.NewValidationError(fmt.Sprintf("invalid weekday: %s", filter.Weekday))
	}
	return nil
}

// applyFilter adds the filter's constraints to a visitantes query.
// Date bounds are inclusive on both ends.
func applyFilter(query *gorm.DB, filter EntryFilter) *gorm.DB {
	if filter.StartDate != "" {
		query = query.Where("visitantes.fecha >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("visitantes.fecha <= ?", filter.EndDate)
	}
	if filter.FloorID != 0 {
		query = query.Where("visitantes.piso_id = ?", filter.FloorID)
	}
	if filter.Weekday != "" {
		query = query.Where("visitantes.dia_semana = ?", filter.Weekday)
	}
	if filter.UserID != 0 {
		query = query.Where("visitantes.usuario_id = ?", filter.UserID)
	}
	return query
}

// Overview computes the scalar rollup for the filtered set. An empty set
// yields zeros and empty date bounds, never an error.
func (s *StatsService) Overview(filter EntryFilter) (*Overview, error) {
	if apiErr := ValidateFilter(filter); apiErr != nil {
		return nil, apiErr
	}

	var row struct {
		TotalEntries  int64
		TotalVisitors int64
		FirstDate     *string
		LastDate      *string
	}
	query := applyFilter(s.db.Model(&models.VisitorEntry{}), filter).
		Select("COUNT(*) as total_entries, COALESCE(SUM(cantidad), 0) as total_visitors, MIN(fecha) as first_date, MAX(fecha) as last_date")
	if err := query.Scan(&row).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	overview := &Overview{
		TotalEntries:  row.TotalEntries,
		TotalVisitors: row.TotalVisitors,
		Average:       averageOf(row.TotalVisitors, row.TotalEntries),
	}
	if row.FirstDate != nil {
		overview.FirstDate = *row.FirstDate
	}
	if row.LastDate != nil {
		overview.LastDate = *row.LastDate
	}
	return overview, nil
}

// ByFloor computes per-floor rollups, ordered by floor id. Floors with no
// matching entries are absent from the result.
func (s *StatsService) ByFloor(filter EntryFilter) ([]FloorStat, error) {
	if apiErr := ValidateFilter(filter); apiErr != nil {
		return nil, apiErr
	}

	var rows []struct {
		FloorID       uint
		FloorName     string
		TotalEntries  int64
		TotalVisitors int64
	}
	query := applyFilter(s.db.Model(&models.VisitorEntry{}), filter).
		Select("visitantes.piso_id as floor_id, pisos.nombre as floor_name, COUNT(*) as total_entries, COALESCE(SUM(visitantes.cantidad), 0) as total_visitors").
		Joins("JOIN pisos ON pisos.id = visitantes.piso_id").
		Group("visitantes.piso_id, pisos.nombre").
		Order("visitantes.piso_id")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	stats := make([]FloorStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, FloorStat{
			FloorID:       row.FloorID,
			FloorName:     row.FloorName,
			TotalEntries:  row.TotalEntries,
			TotalVisitors: row.TotalVisitors,
			Average:       averageOf(row.TotalVisitors, row.TotalEntries),
		})
	}
	return stats, nil
}

// ByWeekday computes per-weekday rollups, ordered Monday first. Weekdays with
// no matching entries are absent from the result.
func (s *StatsService) ByWeekday(filter EntryFilter) ([]WeekdayStat, error) {
	if apiErr := ValidateFilter(filter); apiErr != nil {
		return nil, apiErr
	}

	var rows []struct {
		Weekday       string
		TotalEntries  int64
		TotalVisitors int64
	}
	query := applyFilter(s.db.Model(&models.VisitorEntry{}), filter).
		Select("dia_semana as weekday, COUNT(*) as total_entries, COALESCE(SUM(cantidad), 0) as total_visitors").
		Group("dia_semana").
		Order(models.WeekdayOrderExpr)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	stats := make([]WeekdayStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, WeekdayStat{
			Weekday:       row.Weekday,
			TotalEntries:  row.TotalEntries,
			TotalVisitors: row.TotalVisitors,
			Average:       averageOf(row.TotalVisitors, row.TotalEntries),
		})
	}
	return stats, nil
}

// ByDate computes per-date rollups, ordered chronologically. Dates with no
// matching entries are absent from the result.
func (s *StatsService) ByDate(filter EntryFilter) ([]DateStat, error) {
	if apiErr := ValidateFilter(filter); apiErr != nil {
		return nil, apiErr
	}

	var rows []DateStat
	query := applyFilter(s.db.Model(&models.VisitorEntry{}), filter).
		Select("fecha as date, dia_semana as weekday, COUNT(*) as total_entries, COALESCE(SUM(cantidad), 0) as total_visitors").
		Group("fecha, dia_semana").
		Order("fecha")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return rows, nil
}

// TrailingWeek computes per-date rollups for the seven days ending on today,
// inclusive. Days with no entries appear with zero totals so charts always
// render seven points.
func (s *StatsService) TrailingWeek(today string) ([]DateStat, error) {
	end, err := time.Parse(models.DateLayout, today)
	if err != nil {
		return nil, app_errors.NewValidationError(fmt.Sprintf("invalid date: %s", today))
	}
	start := end.AddDate(0, 0, -6)

	filter := EntryFilter{
		StartDate: start.Format(models.DateLayout),
		EndDate:   today,
	}
	rows, qerr := s.ByDate(filter)
	if qerr != nil {
		return nil, qerr
	}

	byDate := make(map[string]DateStat, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	week := make([]DateStat, 0, 7)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(models.DateLayout)
		if stat, ok := byDate[date]; ok {
			week = append(week, stat)
		} else {
			weekday, _ := models.DeriveWeekday(date)
			week = append(week, DateStat{Date: date, Weekday: weekday})
		}
	}
	return week, nil
}

// TopFloorOnDate returns the floor with the most visitors within the filtered
// set, or nil when no entries match. Ties resolve to the lowest floor id.
func (s *StatsService) TopFloorOnDate(filter EntryFilter) (*TopFloor, error) {
	if apiErr := ValidateFilter(filter); apiErr != nil {
		return nil, apiErr
	}

	var rows []TopFloor
	query := applyFilter(s.db.Model(&models.VisitorEntry{}), filter).
		Select("visitantes.piso_id as floor_id, pisos.nombre as floor_name, COALESCE(SUM(visitantes.cantidad), 0) as total_visitors").
		Joins("JOIN pisos ON pisos.id = visitantes.piso_id").
		Group("visitantes.piso_id, pisos.nombre").
		Order("total_visitors DESC, visitantes.piso_id ASC").
		Limit(1)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
