package services

import (
	"errors"
	"fmt"
	"time"

	app_errors "visitas/internal/errors"
	"visitas/internal/models"

	"gorm.io/gorm"
)

// ExportLimit caps the number of rows a full export returns. Declared as a
// variable so tests can lower it.
var ExportLimit = 10000

// Export modes accepted by the export endpoint.
const (
	ExportModeFull    = "completo"
	ExportModeSummary = "resumen"
)

// Monthly report year bounds.
const minReportYear = 2000

// Row caps for the recent-entry panels.
const (
	dashboardRecentLimit = 10
	floorRecentLimit     = 50
)

// Period describes the inclusive date range a report covers.
type Period struct {
	StartDate string `json:"fecha_inicio"`
	EndDate   string `json:"fecha_fin"`
}

// Dashboard is the operational snapshot shown on the home screen. ByFloor and
// ByWeekday cover all recorded history, Month covers the calendar month the
// reference date falls in.
type Dashboard struct {
	Today         *Overview             `json:"hoy"`
	TodayByFloor  []FloorStat           `json:"hoy_por_piso"`
	Month         *Overview             `json:"mes"`
	TopFloor      *TopFloor             `json:"piso_destacado"`
	TrailingWeek  []DateStat            `json:"ultima_semana"`
	ByFloor       []FloorStat           `json:"por_piso"`
	ByWeekday     []WeekdayStat         `json:"por_dia_semana"`
	RecentEntries []models.VisitorEntry `json:"registros_recientes"`
	Overall       *Overview             `json:"historico"`
}

// RangeReport aggregates a date range across every dimension.
type RangeReport struct {
	Period    Period        `json:"periodo"`
	Summary   *Overview     `json:"resumen"`
	ByFloor   []FloorStat   `json:"por_piso"`
	ByWeekday []WeekdayStat `json:"por_dia_semana"`
	ByDate    []DateStat    `json:"por_fecha"`
}

// MonthlyReport is a RangeReport bound to one calendar month.
type MonthlyReport struct {
	Year  int `json:"anio"`
	Month int `json:"mes"`
	RangeReport
}

// FloorReport aggregates one floor over a date range. RecentEntries holds the
// newest rows in the range, capped at floorRecentLimit.
type FloorReport struct {
	Floor         *models.Floor         `json:"piso"`
	Period        Period                `json:"periodo"`
	Summary       *Overview             `json:"resumen"`
	ByWeekday     []WeekdayStat         `json:"por_dia_semana"`
	ByDate        []DateStat            `json:"por_fecha"`
	RecentEntries []models.VisitorEntry `json:"registros_recientes"`
}

// ExportRecord is one spreadsheet-ready row of a full export. The field names
// are the column headings shown to the user, so they stay in Spanish.
type ExportRecord struct {
	Date       string `json:"Fecha"`
	Time       string `json:"Hora"`
	Weekday    string `json:"Día de la Semana"`
	Floor      string `json:"Piso"`
	Count      int    `json:"Cantidad de Visitantes"`
	RecordedBy string `json:"Registrado por"`
	Notes      string `json:"Observaciones"`
	RecordedAt string `json:"Fecha de Registro"`
}

// Layout for the ExportRecord.RecordedAt timestamp, day first.
const exportTimestampLayout = "02/01/2006 15:04:05"

// Export is the payload returned by the export endpoint. Entries is only
// populated in "completo" mode, the rollups only in "resumen" mode.
type Export struct {
	Mode      string         `json:"modo"`
	Period    Period         `json:"periodo"`
	Total     *Overview      `json:"totales"`
	Entries   []ExportRecord `json:"registros,omitempty"`
	ByFloor   []FloorStat    `json:"por_piso,omitempty"`
	ByDate    []DateStat     `json:"por_fecha,omitempty"`
	Truncated bool           `json:"truncado"`
}

// ReportService assembles report payloads from aggregation results.
type ReportService struct {
	db    *gorm.DB
	stats *StatsService
}

// NewReportService constructs a ReportService.
func NewReportService(db *gorm.DB, stats *StatsService) *ReportService {
	return &ReportService{db: db, stats: stats}
}

// Dashboard builds the home-screen snapshot for the given date (normally today).
func (s *ReportService) Dashboard(today string) (*Dashboard, error) {
	if !models.ValidDate(today) {
		return nil, app_errors.NewValidationError(fmt.Sprintf("invalid date: %s", today))
	}

	todayFilter := EntryFilter{StartDate: today, EndDate: today}

	todayStats, err := s.stats.Overview(todayFilter)
	if err != nil {
		return nil, err
	}
	todayByFloor, err := s.stats.ByFloor(todayFilter)
	if err != nil {
		return nil, err
	}
	topFloor, err := s.stats.TopFloorOnDate(todayFilter)
	if err != nil {
		return nil, err
	}
	week, err := s.stats.TrailingWeek(today)
	if err != nil {
		return nil, err
	}

	day, _ := time.Parse(models.DateLayout, today)
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	monthStats, err := s.stats.Overview(EntryFilter{
		StartDate: monthStart.Format(models.DateLayout),
		EndDate:   monthEnd.Format(models.DateLayout),
	})
	if err != nil {
		return nil, err
	}

	byFloor, err := s.stats.ByFloor(EntryFilter{})
	if err != nil {
		return nil, err
	}
	byWeekday, err := s.stats.ByWeekday(EntryFilter{})
	if err != nil {
		return nil, err
	}
	overall, err := s.stats.Overview(EntryFilter{})
	if err != nil {
		return nil, err
	}

	var recent []models.VisitorEntry
	err = s.db.Model(&models.VisitorEntry{}).
		Preload("Floor").
		Preload("User").
		Order("created_at DESC").
		Limit(dashboardRecentLimit).
		Find(&recent).Error
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	return &Dashboard{
		Today:         todayStats,
		TodayByFloor:  todayByFloor,
		Month:         monthStats,
		TopFloor:      topFloor,
		TrailingWeek:  week,
		ByFloor:       byFloor,
		ByWeekday:     byWeekday,
		RecentEntries: recent,
		Overall:       overall,
	}, nil
}

// DateRange builds the full report for an inclusive date range, optionally
// narrowed to one floor.
func (s *ReportService) DateRange(startDate, endDate string, floorID uint) (*RangeReport, error) {
	filter := EntryFilter{StartDate: startDate, EndDate: endDate, FloorID: floorID}
	if apiErr := ValidateFilter(filter); apiErr != nil {
		return nil, apiErr
	}
	if startDate == "" || endDate == "" {
		return nil, app_errors.NewValidationError("start and end dates are required")
	}
	return s.buildRangeReport(filter)
}

// Monthly builds the report for one calendar month. Month bounds are computed
// from the calendar, so February resolves to the 28th or 29th as appropriate.
func (s *ReportService) Monthly(year, month int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, app_errors.NewValidationError(fmt.Sprintf("invalid month: %d", month))
	}
	currentYear := time.Now().Year()
	if year < minReportYear || year > currentYear+1 {
		return nil, app_errors.NewValidationError(fmt.Sprintf("invalid year: %d", year))
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	report, err := s.buildRangeReport(EntryFilter{
		StartDate: first.Format(models.DateLayout),
		EndDate:   last.Format(models.DateLayout),
	})
	if err != nil {
		return nil, err
	}
	return &MonthlyReport{Year: year, Month: month, RangeReport: *report}, nil
}

// Floor builds a single-floor report over a date range. The floor must exist;
// inactive floors still report so historical data stays reachable.
func (s *ReportService) Floor(floorID uint, startDate, endDate string) (*FloorReport, error) {
	filter := EntryFilter{StartDate: startDate, EndDate: endDate, FloorID: floorID}
	if apiErr := ValidateFilter(filter); apiErr != nil {
		return nil, apiErr
	}

	var floor models.Floor
	if err := s.db.First(&floor, floorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewI18nError(app_errors.ErrResourceNotFound, "floor.not_found", nil)
		}
		return nil, app_errors.ParseDBError(err)
	}

	summary, err := s.stats.Overview(filter)
	if err != nil {
		return nil, err
	}
	byWeekday, err := s.stats.ByWeekday(filter)
	if err != nil {
		return nil, err
	}
	byDate, err := s.stats.ByDate(filter)
	if err != nil {
		return nil, err
	}

	var recent []models.VisitorEntry
	err = applyFilter(s.db.Model(&models.VisitorEntry{}), filter).
		Preload("User").
		Order("fecha DESC, hora DESC").
		Limit(floorRecentLimit).
		Find(&recent).Error
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	return &FloorReport{
		Floor:         &floor,
		Period:        Period{StartDate: startDate, EndDate: endDate},
		Summary:       summary,
		ByWeekday:     byWeekday,
		ByDate:        byDate,
		RecentEntries: recent,
	}, nil
}

// ExportData produces an export in one of two modes: "completo" returns one
// spreadsheet row per entry, newest first and capped at ExportLimit rows,
// "resumen" returns rollups only.
func (s *ReportService) ExportData(filter EntryFilter, mode string) (*Export, error) {
	if mode != ExportModeFull && mode != ExportModeSummary {
		return nil, NewI18nError(app_errors.ErrInvalidMode, "report.invalid_mode", nil)
	}
	if apiErr := ValidateFilter(filter); apiErr != nil {
		return nil, apiErr
	}

	total, err := s.stats.Overview(filter)
	if err != nil {
		return nil, err
	}

	export := &Export{
		Mode:   mode,
		Period: Period{StartDate: filter.StartDate, EndDate: filter.EndDate},
		Total:  total,
	}

	if mode == ExportModeSummary {
		byFloor, err := s.stats.ByFloor(filter)
		if err != nil {
			return nil, err
		}
		byDate, err := s.stats.ByDate(filter)
		if err != nil {
			return nil, err
		}
		export.ByFloor = byFloor
		export.ByDate = byDate
		return export, nil
	}

	var entries []models.VisitorEntry
	query := applyFilter(s.db.Model(&models.VisitorEntry{}), filter).
		Preload("Floor").
		Preload("User").
		Order("fecha DESC, hora DESC").
		Limit(ExportLimit)
	if err := query.Find(&entries).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	records := make([]ExportRecord, 0, len(entries))
	for _, entry := range entries {
		record := ExportRecord{
			Date:       entry.Date,
			Time:       entry.Time,
			Weekday:    entry.DayOfWeek,
			Count:      entry.Count,
			Notes:      entry.Notes,
			RecordedAt: entry.CreatedAt.Format(exportTimestampLayout),
		}
		if entry.Floor != nil {
			record.Floor = entry.Floor.Name
		}
		if entry.User != nil {
			record.RecordedBy = entry.User.Name
		}
		records = append(records, record)
	}
	export.Entries = records
	export.Truncated = total.TotalEntries > int64(len(records))
	return export, nil
}

// buildRangeReport runs every dimension of a range report off one filter.
func (s *ReportService) buildRangeReport(filter EntryFilter) (*RangeReport, error) {
	summary, err := s.stats.Overview(filter)
	if err != nil {
		return nil, err
	}
	byFloor, err := s.stats.ByFloor(filter)
	if err != nil {
		return nil, err
	}
	byWeekday, err := s.stats.ByWeekday(filter)
	if err != nil {
		return nil, err
	}
	byDate, err := s.stats.ByDate(filter)
	if err != nil {
		return nil, err
	}

	return &RangeReport{
		Period:    Period{StartDate: filter.StartDate, EndDate: filter.EndDate},
		Summary:   summary,
		ByFloor:   byFloor,
		ByWeekday: byWeekday,
		ByDate:    byDate,
	}, nil
}
