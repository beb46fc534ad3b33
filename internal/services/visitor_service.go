package services

import (
	"errors"
	"fmt"

	app_errors "visitas/internal/errors"
	"visitas/internal/models"

	"gorm.io/gorm"
)

// CreateEntryParams carries the caller-supplied fields for a new visitor
// entry. DayOfWeek is never accepted; it is derived from Date.
type CreateEntryParams struct {
	FloorID uint
	Count   int
	Date    string
	Time    string
	Notes   string
}

// UpdateEntryParams carries the mutable fields of an entry. Nil pointers mean
// "leave unchanged".
type UpdateEntryParams struct {
	FloorID *uint
	Count   *int
	Date    *string
	Time    *string
	Notes   *string
}

// VisitorService handles the visitor entry lifecycle.
type VisitorService struct {
	db *gorm.DB
}

// NewVisitorService constructs a VisitorService.
func NewVisitorService(db *gorm.DB) *VisitorService {
	return &VisitorService{db: db}
}

// validateCount enforces the per-entry count bounds.
func validateCount(count int) *app_errors.APIError {
	if count < models.MinEntryCount || count > models.MaxEntryCount {
		return app_errors.NewValidationError(
			fmt.Sprintf("count must be between %d and %d", models.MinEntryCount, models.MaxEntryCount))
	}
	return nil
}

// requireActiveFloor loads a floor and rejects missing or deactivated ones.
func (s *VisitorService) requireActiveFloor(floorID uint) (*models.Floor, error) {
	var floor models.Floor
	if err := s.db.First(&floor, floorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewI18nError(app_errors.ErrResourceNotFound, "floor.not_found", nil)
		}
		return nil, app_errors.ParseDBError(err)
	}
	if !floor.Active {
		return nil, NewI18nError(app_errors.ErrFloorInactive, "floor.inactive", nil)
	}
	return &floor, nil
}

// Create records a visitor count for a floor. The date must not be in the
// future and the floor must be active.
func (s *VisitorService) Create(userID uint, params CreateEntryParams) (*models.VisitorEntry, error) {
	if apiErr := validateCount(params.Count); apiErr != nil {
		return nil, apiErr
	}
	if !models.ValidDate(params.Date) {
		return nil, app_errors.NewValidationError(fmt.Sprintf("invalid date: %s", params.Date))
	}
	if params.Date > models.Today() {
		return nil, NewI18nError(app_errors.ErrValidation, "visitor.future_date", nil)
	}
	if !models.ValidTime(params.Time) {
		return nil, app_errors.NewValidationError(fmt.Sprintf("invalid time: %s", params.Time))
	}
	if _, err := s.requireActiveFloor(params.FloorID); err != nil {
		return nil, err
	}

	weekday, err := models.DeriveWeekday(params.Date)
	if err != nil {
		return nil, app_errors.NewValidationError(err.Error())
	}

	entry := &models.VisitorEntry{
		FloorID:   params.FloorID,
		Count:     params.Count,
		Date:      params.Date,
		Time:      params.Time,
		DayOfWeek: weekday,
		UserID:    userID,
		Notes:     params.Notes,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	if err := s.db.Preload("Floor").First(entry, entry.ID).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return entry, nil
}

// Get loads one entry with its floor and recording user.
func (s *VisitorService) Get(id uint) (*models.VisitorEntry, error) {
	var entry models.VisitorEntry
	err := s.db.Preload("Floor").Preload("User").First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewI18nError(app_errors.ErrResourceNotFound, "visitor.not_found", nil)
		}
		return nil, app_errors.ParseDBError(err)
	}
	return &entry, nil
}

// ListQuery builds the filtered, ordered query for listing entries. The
// caller paginates it.
func (s *VisitorService) ListQuery(filter EntryFilter) (*gorm.DB, error) {
	if apiErr := ValidateFilter(filter); apiErr != nil {
		return nil, apiErr
	}
	query := applyFilter(s.db.Model(&models.VisitorEntry{}), filter).
		Preload("Floor").
		Preload("User").
		Order("fecha DESC, hora DESC")
	return query, nil
}

// Update applies a partial update. Changing the date re-derives the weekday;
// changing the floor requires the new floor to be active. Operators may only
// touch their own entries.
func (s *VisitorService) Update(actorID uint, actorRole string, id uint, params UpdateEntryParams) (*models.VisitorEntry, error) {
	entry, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !CanMutateEntry(actorRole, actorID, entry.UserID, ActionUpdateEntry) {
		return nil, app_errors.ErrForbidden
	}

	if params.Count != nil {
		if apiErr := validateCount(*params.Count); apiErr != nil {
			return nil, apiErr
		}
		entry.Count = *params.Count
	}
	if params.Date != nil {
		if !models.ValidDate(*params.Date) {
			return nil, app_errors.NewValidationError(fmt.Sprintf("invalid date: %s", *params.Date))
		}
		if *params.Date > models.Today() {
			return nil, NewI18nError(app_errors.ErrValidation, "visitor.future_date", nil)
		}
		weekday, derr := models.DeriveWeekday(*params.Date)
		if derr != nil {
			return nil, app_errors.NewValidationError(derr.Error())
		}
		entry.Date = *params.Date
		entry.DayOfWeek = weekday
	}
	if params.Time != nil {
		if !models.ValidTime(*params.Time) {
			return nil, app_errors.NewValidationError(fmt.Sprintf("invalid time: %s", *params.Time))
		}
		entry.Time = *params.Time
	}
	if params.FloorID != nil && *params.FloorID != entry.FloorID {
		if _, ferr := s.requireActiveFloor(*params.FloorID); ferr != nil {
			return nil, ferr
		}
		entry.FloorID = *params.FloorID
		entry.Floor = nil
	}
	if params.Notes != nil {
		entry.Notes = *params.Notes
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	if rerr := s.db.Preload("Floor").First(entry, entry.ID).Error; rerr != nil {
		return nil, app_errors.ParseDBError(rerr)
	}
	return entry, nil
}

// Delete removes an entry. Operators may only delete their own entries.
func (s *VisitorService) Delete(actorID uint, actorRole string, id uint) error {
	entry, err := s.Get(id)
	if err != nil {
		return err
	}
	if !CanMutateEntry(actorRole, actorID, entry.UserID, ActionDeleteEntry) {
		return app_errors.ErrForbidden
	}
	if err := s.db.Delete(&models.VisitorEntry{}, id).Error; err != nil {
		return app_errors.ParseDBError(err)
	}
	return nil
}
