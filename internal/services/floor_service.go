package services

import (
	"errors"
	"strings"

	app_errors "visitas/internal/errors"
	"visitas/internal/models"

	"gorm.io/gorm"
)

// FloorParams carries caller-supplied floor fields.
type FloorParams struct {
	Name        string
	Description string
}

// FloorService manages the floor catalog. Floors are soft-deactivated, never
// deleted, so historical entries always resolve.
type FloorService struct {
	db *gorm.DB
}

// NewFloorService constructs a FloorService.
func NewFloorService(db *gorm.DB) *FloorService {
	return &FloorService{db: db}
}

// List returns floors ordered by id. With includeInactive false only active
// floors are returned, which is what entry forms need.
func (s *FloorService) List(includeInactive bool) ([]models.Floor, error) {
	var floors []models.Floor
	query := s.db.Order("id")
	if !includeInactive {
		query = query.Where("activo = ?", true)
	}
	if err := query.Find(&floors).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return floors, nil
}

// Get loads one floor by id.
func (s *FloorService) Get(id uint) (*models.Floor, error) {
	var floor models.Floor
	if err := s.db.First(&floor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewI18nError(app_errors.ErrResourceNotFound, "floor.not_found", nil)
		}
		return nil, app_errors.ParseDBError(err)
	}
	return &floor, nil
}

// Create adds a floor. Names are unique across the catalog.
func (s *FloorService) Create(params FloorParams) (*models.Floor, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, app_errors.NewValidationError("floor name is required")
	}

	floor := &models.Floor{
		Name:        name,
		Description: strings.TrimSpace(params.Description),
		Active:      true,
	}
	if err := s.db.Create(floor).Error; err != nil {
		apiErr := app_errors.ParseDBError(err)
		if apiErr.Code == app_errors.ErrDuplicateResource.Code {
			return nil, NewI18nError(apiErr, "floor.name_exists", nil)
		}
		return nil, apiErr
	}
	return floor, nil
}

// Update renames or re-describes a floor.
func (s *FloorService) Update(id uint, params FloorParams) (*models.Floor, error) {
	floor, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(params.Name); name != "" {
		floor.Name = name
	}
	floor.Description = strings.TrimSpace(params.Description)

	if err := s.db.Save(floor).Error; err != nil {
		apiErr := app_errors.ParseDBError(err)
		if apiErr.Code == app_errors.ErrDuplicateResource.Code {
			return nil, NewI18nError(apiErr, "floor.name_exists", nil)
		}
		return nil, apiErr
	}
	return floor, nil
}

// Deactivate soft-deletes a floor: it stops accepting new entries but keeps
// its historical data queryable.
func (s *FloorService) Deactivate(id uint) (*models.Floor, error) {
	floor, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !floor.Active {
		return floor, nil
	}
	floor.Active = false
	if err := s.db.Save(floor).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return floor, nil
}

// Reactivate re-enables a previously deactivated floor.
func (s *FloorService) Reactivate(id uint) (*models.Floor, error) {
	floor, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if floor.Active {
		return floor, nil
	}
	floor.Active = true
	if err := s.db.Save(floor).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return floor, nil
}
