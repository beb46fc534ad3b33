// Package handler provides HTTP handlers for the application
package handler

import (
	"visitas/internal/services"
	"visitas/internal/types"

	"go.uber.org/dig"
	"gorm.io/gorm"
)

// Server aggregates the services the HTTP handlers depend on.
type Server struct {
	DB              *gorm.DB
	config          types.ConfigManager
	AuthService     *services.AuthService
	VisitorService  *services.VisitorService
	FloorService    *services.FloorService
	StatsService    *services.StatsService
	ReportService   *services.ReportService
	SettingsService *services.SettingsService
}

// ServerParams defines the dependencies for the handler Server.
type ServerParams struct {
	dig.In

	DB              *gorm.DB
	Config          types.ConfigManager
	AuthService     *services.AuthService
	VisitorService  *services.VisitorService
	FloorService    *services.FloorService
	StatsService    *services.StatsService
	ReportService   *services.ReportService
	SettingsService *services.SettingsService
}

// NewServer creates a new handler server instance.
func NewServer(params ServerParams) *Server {
	return &Server{
		DB:              params.DB,
		config:          params.Config,
		AuthService:     params.AuthService,
		VisitorService:  params.VisitorService,
		FloorService:    params.FloorService,
		StatsService:    params.StatsService,
		ReportService:   params.ReportService,
		SettingsService: params.SettingsService,
	}
}
