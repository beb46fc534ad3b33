// Package app provides the main application logic and lifecycle management.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"visitas/internal/i18n"
	"visitas/internal/models"
	"visitas/internal/store"
	"visitas/internal/types"
	"visitas/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
	"gorm.io/gorm"
)

// App holds all services and manages the application lifecycle.
type App struct {
	engine        *gin.Engine
	configManager types.ConfigManager
	storage       store.Store
	db            *gorm.DB
	httpServer    *http.Server
}

// AppParams defines the dependencies for the App.
type AppParams struct {
	dig.In
	Engine        *gin.Engine
	ConfigManager types.ConfigManager
	Storage       store.Store
	DB            *gorm.DB
}

// NewApp is the constructor for App, with dependencies injected by dig.
func NewApp(params AppParams) *App {
	return &App{
		engine:        params.Engine,
		configManager: params.ConfigManager,
		storage:       params.Storage,
		db:            params.DB,
	}
}

// Start runs the application, it is a non-blocking call.
func (a *App) Start() error {
	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to initialize i18n: %w", err)
	}

	if err := a.db.AutoMigrate(
		&models.User{},
		&models.Floor{},
		&models.VisitorEntry{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("database auto-migration failed: %w", err)
	}
	logrus.Info("Database auto-migration completed.")

	if err := a.seedDefaults(); err != nil {
		return fmt.Errorf("failed to seed default data: %w", err)
	}

	a.configManager.DisplayServerConfig()

	serverConfig := a.configManager.GetServerConfig()
	a.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:        a.engine,
		ReadTimeout:    time.Duration(serverConfig.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(serverConfig.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(serverConfig.IdleTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logrus.Infof("Visitor tracking server started on version %s", version.Version)
		logrus.Infof("Server address: http://%s:%d", serverConfig.Host, serverConfig.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server startup failed: %v", err)
		}
	}()

	return nil
}

// seedDefaults inserts the baseline floor catalog and institution settings on
// an empty database. Existing rows are never touched.
func (a *App) seedDefaults() error {
	var floorCount int64
	if err := a.db.Model(&models.Floor{}).Count(&floorCount).Error; err != nil {
		return err
	}
	if floorCount == 0 {
		defaultFloors := []models.Floor{
			{Name: "Planta Baja", Description: "Recepción y atención al público", Active: true},
			{Name: "Piso 1", Description: "Oficinas administrativas", Active: true},
			{Name: "Piso 2", Description: "Salas de consulta", Active: true},
			{Name: "Piso 3", Description: "Dirección general", Active: true},
		}
		if err := a.db.Create(&defaultFloors).Error; err != nil {
			return err
		}
		logrus.Infof("Seeded %d default floors", len(defaultFloors))
	}

	defaultSettings := []models.Setting{
		{Key: "nombre_institucion", Value: "Institución", Description: "Nombre de la institución"},
		{Key: "area_responsable", Value: "Administración", Description: "Área responsable del registro"},
		{Key: "version_sistema", Value: version.Version, Description: "Versión del sistema"},
		{Key: "backup_automatico", Value: "false", Description: "Respaldo automático habilitado"},
	}
	for _, setting := range defaultSettings {
		var count int64
		if err := a.db.Model(&models.Setting{}).Where("clave = ?", setting.Key).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := a.db.Create(&setting).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// Stop gracefully shuts down the application.
func (a *App) Stop(ctx context.Context) {
	logrus.Info("Shutting down server...")

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			logrus.Warnf("HTTP server graceful shutdown timed out, forcing close: %v", err)
			if closeErr := a.httpServer.Close(); closeErr != nil {
				logrus.Errorf("Error forcing HTTP server to close: %v", closeErr)
			}
		}
	}
	logrus.Info("HTTP server has been shut down.")

	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			logrus.Errorf("Error closing storage: %v", err)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logrus.Errorf("Error closing database: %v", err)
			}
		}
	}

	logrus.Info("Server exited gracefully")
}
